package overpass

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"safecity-service/internal/domain"
	"strings"
	"testing"
	"time"
)

const sampleResponse = `{
  "elements": [
    {"type": "node", "id": 1, "lat": 37.80, "lon": -122.40, "tags": {"name": "Central Station", "amenity": "police"}},
    {"type": "way", "id": 2, "center": {"lat": 37.7849, "lon": -122.4194}, "tags": {"name": "Northern Station"}},
    {"type": "relation", "id": 3, "tags": {"name": "No Center"}},
    {"type": "node", "id": 4, "lat": 37.76, "lon": -122.43}
  ]
}`

func TestBuildQuery(t *testing.T) {
	q, err := BuildQuery(domain.CategoryPark, domain.Coordinates{Lat: 37.7749, Lon: -122.4194})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "[out:json][timeout:15];\n" +
		"node[leisure=park](around:32186,37.7749,-122.4194);\nout center 10;\n" +
		"way[leisure=park](around:32186,37.7749,-122.4194);\nout center 10;\n" +
		"relation[leisure=park](around:32186,37.7749,-122.4194);\nout center 10;\n"
	if q != want {
		t.Fatalf("query mismatch\n got: %q\nwant: %q", q, want)
	}

	if _, err := BuildQuery(domain.Category("bar"), domain.Coordinates{Lat: 1, Lon: 1}); !errors.Is(err, domain.ErrUnsupportedCategory) {
		t.Fatalf("expected ErrUnsupportedCategory, got %v", err)
	}
}

func TestClientFetchNearby(t *testing.T) {
	var gotBody, gotContentType, gotMethod string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotContentType = r.Header.Get("Content-Type")
		gotMethod = r.Method

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, sampleResponse)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	features, err := client.FetchNearby(context.Background(), domain.CategoryPolice, domain.Coordinates{Lat: 37.7749, Lon: -122.4194})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Fatalf("method = %s, want POST", gotMethod)
	}
	if gotContentType != "text/plain" {
		t.Fatalf("content type = %q, want text/plain", gotContentType)
	}
	if !strings.Contains(gotBody, "node[amenity=police](around:32186,37.7749,-122.4194);") {
		t.Fatalf("query body missing node filter: %q", gotBody)
	}

	if len(features) != 4 {
		t.Fatalf("expected 4 features, got %d", len(features))
	}

	if f := features[0]; f.Name != "Central Station" || f.Point == nil || f.Point.Lat != 37.80 {
		t.Errorf("node feature = %+v", f)
	}
	if f := features[1]; f.Point != nil || f.Center == nil || f.Center.Lat != 37.7849 {
		t.Errorf("way feature = %+v", f)
	}
	if _, ok := features[2].Position(); ok {
		t.Errorf("relation without center should have no position: %+v", features[2])
	}
	if f := features[3]; f.Name != "" || f.Point == nil {
		t.Errorf("unnamed node = %+v", f)
	}
}

func TestClientFetchNearbyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL, nil)
	_, err := client.FetchNearby(context.Background(), domain.CategoryHospital, domain.Coordinates{Lat: 1, Lon: 1})

	var he *httpStatusError
	if !errors.As(err, &he) {
		t.Fatalf("expected httpStatusError, got %v", err)
	}
	if he.Code != http.StatusTooManyRequests || he.Body != "rate limited" {
		t.Fatalf("unexpected status error: %+v", he)
	}
}

func TestClientFetchNearbyTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client, _ := NewClient(srv.URL, &http.Client{Timeout: 50 * time.Millisecond})
	if _, err := client.FetchNearby(context.Background(), domain.CategoryPharmacy, domain.Coordinates{Lat: 1, Lon: 1}); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestClientFetchNearbyBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>busy</html>")
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL, nil)
	if _, err := client.FetchNearby(context.Background(), domain.CategoryPark, domain.Coordinates{Lat: 1, Lon: 1}); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestNewClientRequiresEndpoint(t *testing.T) {
	if _, err := NewClient("  ", nil); err == nil {
		t.Fatal("expected error for empty endpoint")
	}
}
