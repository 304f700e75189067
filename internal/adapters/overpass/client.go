package overpass

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"safecity-service/internal/domain"
	"safecity-service/internal/platform/obs"
	"strings"
	"time"
)

const (
	DefaultEndpoint = "https://overpass-api.de/api/interpreter"

	// 20 miles.
	RadiusMeters = 32186
	// Matches requested per element kind (node, way, relation).
	perKindLimit = 10
	// Budget for a single lookup, enforced by the server and by the HTTP client.
	queryTimeout = 15 * time.Second
)

// Client implements ports.GeodataProvider against an Overpass API interpreter.
//
// Each lookup is a single POST; failures are returned to the caller rather
// than retried. The client is safe for concurrent use.
type Client struct {
	session  *http.Client
	endpoint string
}

// NewClient returns a Client for endpoint. A nil httpClient gets one bounded
// by the query timeout.
func NewClient(endpoint string, httpClient *http.Client) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("overpass endpoint is empty")
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: queryTimeout}
	}

	return &Client{session: httpClient, endpoint: endpoint}, nil
}

type element struct {
	Type   string   `json:"type"`
	Lat    *float64 `json:"lat"`
	Lon    *float64 `json:"lon"`
	Center *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center"`
	Tags map[string]string `json:"tags"`
}

type interpreterResponse struct {
	Elements []element `json:"elements"`
}

// FetchNearby returns map features of category within RadiusMeters of center.
func (c *Client) FetchNearby(
	ctx context.Context,
	category domain.Category,
	center domain.Coordinates,
) (_ []domain.Feature, err error) {
	defer obs.Time(ctx, "overpass.FetchNearby")(&err)

	query, err := BuildQuery(category, center)
	if err != nil {
		return nil, fmt.Errorf("fetch nearby: %w", err)
	}

	req, err := c.newRequest(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch nearby: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch nearby: execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded interpreterResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("fetch nearby: decode response: %w", err)
	}

	features := make([]domain.Feature, 0, len(decoded.Elements))
	for _, el := range decoded.Elements {
		features = append(features, el.toFeature())
	}

	return features, nil
}

func (el element) toFeature() domain.Feature {
	f := domain.Feature{
		Type: el.Type,
		Name: strings.TrimSpace(el.Tags["name"]),
	}

	if el.Lat != nil && el.Lon != nil {
		f.Point = &domain.Coordinates{Lat: *el.Lat, Lon: *el.Lon}
	}
	if el.Center != nil {
		f.Center = &domain.Coordinates{Lat: el.Center.Lat, Lon: el.Center.Lon}
	}

	return f
}
