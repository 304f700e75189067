package services

import (
	"context"
	"errors"
	"safecity-service/internal/domain"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTipServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := &fakeTips{}
	clock := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	svc := &TipService{Tips: repo, Now: func() time.Time { clock = clock.Add(time.Minute); return clock }}

	owner := uuid.New()
	other := uuid.New()

	if _, err := svc.Create(ctx, owner, "   "); err == nil {
		t.Fatal("expected validation error for blank tip")
	}

	first, err := svc.Create(ctx, owner, "Stay on lit streets")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Create(ctx, owner, "Walk in groups")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tips, err := svc.List(ctx, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tips) != 2 || tips[0].ID != second.ID || tips[1].ID != first.ID {
		t.Fatalf("tips not newest first: %+v", tips)
	}

	if _, err := svc.Update(ctx, owner, first.ID, "tiny"); err == nil {
		t.Fatal("expected validation error for short tip")
	}
	if _, err := svc.Update(ctx, other, first.ID, "Someone else's edit"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign tip, got %v", err)
	}

	updated, err := svc.Update(ctx, owner, first.ID, "Stay on well lit streets")
	if err != nil || updated.Tip != "Stay on well lit streets" {
		t.Fatalf("update: %+v, %v", updated, err)
	}

	if err := svc.Delete(ctx, other, second.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign delete, got %v", err)
	}
	if err := svc.Delete(ctx, owner, second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestTipServiceRateLimited(t *testing.T) {
	ctx := context.Background()
	svc := &TipService{Tips: &fakeTips{}, Limiter: &fakeLimiter{limit: 1}}
	user := uuid.New()

	if _, err := svc.Create(ctx, user, "First tip"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Create(ctx, user, "Second tip"); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestReportServiceNearby(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeReports{}
	svc := &ReportService{Reports: repo, Now: func() time.Time { return now }}
	user := uuid.New()

	repo.reports = []domain.Report{
		{ID: uuid.New(), ReportType: "near-fresh", Coordinates: domain.Coordinates{Lat: 37.78, Lon: -122.41}, CreatedAt: now.Add(-time.Hour)},
		{ID: uuid.New(), ReportType: "near-stale", Coordinates: domain.Coordinates{Lat: 37.78, Lon: -122.41}, CreatedAt: now.Add(-25 * time.Hour)},
		{ID: uuid.New(), ReportType: "far-fresh", Coordinates: domain.Coordinates{Lat: 34.05, Lon: -118.24}, CreatedAt: now.Add(-time.Hour)},
	}

	created, err := svc.Create(ctx, user, CreateReportRequest{
		ReportType: "broken streetlight",
		Location:   domain.Coordinates{Lat: 37.77, Lon: -122.42},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Nearby(ctx, sanFrancisco)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}

	if len(got) != 2 || got[0].ID != created.ID || got[1].ReportType != "near-fresh" {
		t.Fatalf("unexpected nearby reports: %+v", got)
	}

	if _, err := svc.Nearby(ctx, domain.Coordinates{}); err == nil {
		t.Fatal("expected validation error for missing location")
	}
	if _, err := svc.Create(ctx, user, CreateReportRequest{Location: sanFrancisco}); err == nil {
		t.Fatal("expected validation error for missing report type")
	}
}

func TestProfileService(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	svc := &ProfileService{Users: users}

	id := uuid.New()
	_ = users.Create(ctx, &domain.User{ID: id, Name: "Ada", Email: "ada@example.com"})

	if _, err := svc.UpdateName(ctx, id, "A"); err == nil {
		t.Fatal("expected validation error for short name")
	}
	u, err := svc.UpdateName(ctx, id, "Ada Lovelace")
	if err != nil || u.Name != "Ada Lovelace" {
		t.Fatalf("update name: %+v, %v", u, err)
	}

	u, entry, err := svc.UpdateLocation(ctx, id, sanFrancisco)
	if err != nil {
		t.Fatalf("update location: %v", err)
	}
	if u.Location == nil || *u.Location != sanFrancisco || entry.Coordinates != sanFrancisco {
		t.Fatalf("location not recorded: %+v %+v", u.Location, entry)
	}
	if len(users.history) != 1 {
		t.Fatalf("history entries = %d, want 1", len(users.history))
	}

	if _, _, err := svc.UpdateLocation(ctx, id, domain.Coordinates{Lat: -95}); err == nil {
		t.Fatal("expected validation error for out-of-range latitude")
	}

	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, id); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestAdviceService(t *testing.T) {
	ctx := context.Background()
	advisor := &fakeAdvisor{answer: "  Stay near the entrance.  "}
	svc := &AdviceService{Advisor: advisor}

	got, err := svc.Advise(ctx, AdviceRequest{LocationType: "park", Situation: "being followed", Location: sanFrancisco})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Stay near the entrance." {
		t.Fatalf("advice = %q", got)
	}
	if !strings.Contains(advisor.prompt, "near a park") || !strings.Contains(advisor.prompt, "being followed") {
		t.Fatalf("prompt missing context: %q", advisor.prompt)
	}

	advisor.answer = ""
	got, err = svc.Advise(ctx, AdviceRequest{LocationType: "park", Situation: "lost", Location: sanFrancisco})
	if err != nil || got != noAdvice {
		t.Fatalf("empty answer: got %q, %v", got, err)
	}

	advisor.err = errBoom
	if _, err := svc.Advise(ctx, AdviceRequest{LocationType: "park", Situation: "lost", Location: sanFrancisco}); !errors.Is(err, errBoom) {
		t.Fatalf("expected advisor error, got %v", err)
	}

	if _, err := svc.Advise(ctx, AdviceRequest{Situation: "lost", Location: sanFrancisco}); err == nil {
		t.Fatal("expected validation error for missing location type")
	}
}
