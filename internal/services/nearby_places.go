package services

import (
	"cmp"
	"context"
	"fmt"
	"log"
	"safecity-service/internal/domain"
	"safecity-service/internal/platform/obs"
	"safecity-service/internal/ports"
	"slices"
	"sync"
	"time"
)

const (
	// Upper bound of rows served when falling back to the place cache.
	cachedPlacesLimit = 20
	cacheWriteTimeout = 10 * time.Second
)

// NearbyPlaceFinder looks up places of a category around a point.
//
// Live results come from the geodata provider, ranked by haversine distance,
// and are copied into the place cache in the background. When the live query
// cannot be made or fails, cached places of the same category are served
// instead, without distances.
//
// The finder is safe for concurrent use.
type NearbyPlaceFinder struct {
	provider ports.GeodataProvider
	cache    ports.PlaceCache

	mu      sync.Mutex
	closed  bool
	pending sync.WaitGroup
}

func NewNearbyPlaceFinder(provider ports.GeodataProvider, cache ports.PlaceCache) *NearbyPlaceFinder {
	return &NearbyPlaceFinder{provider: provider, cache: cache}
}

// Find resolves places of the given category near at.
func (f *NearbyPlaceFinder) Find(
	ctx context.Context,
	category string,
	at domain.Coordinates,
) (_ domain.NearbyResult, err error) {
	defer obs.Time(ctx, "nearby.Find")(&err)

	cat, err := domain.ParseCategory(category)
	if err != nil {
		return domain.NearbyResult{}, fmt.Errorf("find nearby places: %w", err)
	}

	if at.IsSentinel() {
		return f.fromCache(ctx, cat, domain.ErrInvalidLocation)
	}

	if !at.Valid() {
		return domain.NearbyResult{}, fmt.Errorf(
			"find nearby places: %w",
			domain.Invalid("latitude/longitude", "out of range"),
		)
	}

	// Only the provider's own time budget bounds the live query.
	features, err := f.provider.FetchNearby(context.WithoutCancel(ctx), cat, at)
	if err != nil {
		log.Printf("req_id=%s nearby live lookup failed category=%s err=%v", obs.RequestID(ctx), cat, err)
		return f.fromCache(ctx, cat, domain.ErrUpstreamUnavailable)
	}

	places := rankByDistance(at, features)
	if len(places) == 0 {
		return f.fromCache(ctx, cat, domain.ErrNoPlacesFound)
	}

	f.storeAsync(ctx, cat, places)

	return domain.NearbyResult{Source: domain.SourceLive, Places: places}, nil
}

// Wait blocks until all background cache writes have finished. Lookups
// may keep running; use Close when no further writes should start.
func (f *NearbyPlaceFinder) Wait() {
	f.pending.Wait()
}

// Close stops scheduling cache writes and waits for those in flight.
// Lookups still work after Close but are no longer cached.
func (f *NearbyPlaceFinder) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()

	f.pending.Wait()
}

// rankByDistance resolves a position for each feature, drops features that
// have none, and orders the rest nearest first.
func rankByDistance(at domain.Coordinates, features []domain.Feature) []domain.PlaceResult {
	places := make([]domain.PlaceResult, 0, len(features))
	for _, ft := range features {
		pos, ok := ft.Position()
		if !ok {
			continue
		}

		name := ft.Name
		if name == "" {
			name = domain.UnnamedLocation
		}

		miles := domain.RoundTenth(domain.DistanceMiles(at, pos))
		places = append(places, domain.PlaceResult{
			Name:        name,
			Coordinates: pos,
			Distance:    domain.MilesDistance(miles),
		})
	}

	slices.SortStableFunc(places, func(a, b domain.PlaceResult) int {
		return cmp.Compare(a.Distance.Miles, b.Distance.Miles)
	})

	return places
}

// fromCache serves cached places for cat. cause is the reason the live path
// was skipped and is returned when the cache has nothing to offer.
func (f *NearbyPlaceFinder) fromCache(
	ctx context.Context,
	cat domain.Category,
	cause error,
) (domain.NearbyResult, error) {
	cached, err := f.cache.ListByCategory(ctx, cat, cachedPlacesLimit)
	if err != nil {
		return domain.NearbyResult{}, fmt.Errorf("find nearby places: read place cache: %w: %w", cause, err)
	}

	if len(cached) == 0 {
		return domain.NearbyResult{}, fmt.Errorf("find nearby places: cache empty for %s: %w", cat, cause)
	}

	places := make([]domain.PlaceResult, 0, len(cached))
	for _, c := range cached {
		places = append(places, domain.PlaceResult{
			Name:        c.Name,
			Coordinates: c.Coordinates,
			Distance:    domain.UnknownDistance,
		})
	}

	return domain.NearbyResult{Source: domain.SourceCache, Places: places}, nil
}

// storeAsync copies places into the cache without holding up the response.
// Failures are logged only.
func (f *NearbyPlaceFinder) storeAsync(ctx context.Context, cat domain.Category, places []domain.PlaceResult) {
	rows := make([]domain.CachedPlace, 0, len(places))
	for _, p := range places {
		rows = append(rows, domain.CachedPlace{
			Name:        p.Name,
			Category:    cat,
			Coordinates: p.Coordinates,
		})
	}

	reqID := obs.RequestID(ctx)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		log.Printf("req_id=%s place cache write skipped, finder closed category=%s rows=%d", reqID, cat, len(rows))
		return
	}
	f.pending.Add(1)
	f.mu.Unlock()

	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheWriteTimeout)
	go func() {
		defer f.pending.Done()
		defer cancel()

		if err := f.cache.UpsertMany(wctx, rows); err != nil {
			log.Printf("req_id=%s place cache write failed category=%s rows=%d err=%v", reqID, cat, len(rows), err)
		}
	}()
}
