package enrich

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vlecomte/phototrip-backend-go/internal/geocode"
	"github.com/vlecomte/phototrip-backend-go/internal/models"
	"github.com/vlecomte/phototrip-backend-go/internal/spatial"
)

// countingResolver wraps a resolver and counts how many lookups actually
// reach it. Cache hits never show up in the count.
type countingResolver struct {
	inner geocode.Resolver
	calls atomic.Int64
}

func (r *countingResolver) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	r.calls.Add(1)
	return r.inner.Reverse(ctx, lat, lon)
}

// ResolvePlaces attaches place names to the album anchor, every day anchor and
// every photo. Anchors resolve first, concurrently but bounded; photos then
// inherit their day's name when within the proximity threshold, and the rest
// resolve individually under a per-day attempt budget, with unresolved
// neighbours adopting each freshly resolved name.
//
// Lookup failures are tolerated everywhere: a day or photo may legitimately
// end up without a name. Cancellation stops further lookups but keeps names
// already assigned.
func ResolvePlaces(ctx context.Context, logger *zap.Logger, cache *geocode.Cache, resolver geocode.Resolver, days []*DayGroup, albumCoord Coordinate, cfg Config) (albumName string, geocodeCalls int) {
	counting := &countingResolver{inner: resolver}

	albumName = resolveAnchors(ctx, logger, cache, counting, days, albumCoord, cfg)

	for _, day := range days {
		if ctx.Err() != nil {
			break
		}
		resolveDayPhotos(ctx, logger, cache, counting, day, cfg)
	}

	return albumName, int(counting.calls.Load())
}

// resolveAnchors resolves the album coordinate and every distinct day
// coordinate, deduplicated through the cache, with bounded concurrency
func resolveAnchors(ctx context.Context, logger *zap.Logger, cache *geocode.Cache, resolver geocode.Resolver, days []*DayGroup, albumCoord Coordinate, cfg Config) string {
	g, gctx := errgroup.WithContext(ctx)
	limit := cfg.GeocodeConcurrency
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)

	var albumName string
	g.Go(func() error {
		name, err := cache.Resolve(gctx, resolver, albumCoord.Lat, albumCoord.Lon)
		if err != nil {
			logger.Warn("album anchor unresolved",
				zap.Float64("lat", albumCoord.Lat),
				zap.Float64("lon", albumCoord.Lon),
				zap.Error(err),
			)
			return nil
		}
		albumName = name
		return nil
	})

	for _, day := range days {
		day := day
		g.Go(func() error {
			name, err := cache.Resolve(gctx, resolver, day.Coord.Lat, day.Coord.Lon)
			if err != nil {
				logger.Warn("day anchor unresolved",
					zap.String("date", day.Key),
					zap.Error(err),
				)
				return nil
			}
			day.PlaceName = name
			return nil
		})
	}

	// Goroutines never return errors; failures are per-anchor and tolerated
	_ = g.Wait()

	return albumName
}

// resolveDayPhotos names the photos of one day: inherit from the day anchor
// within the proximity threshold, then resolve outliers under the budget
func resolveDayPhotos(ctx context.Context, logger *zap.Logger, cache *geocode.Cache, resolver geocode.Resolver, day *DayGroup, cfg Config) {
	var pending []*models.Photo

	for _, p := range day.Photos {
		if p.LocationName != nil && *p.LocationName != "" {
			continue // pre-existing name, never overwritten
		}
		if !p.HasCoords() {
			continue
		}

		dist := spatial.HaversineKm(*p.Latitude, *p.Longitude, day.Coord.Lat, day.Coord.Lon)
		if dist <= cfg.ProximityKm && day.PlaceName != "" {
			name := day.PlaceName
			p.LocationName = &name
			continue
		}

		pending = append(pending, p)
	}

	budget := cfg.MaxResolvesPerDay
	for len(pending) > 0 && budget > 0 && ctx.Err() == nil {
		p := pending[0]
		pending = pending[1:]
		budget--

		name, err := cache.Resolve(ctx, resolver, *p.Latitude, *p.Longitude)
		if err != nil || name == "" {
			if err != nil {
				logger.Warn("photo location unresolved",
					zap.String("photo_id", p.ID),
					zap.String("date", day.Key),
					zap.Error(err),
				)
			}
			continue
		}

		p.LocationName = &name

		// Still-unresolved photos near this one adopt its name without a
		// lookup of their own
		var rest []*models.Photo
		for _, q := range pending {
			dist := spatial.HaversineKm(*q.Latitude, *q.Longitude, *p.Latitude, *p.Longitude)
			if dist <= cfg.ProximityKm {
				adopted := name
				q.LocationName = &adopted
			} else {
				rest = append(rest, q)
			}
		}
		pending = rest
	}
}
