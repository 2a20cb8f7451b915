package enrich

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vlecomte/phototrip-backend-go/internal/geocode"
)

// Pipeline runs the full metadata enrichment for one album: day grouping,
// coordinate resolution, place naming, aggregation and title generation. It
// is short-lived batch work; the only shared mutable state is the geocode
// cache, which handles its own locking.
type Pipeline struct {
	logger   *zap.Logger
	resolver geocode.Resolver
	cache    *geocode.Cache
	cfg      Config
}

// NewPipeline creates a pipeline with an injected resolver and cache
func NewPipeline(logger *zap.Logger, resolver geocode.Resolver, cache *geocode.Cache, cfg Config) *Pipeline {
	return &Pipeline{
		logger:   logger,
		resolver: resolver,
		cache:    cache,
		cfg:      cfg,
	}
}

// Run enriches one album's batch. Data flows strictly forward through the
// stages; photos and day groups are mutated in place. The only fatal input
// error is a missing album id — everything else degrades to defaults or
// "unresolved". Cancellation abandons pending lookups but the output still
// carries everything computed so far.
func (p *Pipeline) Run(ctx context.Context, in Input) (*Output, error) {
	if in.AlbumID == "" {
		return nil, fmt.Errorf("enrich: album id is required")
	}

	days := GroupByDay(in.Photos)
	out := &Output{Days: days}

	if len(days) == 0 {
		p.logger.Info("no timestamped photos, nothing to enrich",
			zap.String("album_id", in.AlbumID),
		)
		return out, nil
	}

	out.AlbumCoord = ResolveCoordinates(days, p.cfg.DefaultCoord)

	out.AlbumPlaceName, out.GeocodeCalls = ResolvePlaces(
		ctx, p.logger, p.cache, p.resolver, days, out.AlbumCoord, p.cfg)

	out.Entries = BuildDayEntries(in.AlbumID, days)

	p.logger.Info("enrichment pipeline finished",
		zap.String("album_id", in.AlbumID),
		zap.Int("days", len(days)),
		zap.Int("geocode_calls", out.GeocodeCalls),
		zap.String("album_place", out.AlbumPlaceName),
	)

	return out, nil
}
