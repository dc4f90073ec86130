package feed

import (
	"context"
	"time"

	gtfsrt "github.com/jamespfennell/gtfs/proto"

	"github.com/jusunglee/mta-mcp/internal/logger"
	"github.com/jusunglee/mta-mcp/internal/models"
)

// Source acquires fresh trip snapshots by feed id. Every call fetches and
// decodes its own copy; nothing is retained between calls.
type Source struct {
	registry *Registry
	fetcher  *Fetcher
	names    StopNamer
	log      logger.Logger
}

// NewSource creates a feed source
func NewSource(registry *Registry, fetcher *Fetcher, names StopNamer, log logger.Logger) *Source {
	if log == nil {
		log = logger.Nop()
	}
	return &Source{
		registry: registry,
		fetcher:  fetcher,
		names:    names,
		log:      log,
	}
}

// Registry returns the feed id registry
func (s *Source) Registry() *Registry {
	return s.registry
}

// Raw fetches and decodes a feed without converting it
func (s *Source) Raw(ctx context.Context, feedID string) (*gtfsrt.FeedMessage, error) {
	url, err := s.registry.URL(feedID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.log.Warn("Feed fetch failed", "feed_id", feedID, "error", err)
		return nil, err
	}

	fm, err := Unmarshal(data)
	if err != nil {
		s.log.Warn("Feed decode failed", "feed_id", feedID, "bytes", len(data), "error", err)
		return nil, err
	}

	s.log.Debug("Feed acquired", "feed_id", feedID, "entities", len(fm.GetEntity()), "elapsed", time.Since(start).String())
	return fm, nil
}

// Trips fetches a feed and returns its trips
func (s *Source) Trips(ctx context.Context, feedID string) ([]models.Trip, error) {
	fm, err := s.Raw(ctx, feedID)
	if err != nil {
		return nil, err
	}
	return Trips(fm, s.names), nil
}
