package mta

import (
	"context"
	"fmt"
	"time"

	gtfsrt "github.com/jamespfennell/gtfs/proto"
	"golang.org/x/sync/semaphore"

	"github.com/jusunglee/mta-mcp/internal/feed"
	"github.com/jusunglee/mta-mcp/internal/logger"
	"github.com/jusunglee/mta-mcp/internal/models"
	"github.com/jusunglee/mta-mcp/internal/report"
	"github.com/jusunglee/mta-mcp/internal/store"
)

// LocalClient implements the Client interface for local usage
// Each query fetches its own feed snapshot; only stop names are shared
type LocalClient struct {
	store     *store.Store
	source    *feed.Source
	formatter *report.Formatter
	fetches   *semaphore.Weighted
	log       logger.Logger
}

// NewLocal creates a new local MTA client
// Loads static stop names before returning
func NewLocal(ctx context.Context, config Config, log logger.Logger) (*LocalClient, error) {
	if log == nil {
		log = logger.Nop()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	loc, err := config.Location()
	if err != nil {
		return nil, err
	}

	fetcher := feed.NewFetcher(config.APIKey, config.Timeout())

	s := store.NewStore()
	start := time.Now()
	if err := s.Load(ctx, fetcher.HTTPClient(), config.StopsPath); err != nil {
		return nil, fmt.Errorf("failed to load static stop data: %w", err)
	}
	log.Info("Loaded static stop data", "stops", s.Len(), "source", config.StopsPath, "elapsed", time.Since(start).String())

	return &LocalClient{
		store:     s,
		source:    feed.NewSource(feed.NewRegistry(config.Feeds), fetcher, s, log),
		formatter: report.NewFormatter(loc),
		fetches:   semaphore.NewWeighted(config.MaxConcurrentFetches),
		log:       log,
	}, nil
}

// NextTrain fetches the requested feed and reports arrivals at the station
func (c *LocalClient) NextTrain(ctx context.Context, params models.QueryParameters) report.Result {
	params = params.WithDefaults()

	if err := c.fetches.Acquire(ctx, 1); err != nil {
		c.log.Warn("Gave up waiting for a fetch slot", "feed_id", params.FeedID, "error", err)
		return report.Failure(params.FeedID, err)
	}
	defer c.fetches.Release(1)

	trips, err := c.source.Trips(ctx, params.FeedID)
	res := c.formatter.Build(trips, err, params)

	c.log.Info("Answered next train query",
		"station", params.TargetStation,
		"direction", params.TargetDirection,
		"feed_id", params.FeedID,
		"trips", len(trips),
		"outcome", res.Kind.String(),
	)
	return res
}

// RawFeed returns the decoded feed message for inspection
func (c *LocalClient) RawFeed(ctx context.Context, feedID string) (*gtfsrt.FeedMessage, error) {
	if err := c.fetches.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.fetches.Release(1)
	return c.source.Raw(ctx, feedID)
}

// FeedIDs returns the feed ids accepted by NextTrain
func (c *LocalClient) FeedIDs() []string {
	return c.source.Registry().IDs()
}

// StationNames returns the known station names
func (c *LocalClient) StationNames() []string {
	return c.store.Names()
}

// GetLastStaticUpdate returns when stop names were loaded
func (c *LocalClient) GetLastStaticUpdate() time.Time {
	return c.store.GetLastUpdate()
}
