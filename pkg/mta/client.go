package mta

import (
	"context"
	"time"

	"github.com/jusunglee/mta-mcp/internal/models"
	"github.com/jusunglee/mta-mcp/internal/report"
)

// Client defines the interface for answering next-train queries
// Abstracts different data sources behind common interface
type Client interface {
	// NextTrain always returns a Result with non-empty text; failures are
	// reported through Result.Kind rather than an error.
	NextTrain(ctx context.Context, params models.QueryParameters) report.Result

	FeedIDs() []string

	GetLastStaticUpdate() time.Time
}
