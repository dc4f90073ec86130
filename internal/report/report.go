// Package report turns a feed snapshot into the text answer of a next-train query.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jusunglee/mta-mcp/internal/models"
)

// TimeLayout renders arrivals as 24-hour wall-clock time
const TimeLayout = "15:04:05"

// Kind identifies which variant a Result carries
type Kind int

const (
	// KindReport is a list of matching arrivals
	KindReport Kind = iota
	// KindNoMatch means the feed had trips but none stopped at the station in that direction
	KindNoMatch
	// KindEmptyFeed means the feed decoded but held no trips
	KindEmptyFeed
	// KindAcquisitionFailure means fetching or decoding the feed failed
	KindAcquisitionFailure
)

func (k Kind) String() string {
	switch k {
	case KindReport:
		return "report"
	case KindNoMatch:
		return "no_match"
	case KindEmptyFeed:
		return "empty_feed"
	case KindAcquisitionFailure:
		return "acquisition_failure"
	}
	return "unknown"
}

// Result is the outcome of a query. Text is always non-empty.
type Result struct {
	Kind Kind
	Text string
}

// OK reports whether the result answers the query (with or without matches)
func (r Result) OK() bool {
	return r.Kind == KindReport || r.Kind == KindNoMatch
}

func (r Result) String() string {
	return r.Text
}

// Formatter renders arrival times in a fixed location
type Formatter struct {
	loc *time.Location
}

// NewFormatter creates a formatter for the given location; nil means time.Local
func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{loc: loc}
}

// Failure builds the result for a feed that could not be fetched or decoded
func Failure(feedID string, err error) Result {
	return Result{
		Kind: KindAcquisitionFailure,
		Text: fmt.Sprintf("Failed to load MTA feed data for feed ID %s: %v", feedID, err),
	}
}

// Build converts the outcome of an acquisition into a Result.
// err is the acquisition error, if any; it takes precedence over trips.
func (f *Formatter) Build(trips []models.Trip, err error, params models.QueryParameters) Result {
	params = params.WithDefaults()
	if err != nil {
		return Failure(params.FeedID, err)
	}
	if len(trips) == 0 {
		return Result{
			Kind: KindEmptyFeed,
			Text: fmt.Sprintf("No train data found for feed ID %s.", params.FeedID),
		}
	}

	lines := f.matches(trips, params.TargetStation, params.TargetDirection)
	if lines == "" {
		return Result{
			Kind: KindNoMatch,
			Text: fmt.Sprintf("No %s bound trains found for %s on feed %s at this time.",
				params.TargetDirection, params.TargetStation, params.FeedID),
		}
	}
	return Result{Kind: KindReport, Text: lines}
}

// Generate returns the report text for a snapshot that was acquired successfully
func (f *Formatter) Generate(trips []models.Trip, station, direction, feedID string) string {
	return f.Build(trips, nil, models.QueryParameters{
		TargetStation:   station,
		TargetDirection: direction,
		FeedID:          feedID,
	}).Text
}

// matches walks trips then updates in input order. Comparison is exact.
func (f *Formatter) matches(trips []models.Trip, station, direction string) string {
	var sb strings.Builder
	for _, trip := range trips {
		if trip.Direction != direction {
			continue
		}
		for _, u := range trip.StopTimeUpdates {
			if u.StopName != station {
				continue
			}
			sb.WriteString(f.line(trip.RouteID, direction, station, u.Arrival))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (f *Formatter) line(route, direction, station string, arrival *time.Time) string {
	if arrival == nil {
		return fmt.Sprintf("The next %s bound %s train is scheduled at %s, but arrival time is not currently available.",
			direction, route, station)
	}
	return fmt.Sprintf("The next %s bound %s train arriving at %s will arrive at %s.",
		direction, route, station, arrival.In(f.loc).Format(TimeLayout))
}
