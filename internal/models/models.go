package models

import (
	"time"
)

// DefaultFeedID is the feed queried when the caller does not name one
const DefaultFeedID = "1"

// Direction codes used by NYCT trips
const (
	North = "N"
	South = "S"
)

// StopTimeUpdate represents a predicted stop event along a trip
type StopTimeUpdate struct {
	StopID   string     `json:"stop_id"`
	StopName string     `json:"stop_name"`
	Arrival  *time.Time `json:"arrival,omitempty"`
}

// HasArrival reports whether an arrival prediction is available
func (u StopTimeUpdate) HasArrival() bool {
	return u.Arrival != nil
}

// Trip represents one in-service train from a feed snapshot.
// StopTimeUpdates keep the order in which the feed lists them.
type Trip struct {
	TripID          string           `json:"trip_id"`
	RouteID         string           `json:"route_id"`
	Direction       string           `json:"direction"`
	StopTimeUpdates []StopTimeUpdate `json:"stop_time_updates"`
}

// QueryParameters holds the arguments of a next-train lookup
type QueryParameters struct {
	TargetStation   string `json:"target_station" validate:"required"`
	TargetDirection string `json:"target_direction" validate:"required"`
	FeedID          string `json:"feed_id"`
}

// WithDefaults returns a copy with FeedID defaulted
func (q QueryParameters) WithDefaults() QueryParameters {
	if q.FeedID == "" {
		q.FeedID = DefaultFeedID
	}
	return q
}
