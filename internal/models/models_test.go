package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueryParametersWithDefaults(t *testing.T) {
	tests := []struct {
		name     string
		input    QueryParameters
		expected string
	}{
		{"empty feed defaults to 1", QueryParameters{TargetStation: "Times Sq-42 St", TargetDirection: "N"}, "1"},
		{"explicit feed kept", QueryParameters{TargetStation: "Times Sq-42 St", TargetDirection: "N", FeedID: "26"}, "26"},
		{"route alias kept", QueryParameters{FeedID: "A"}, "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.input.WithDefaults()
			assert.Equal(t, tt.expected, got.FeedID)
			assert.Equal(t, tt.input.TargetStation, got.TargetStation)
			assert.Equal(t, tt.input.TargetDirection, got.TargetDirection)
		})
	}
}

func TestStopTimeUpdateHasArrival(t *testing.T) {
	now := time.Now()

	assert.True(t, StopTimeUpdate{StopID: "127N", Arrival: &now}.HasArrival())
	assert.False(t, StopTimeUpdate{StopID: "127N"}.HasArrival())
}
