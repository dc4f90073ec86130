package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jusunglee/mta-mcp/pkg/mta"
)

func TestDefaultTimezoneWithoutSystemZoneinfo(t *testing.T) {
	t.Setenv("ZONEINFO", t.TempDir())

	cfg := mta.DefaultConfig()
	require.NoError(t, cfg.Validate())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}
