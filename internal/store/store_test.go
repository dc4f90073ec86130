package store

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	s := NewStore()

	s.UpdateStops(map[string]string{
		"127":  "Times Sq-42 St",
		"127N": "Times Sq-42 St",
		"631":  "Grand Central-42 St",
		"635":  "14 St-Union Sq",
		"R16":  "Times Sq-42 St",
	})

	t.Run("StopName", func(t *testing.T) {
		tests := []struct {
			stopID   string
			expected string
			found    bool
		}{
			{"127", "Times Sq-42 St", true},
			{"127N", "Times Sq-42 St", true},
			{"631", "Grand Central-42 St", true},
			{"R16", "Times Sq-42 St", true},
			{"631S", "", false},
			{"999N", "", false},
			{"N", "", false},
			{"", "", false},
		}

		for _, tt := range tests {
			t.Run(tt.stopID, func(t *testing.T) {
				name, ok := s.StopName(tt.stopID)
				assert.Equal(t, tt.found, ok)
				assert.Equal(t, tt.expected, name)
			})
		}
	})

	t.Run("Names", func(t *testing.T) {
		assert.Equal(t, []string{"14 St-Union Sq", "Grand Central-42 St", "Times Sq-42 St"}, s.Names())
	})

	t.Run("Len", func(t *testing.T) {
		assert.Equal(t, 5, s.Len())
	})

	t.Run("GetLastUpdate", func(t *testing.T) {
		assert.WithinDuration(t, time.Now(), s.GetLastUpdate(), time.Minute)
	})
}

func TestLoadStopsCSV(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    map[string]string
	}{
		{
			name:     "reordered columns",
			input:    "stop_name,stop_id\nTimes Sq-42 St,127\n14 St-Union Sq,635\n",
			expected: map[string]string{"127": "Times Sq-42 St", "635": "14 St-Union Sq"},
		},
		{
			name:     "byte order mark and quoted names",
			input:    "\ufeffstop_id,stop_name\n127,\"Times Sq-42 St\"\n",
			expected: map[string]string{"127": "Times Sq-42 St"},
		},
		{
			name:  "unnamed platforms take the parent station name",
			input: "stop_id,stop_name,location_type,parent_station\n127,Times Sq-42 St,1,\n127N,,0,127\n127S,,0,127\n",
			expected: map[string]string{
				"127":  "Times Sq-42 St",
				"127N": "Times Sq-42 St",
				"127S": "Times Sq-42 St",
			},
		},
		{
			name:     "platform with unknown parent and no name is dropped",
			input:    "stop_id,stop_name,parent_station\n127,Times Sq-42 St,\n999N,,999\n",
			expected: map[string]string{"127": "Times Sq-42 St"},
		},
		{
			name:        "ragged rows",
			input:       "stop_id,stop_lat,stop_name\n127,40.75,Times Sq-42 St\n635\n",
			expectError: true,
		},
		{
			name:        "missing stop_name column",
			input:       "stop_id,stop_lat\n127,40.75\n",
			expectError: true,
		},
		{
			name:        "empty input",
			input:       "",
			expectError: true,
		},
		{
			name:        "header only",
			input:       "stop_id,stop_name\n",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names, err := LoadStopsCSV(strings.NewReader(tt.input))
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names)
		})
	}
}

func rawZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// gtfsZip builds a minimal static archive around the given stops.txt
func gtfsZip(t *testing.T, stops string) []byte {
	t.Helper()
	return rawZip(t, map[string]string{
		"agency.txt":     "agency_id,agency_name,agency_url,agency_timezone\nMTA NYCT,MTA New York City Transit,http://www.mta.info,America/New_York\n",
		"routes.txt":     "agency_id,route_id,route_short_name,route_type\nMTA NYCT,1,1,1\n",
		"trips.txt":      "route_id,service_id,trip_id\n",
		"stop_times.txt": "trip_id,stop_id,arrival_time,departure_time,stop_sequence\n",
		"stops.txt":      stops,
	})
}

func TestLoadStopsZip(t *testing.T) {
	data := gtfsZip(t, "stop_id,stop_name,parent_station\n127,Times Sq-42 St,\n127S,,127\n")

	names, err := LoadStopsZip(data)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"127": "Times Sq-42 St", "127S": "Times Sq-42 St"}, names)

	_, err = LoadStopsZip(rawZip(t, map[string]string{"routes.txt": "route_id,route_type\n1,1\n"}))
	assert.Error(t, err)

	_, err = LoadStopsZip([]byte("not a zip"))
	assert.Error(t, err)
}

func TestLoadStopsFile(t *testing.T) {
	names, err := LoadStopsFile("testdata/stops.txt")
	require.NoError(t, err)
	assert.Equal(t, "Times Sq-42 St", names["127N"])
	assert.Equal(t, "Jay St-MetroTech", names["A41"])

	// zip detection by content, not extension
	path := filepath.Join(t.TempDir(), "google_transit")
	require.NoError(t, os.WriteFile(path, gtfsZip(t, "stop_id,stop_name\nL08,Bedford Av\n"), 0o644))
	names, err = LoadStopsFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Bedford Av", names["L08"])

	_, err = LoadStopsFile("testdata/nonexistent.txt")
	assert.Error(t, err)
}

func TestStoreLoad(t *testing.T) {
	zipped := gtfsZip(t, "stop_id,stop_name,parent_station\nG22,Court Sq,\nG22N,,G22\n")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/google_transit.zip":
			_, _ = w.Write(zipped)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	t.Run("from URL", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Load(context.Background(), srv.Client(), srv.URL+"/google_transit.zip"))
		name, ok := s.StopName("G22N")
		assert.True(t, ok)
		assert.Equal(t, "Court Sq", name)
	})

	t.Run("from file", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Load(context.Background(), srv.Client(), "testdata/stops.txt"))
		assert.Equal(t, 11, s.Len())
	})

	t.Run("oversized download", func(t *testing.T) {
		big := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			chunk := make([]byte, 1<<20)
			for i := 0; i <= maxStaticBytes>>20; i++ {
				if _, err := w.Write(chunk); err != nil {
					return
				}
			}
		}))
		defer big.Close()

		s := NewStore()
		err := s.Load(context.Background(), big.Client(), big.URL+"/google_transit.zip")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds")
	})

	t.Run("HTTP error", func(t *testing.T) {
		s := NewStore()
		err := s.Load(context.Background(), srv.Client(), srv.URL+"/missing.zip")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 404")
		assert.Equal(t, 0, s.Len())
	})
}
