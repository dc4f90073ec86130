package store

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/jamespfennell/gtfs"
)

// ErrNoStops is returned when a stops source holds no usable rows
var ErrNoStops = errors.New("no stops found")

// maxStaticBytes caps a downloaded GTFS static archive
const maxStaticBytes = 64 << 20

// Header-only tables the static parser insists on when only stops.txt is at hand
var requiredTables = map[string]string{
	"agency.txt":     "agency_name,agency_url,agency_timezone\n",
	"routes.txt":     "route_id,route_type\n",
	"trips.txt":      "route_id,service_id,trip_id\n",
	"stop_times.txt": "trip_id,stop_id,stop_sequence\n",
}

// LoadStopsZip parses a GTFS static archive and returns stop_id -> stop_name.
// Platforms without a name of their own take their parent station's.
func LoadStopsZip(data []byte) (map[string]string, error) {
	static, err := gtfs.ParseStatic(data, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse GTFS static: %w", err)
	}
	return stopNames(static.Stops)
}

// LoadStopsCSV reads a bare GTFS stops.txt
func LoadStopsCSV(r io.Reader) (map[string]string, error) {
	stops, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read stops: %w", err)
	}
	data, err := wrapStops(stops)
	if err != nil {
		return nil, err
	}
	return LoadStopsZip(data)
}

// LoadStopsFile loads stops from a local stops.txt or GTFS zip
func LoadStopsFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return loadStopsBytes(path, data)
}

// LoadStopsURL downloads stops from a remote stops.txt or GTFS zip
func LoadStopsURL(ctx context.Context, client *http.Client, url string) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxStaticBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxStaticBytes {
		return nil, fmt.Errorf("static data from %s exceeds %d bytes", url, maxStaticBytes)
	}
	return loadStopsBytes(url, data)
}

// Load fills the store from a path or http(s) URL
func (s *Store) Load(ctx context.Context, client *http.Client, pathOrURL string) error {
	var (
		names map[string]string
		err   error
	)
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		names, err = LoadStopsURL(ctx, client, pathOrURL)
	} else {
		names, err = LoadStopsFile(pathOrURL)
	}
	if err != nil {
		return fmt.Errorf("load stops from %s: %w", pathOrURL, err)
	}
	s.UpdateStops(names)
	return nil
}

func stopNames(stops []gtfs.Stop) (map[string]string, error) {
	names := make(map[string]string, len(stops))
	for i := range stops {
		stop := &stops[i]
		name := stop.Name
		if name == "" && stop.Parent != nil {
			name = stop.Parent.Name
		}
		if name == "" {
			continue
		}
		names[stop.Id] = name
	}
	if len(names) == 0 {
		return nil, ErrNoStops
	}
	return names, nil
}

// wrapStops packs a lone stops.txt into an archive the static parser accepts
func wrapStops(stops []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)

	write := func(name string, content []byte) error {
		f, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = f.Write(content)
		return err
	}

	if err := write("stops.txt", stops); err != nil {
		return nil, fmt.Errorf("failed to pack stops: %w", err)
	}
	for name, header := range requiredTables {
		if err := write(name, []byte(header)); err != nil {
			return nil, fmt.Errorf("failed to pack stops: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to pack stops: %w", err)
	}
	return buf.Bytes(), nil
}

func loadStopsBytes(name string, data []byte) (map[string]string, error) {
	if isZip(name, data) {
		return LoadStopsZip(data)
	}
	return LoadStopsCSV(bytes.NewReader(data))
}

func isZip(name string, data []byte) bool {
	if strings.HasSuffix(strings.ToLower(name), ".zip") {
		return true
	}
	return bytes.HasPrefix(data, []byte("PK\x03\x04"))
}
