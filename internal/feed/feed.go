package feed

import (
	"fmt"
	"sort"
	"strings"
)

const baseURL = "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fgtfs"

// FeedURLs for NYC Subway, keyed by line group
var FeedURLs = map[string]string{
	"1234567S": baseURL,
	"ACE":      baseURL + "-ace",
	"NQRW":     baseURL + "-nqrw",
	"BDFM":     baseURL + "-bdfm",
	"L":        baseURL + "-l",
	"G":        baseURL + "-g",
	"JZ":       baseURL + "-jz",
	"SIR":      baseURL + "-si",
}

// legacyFeedIDs are the numeric ids published in the tool help text
var legacyFeedIDs = map[string]string{
	"1":  "1234567S",
	"26": "ACE",
	"16": "NQRW",
	"21": "BDFM",
	"2":  "L",
	"11": "G",
	"31": "JZ",
	"36": "1234567S",
	"51": "SIR",
}

// routeFeeds maps route ids to their line group. Numeric ids that collide
// with legacyFeedIDs ("1", "2") resolve through the legacy table first.
var routeFeeds = map[string]string{
	"3": "1234567S", "4": "1234567S", "5": "1234567S", "6": "1234567S",
	"6X": "1234567S", "7": "1234567S", "7X": "1234567S", "GS": "1234567S", "S": "1234567S",
	"A": "ACE", "C": "ACE", "E": "ACE", "H": "ACE", "FS": "ACE", "SR": "ACE",
	"N": "NQRW", "Q": "NQRW", "R": "NQRW", "W": "NQRW",
	"B": "BDFM", "D": "BDFM", "F": "BDFM", "FX": "BDFM", "M": "BDFM",
	"L": "L",
	"G": "G",
	"J": "JZ", "Z": "JZ",
	"SI": "SIR", "SIR": "SIR",
}

// HelpText describes the accepted feed ids for tool callers
const HelpText = `Common feed IDs:
"1": 1, 2, 3, 4, 5, 6, S (42 St Shuttle)
"26": A, C, E, H (Rockaway Shuttle), S (Franklin Ave Shuttle)
"16": N, Q, R, W
"21": B, D, F, M
"2": L
"11": G
"31": J, Z
"36": 7
"51": Staten Island Railway`

// Registry resolves feed ids to GTFS-realtime URLs
type Registry struct {
	urls map[string]string
}

// NewRegistry creates a registry from the built-in table plus overrides.
// Override keys are feed ids; values are full URLs.
func NewRegistry(overrides map[string]string) *Registry {
	urls := make(map[string]string, len(legacyFeedIDs)+len(routeFeeds)+len(overrides))
	for id, group := range routeFeeds {
		urls[id] = FeedURLs[group]
	}
	for id, group := range legacyFeedIDs {
		urls[id] = FeedURLs[group]
	}
	for id, url := range overrides {
		urls[id] = url
	}
	return &Registry{urls: urls}
}

// URL returns the feed URL for an id. Lookup is exact first, then upper-cased.
func (r *Registry) URL(feedID string) (string, error) {
	if url, ok := r.urls[feedID]; ok {
		return url, nil
	}
	if url, ok := r.urls[strings.ToUpper(strings.TrimSpace(feedID))]; ok {
		return url, nil
	}
	return "", fmt.Errorf("unrecognized feed id %q", feedID)
}

// IDs returns all known feed ids, sorted
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.urls))
	for id := range r.urls {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
