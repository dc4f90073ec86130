package store

import (
	"sort"
	"sync"
	"time"
)

// Store manages in-memory stop names from GTFS static data
type Store struct {
	mu         sync.RWMutex
	stopNames  map[string]string
	lastUpdate time.Time
}

// NewStore creates a new store instance
func NewStore() *Store {
	return &Store{
		stopNames: make(map[string]string),
	}
}

// UpdateStops replaces the stop data
func (s *Store) UpdateStops(names map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopNames = make(map[string]string, len(names))
	for id, name := range names {
		s.stopNames[id] = name
	}
	s.lastUpdate = time.Now()
}

// StopName returns the name of a stop or platform
func (s *Store) StopName(stopID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name, ok := s.stopNames[stopID]
	return name, ok
}

// Names returns the distinct stop names, sorted
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, len(s.stopNames))
	result := make([]string, 0, len(s.stopNames))
	for _, name := range s.stopNames {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Len returns the number of stop ids held
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stopNames)
}

// GetLastUpdate returns the last update time
func (s *Store) GetLastUpdate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}

