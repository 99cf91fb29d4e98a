// Package waypoint holds the ordered list of points the user has placed.
package waypoint

import (
	"sync"

	"asciiline/internal/geo"

	"github.com/google/uuid"
)

// Waypoint is a user-placed point. IDs are UUIDv7, so sorting them as
// strings gives insertion order.
type Waypoint struct {
	ID         uuid.UUID
	Coordinate geo.Coordinate
}

// Store is the ordered waypoint collection. Insertion order is drawing order
// and the last waypoint is the one that follows the viewport center.
// All methods are safe for concurrent use; each runs to completion under the
// store lock, so a sync never interleaves with an add or remove.
type Store struct {
	waypoints []Waypoint
	newID     func() uuid.UUID
	mu        sync.RWMutex
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		waypoints: make([]Waypoint, 0),
		newID:     newID,
	}
}

// newID never hands out the same value twice in a process, even for calls
// inside the same millisecond
func newID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// Start places the first waypoint at the viewport center.
// It does nothing and returns false when the store already has waypoints.
func (s *Store) Start(vp geo.Viewport) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.waypoints) > 0 {
		return false
	}

	s.waypoints = append(s.waypoints, Waypoint{ID: s.newID(), Coordinate: vp.Center})
	return true
}

// Add appends a waypoint at the viewport center
func (s *Store) Add(vp geo.Viewport) Waypoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	wp := Waypoint{ID: s.newID(), Coordinate: vp.Center}
	s.waypoints = append(s.waypoints, wp)
	return wp
}

// RemoveLast removes the last waypoint, returning it.
// On an empty store it returns false.
func (s *Store) RemoveLast() (Waypoint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.waypoints) == 0 {
		return Waypoint{}, false
	}

	last := s.waypoints[len(s.waypoints)-1]
	s.waypoints = s.waypoints[:len(s.waypoints)-1]
	return last, true
}

// SyncLastToCenter overwrites the coordinate of the last waypoint, keeping
// its ID. Returns false on an empty store.
func (s *Store) SyncLastToCenter(c geo.Coordinate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.waypoints) == 0 {
		return false
	}

	s.waypoints[len(s.waypoints)-1].Coordinate = c
	return true
}

// Snapshot returns a copy of the waypoints in insertion order
func (s *Store) Snapshot() []Waypoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]Waypoint, len(s.waypoints))
	copy(snapshot, s.waypoints)
	return snapshot
}

// Len returns the number of waypoints
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.waypoints)
}

// Reset removes every waypoint and returns how many were removed
func (s *Store) Reset() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.waypoints)
	s.waypoints = make([]Waypoint, 0)
	return removed
}
