// Package viewport tracks the visible map region and keeps the most recently
// placed waypoint riding the map center while the user pans.
package viewport

import (
	"sync"

	"asciiline/internal/geo"
	"asciiline/internal/waypoint"

	"github.com/rs/zerolog/log"
)

// Store is the part of the waypoint store the controller drives
type Store interface {
	Start(vp geo.Viewport) bool
	Add(vp geo.Viewport) waypoint.Waypoint
	RemoveLast() (waypoint.Waypoint, bool)
	SyncLastToCenter(c geo.Coordinate) bool
	Reset() int
}

// Controller receives viewport changes from the map display and routes the
// user's line-drawing actions to the store at the current center
type Controller struct {
	current geo.Viewport
	store   Store
	mu      sync.RWMutex
}

// NewController creates a controller starting at the initial viewport
func NewController(initial geo.Viewport, store Store) *Controller {
	return &Controller{
		current: initial,
		store:   store,
	}
}

// OnViewportChanged records the new viewport and moves the last waypoint to
// its center. The map display may call it many times per gesture; repeating
// a call with the same viewport changes nothing.
func (c *Controller) OnViewportChanged(vp geo.Viewport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = vp
	synced := c.store.SyncLastToCenter(vp.Center)

	log.Trace().
		Stringer("viewport", vp).
		Bool("synced", synced).
		Msg("Viewport changed")
}

// Viewport returns the current viewport
func (c *Controller) Viewport() geo.Viewport {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// StartLine places the first waypoint at the current center.
// Returns false if a line is already started.
func (c *Controller) StartLine() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	started := c.store.Start(c.current)
	if started {
		log.Debug().Stringer("at", c.current.Center).Msg("Line started")
	}
	return started
}

// AddPoint appends a waypoint at the current center
func (c *Controller) AddPoint() waypoint.Waypoint {
	c.mu.RLock()
	defer c.mu.RUnlock()

	wp := c.store.Add(c.current)
	log.Debug().Str("id", wp.ID.String()).Stringer("at", wp.Coordinate).Msg("Waypoint added")
	return wp
}

// RemoveLastPoint drops the most recent waypoint; a no-op with no waypoints
func (c *Controller) RemoveLastPoint() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	wp, ok := c.store.RemoveLast()
	if ok {
		log.Debug().Str("id", wp.ID.String()).Msg("Waypoint removed")
	}
	return ok
}

// Reset clears every waypoint
func (c *Controller) Reset() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	removed := c.store.Reset()
	log.Debug().Int("removed", removed).Msg("Waypoints reset")
	return removed
}
