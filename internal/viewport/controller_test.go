package viewport

import (
	"testing"

	"asciiline/internal/geo"
	"asciiline/internal/report"
	"asciiline/internal/waypoint"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViewport(lat, lon float64) geo.Viewport {
	return geo.Viewport{
		Center:        geo.Coordinate{Latitude: lat, Longitude: lon},
		LatitudeSpan:  0.1,
		LongitudeSpan: 0.1,
	}
}

func TestController_InitialViewport(t *testing.T) {
	initial := newViewport(37.78825, -122.4324)
	c := NewController(initial, waypoint.NewStore())

	assert.Equal(t, initial, c.Viewport())
}

func TestController_OnViewportChangedWithoutWaypoints(t *testing.T) {
	store := waypoint.NewStore()
	c := NewController(newViewport(0, 0), store)

	moved := newViewport(1, 2)
	c.OnViewportChanged(moved)

	assert.Equal(t, moved, c.Viewport())
	assert.Equal(t, 0, store.Len())
}

func TestController_LastWaypointRidesCenter(t *testing.T) {
	store := waypoint.NewStore()
	c := NewController(newViewport(37.0, -122.0), store)

	require.True(t, c.StartLine())
	require.Len(t, store.Snapshot(), 1)
	assert.Equal(t, geo.Coordinate{Latitude: 37.0, Longitude: -122.0}, store.Snapshot()[0].Coordinate)

	c.AddPoint()
	wps := store.Snapshot()
	require.Len(t, wps, 2)
	assert.Equal(t, geo.Coordinate{Latitude: 37.0, Longitude: -122.0}, wps[1].Coordinate)

	c.OnViewportChanged(newViewport(37.01, -122.0))

	after := store.Snapshot()
	require.Len(t, after, 2)
	assert.Equal(t, wps[0], after[0])
	assert.Equal(t, wps[1].ID, after[1].ID)
	assert.Equal(t, geo.Coordinate{Latitude: 37.01, Longitude: -122.0}, after[1].Coordinate)

	assert.Equal(t, "1111.95 meters", report.CurrentDistanceLabel(after))
	assert.InDelta(t, 1111.95, geo.DistanceMeters(after[0].Coordinate, after[1].Coordinate), 0.01)
}

func TestController_RepeatedChangesAreIdempotent(t *testing.T) {
	store := waypoint.NewStore()
	c := NewController(newViewport(0, 0), store)
	c.StartLine()

	vp := newViewport(5, 5)
	for i := 0; i < 50; i++ {
		c.OnViewportChanged(vp)
	}

	wps := store.Snapshot()
	require.Len(t, wps, 1)
	assert.Equal(t, vp.Center, wps[0].Coordinate)
	assert.Equal(t, vp, c.Viewport())
}

func TestController_StartLineTwice(t *testing.T) {
	store := waypoint.NewStore()
	c := NewController(newViewport(0, 0), store)

	assert.True(t, c.StartLine())
	c.OnViewportChanged(newViewport(1, 1))
	assert.False(t, c.StartLine())
	assert.Equal(t, 1, store.Len())
}

func TestController_RemoveAndReset(t *testing.T) {
	store := waypoint.NewStore()
	c := NewController(newViewport(0, 0), store)

	assert.False(t, c.RemoveLastPoint())

	c.StartLine()
	c.AddPoint()
	c.AddPoint()
	assert.True(t, c.RemoveLastPoint())
	assert.Equal(t, 2, store.Len())

	assert.Equal(t, 2, c.Reset())
	assert.Equal(t, 0, store.Len())
}

func TestController_PanAfterRemoveMovesNewLast(t *testing.T) {
	store := waypoint.NewStore()
	c := NewController(newViewport(0, 0), store)

	c.StartLine()
	c.OnViewportChanged(newViewport(1, 0))
	c.AddPoint()
	c.RemoveLastPoint()
	c.OnViewportChanged(newViewport(2, 0))

	wps := store.Snapshot()
	require.Len(t, wps, 1)
	assert.Equal(t, 2.0, wps[0].Coordinate.Latitude)
}
