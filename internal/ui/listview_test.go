package ui

import (
	"testing"

	"asciiline/internal/geo"
	"asciiline/internal/render"
	"asciiline/internal/waypoint"

	"github.com/stretchr/testify/assert"
)

func makeWaypoints(n int) []waypoint.Waypoint {
	store := waypoint.NewStore()
	for i := 0; i < n; i++ {
		store.Add(geo.Viewport{
			Center:        geo.Coordinate{Latitude: float64(i), Longitude: float64(-i)},
			LatitudeSpan:  1,
			LongitudeSpan: 1,
		})
	}
	return store.Snapshot()
}

func TestListView_KeepsLastWaypointVisible(t *testing.T) {
	l := NewListView(0, 0, listWidth, 12)
	canvas := render.NewCanvas(listWidth, 12)

	l.Update(makeWaypoints(15))
	l.Draw(canvas)

	assert.Equal(t, 5, l.scrollOffset)
	// First visible row is waypoint 6, the last row is waypoint F
	assert.Equal(t, render.MarkerRune(5), canvas.Get(1, 1).Char)
	assert.Equal(t, render.MarkerRune(14), canvas.Get(1, 10).Char)
	assert.Equal(t, render.StyleListSelected, canvas.Get(1, 10).Style)
	assert.Equal(t, '↑', canvas.Get(listWidth-2, 0).Char)
}

func TestListView_Empty(t *testing.T) {
	l := NewListView(0, 0, listWidth, 6)
	canvas := render.NewCanvas(listWidth, 6)

	l.Update(nil)
	l.Draw(canvas)

	assert.Equal(t, 0, l.scrollOffset)
	assert.Equal(t, 'p', canvas.Get(2, 1).Char)
}

func TestListView_ShrinkKeepsLastVisible(t *testing.T) {
	l := NewListView(0, 0, listWidth, 12)
	l.Update(makeWaypoints(8))
	assert.Equal(t, 0, l.scrollOffset)

	l.UpdateDimensions(0, 0, listWidth, 6)
	assert.Equal(t, 4, l.scrollOffset)
}
