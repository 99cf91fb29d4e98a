package ui

import (
	"fmt"

	"asciiline/internal/render"
	"asciiline/internal/waypoint"
)

// ListView shows the waypoints in drawing order. The list keeps the last
// waypoint (the one riding the map center) in view and highlighted.
type ListView struct {
	waypoints     []waypoint.Waypoint
	scrollOffset  int
	maxVisible    int
	x, y          int
	width, height int
}

// NewListView creates a new waypoint list view
func NewListView(x, y, width, height int) *ListView {
	l := &ListView{}
	l.UpdateDimensions(x, y, width, height)
	return l
}

// Update refreshes the waypoint list
func (l *ListView) Update(waypoints []waypoint.Waypoint) {
	l.waypoints = waypoints
	l.adjustScroll()
}

// adjustScroll scrolls so the last waypoint is the bottom visible row
func (l *ListView) adjustScroll() {
	l.scrollOffset = max(len(l.waypoints)-l.maxVisible, 0)
}

// Draw renders the list view onto the canvas
func (l *ListView) Draw(canvas *render.Canvas) {
	if l.height < 3 {
		return
	}

	canvas.DrawPanel(l.x, l.y, l.width, l.height, fmt.Sprintf(" Waypoints (%d) ", len(l.waypoints)), render.StyleLabel)

	if len(l.waypoints) == 0 {
		canvas.DrawText(l.x+2, l.y+1, "press l to start", render.StyleDim)
		return
	}

	visibleCount := min(l.maxVisible, len(l.waypoints)-l.scrollOffset)
	for i := 0; i < visibleCount; i++ {
		index := l.scrollOffset + i
		text := l.rowText(index)

		style := render.StyleLabel
		if index == len(l.waypoints)-1 {
			style = render.StyleListSelected
		}

		// Pad to the panel width so the highlight spans the row
		row := []rune(text)
		for j := 0; j < l.width-2; j++ {
			char := ' '
			if j < len(row) {
				char = row[j]
			}
			canvas.Set(l.x+1+j, l.y+1+i, char, style)
		}
	}

	if l.scrollOffset > 0 {
		canvas.Set(l.x+l.width-2, l.y, '↑', render.StyleLabel)
	}
}

func (l *ListView) rowText(index int) string {
	wp := l.waypoints[index]
	return fmt.Sprintf("%c %9.5f %10.5f", render.MarkerRune(index), wp.Coordinate.Latitude, wp.Coordinate.Longitude)
}

// UpdateDimensions updates the view dimensions
func (l *ListView) UpdateDimensions(x, y, width, height int) {
	l.x = x
	l.y = y
	l.width = width
	l.height = height
	l.maxVisible = max(height-2, 1)
	l.adjustScroll()
}
