package render

import (
	"asciiline/internal/geo"
	"asciiline/internal/overlay"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
)

// circleRimPoints is how many rim points approximate a circle on screen
const circleRimPoints = 72

// MapRenderer draws the basemap and the waypoint overlay onto a canvas
type MapRenderer struct {
	projection *geo.Projection
	features   map[geo.FeatureType][]*geo.Feature
	canvas     *Canvas
}

// NewMapRenderer creates a new map renderer; features may be nil
func NewMapRenderer(projection *geo.Projection, features map[geo.FeatureType][]*geo.Feature, canvas *Canvas) *MapRenderer {
	return &MapRenderer{
		projection: projection,
		features:   features,
		canvas:     canvas,
	}
}

// RenderMap draws all basemap features visible in the current viewport
func (m *MapRenderer) RenderMap() {
	bounds := m.projection.GetBounds()

	// Lines first, labelled points on top
	m.renderFeatureType(geo.FeatureCoastline, bounds)
	m.renderFeatureType(geo.FeatureRiver, bounds)
	m.renderFeatureType(geo.FeatureStateBorder, bounds)
	m.renderFeatureType(geo.FeatureHighway, bounds)
	m.renderFeatureType(geo.FeatureCity, bounds)
	m.renderFeatureType(geo.FeatureLandmark, bounds)
}

// renderFeatureType renders all visible features of a specific type
func (m *MapRenderer) renderFeatureType(ftype geo.FeatureType, bounds *geo.Bounds) {
	features, exists := m.features[ftype]
	if !exists {
		return
	}

	visible := geo.FilterByBounds(features, bounds)

	log.Trace().
		Str("type", ftype.String()).
		Int("visible", len(visible)).
		Int("total", len(features)).
		Msg("Rendering features")

	for _, feature := range visible {
		m.RenderFeature(feature)
	}
}

// RenderFeature draws a single basemap feature
func (m *MapRenderer) RenderFeature(feature *geo.Feature) {
	style := GetStyleForFeature(feature.Type)
	char := GetCharForFeature(feature.Type)

	if feature.IsPoint() {
		point := m.projection.Project(*feature.Point)
		m.canvas.Set(point.X, point.Y, char, style)

		// Label only if it fits before the right edge
		if feature.Name != "" && point.X < m.canvas.Width()-len(feature.Name)-1 {
			m.canvas.DrawText(point.X+1, point.Y, feature.Name, StyleLabel)
		}
		return
	}

	for i := 0; i < len(feature.Points)-1; i++ {
		m.drawSegment(feature.Points[i], feature.Points[i+1], char, style)
	}
}

// RenderOverlay draws the shape first and the markers on top of it so a
// marker is never hidden by its own outline
func (m *MapRenderer) RenderOverlay(desc overlay.Description) {
	switch desc.Shape.Kind {
	case overlay.ShapePolyline, overlay.ShapePolygon:
		for _, segment := range desc.Shape.Segments() {
			m.drawSegment(segment[0], segment[1], CharOutline, StyleOutline)
		}

	case overlay.ShapeCircle:
		rim := desc.Shape.Outline(circleRimPoints)
		for i := range rim {
			m.drawSegment(rim[i], rim[(i+1)%len(rim)], CharCircle, StyleCircle)
		}
	}

	for _, marker := range desc.Markers {
		if !m.projection.IsInBounds(marker.Coordinate) {
			continue
		}
		point := m.projection.Project(marker.Coordinate)

		style := StyleMarker
		if marker.Active {
			style = StyleActiveMarker
		}
		m.canvas.Set(point.X, point.Y, MarkerRune(marker.Index), style)
	}
}

// RenderCrosshair marks the viewport center, where the next waypoint goes.
// Cells already holding a marker are left alone.
func (m *MapRenderer) RenderCrosshair() {
	center := m.projection.Center()

	if m.canvas.Get(center.X, center.Y).Char == ' ' {
		m.canvas.Set(center.X, center.Y, CharCrosshair, StyleCrosshair)
	}
	for _, d := range []int{-2, 2} {
		if m.canvas.Get(center.X+d, center.Y).Char == ' ' {
			m.canvas.Set(center.X+d, center.Y, '-', StyleCrosshair)
		}
	}
}

func (m *MapRenderer) drawSegment(from, to geo.Coordinate, char rune, style tcell.Style) {
	p1 := m.projection.Project(from)
	p2 := m.projection.Project(to)

	// Segments far off-screen would make Bresenham walk millions of cells
	if !m.segmentMayBeVisible(p1, p2) {
		return
	}
	m.DrawLine(p1.X, p1.Y, p2.X, p2.Y, char, style)
}

// segmentMayBeVisible rejects segments whose bounding box misses the
// canvas or is absurdly large
func (m *MapRenderer) segmentMayBeVisible(p1, p2 geo.Point) bool {
	w, h := m.canvas.Width(), m.canvas.Height()
	limit := 16 * max(w, h, 1)

	if abs(p1.X-p2.X) > limit || abs(p1.Y-p2.Y) > limit {
		return false
	}
	if max(p1.X, p2.X) < 0 || min(p1.X, p2.X) >= w {
		return false
	}
	if max(p1.Y, p2.Y) < 0 || min(p1.Y, p2.Y) >= h {
		return false
	}
	return true
}

// DrawLine implements Bresenham's line algorithm for drawing lines on the canvas
func (m *MapRenderer) DrawLine(x0, y0, x1, y1 int, char rune, style tcell.Style) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}

	sy := -1
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy

	for {
		m.canvas.Set(x0, y0, char, style)

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := 2 * err

		if e2 > -dy {
			err -= dy
			x0 += sx
		}

		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// abs returns the absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// UpdateCanvas updates the renderer's canvas
func (m *MapRenderer) UpdateCanvas(canvas *Canvas) {
	m.canvas = canvas
}
