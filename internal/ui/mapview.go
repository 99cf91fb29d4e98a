package ui

import (
	"asciiline/internal/geo"
	"asciiline/internal/overlay"
	"asciiline/internal/render"

	"github.com/rs/zerolog/log"
)

// Zoom and pan steps
const (
	zoomInFactor  = 0.75
	zoomOutFactor = 1.33
	minSpan       = 0.0005 // ~55 m of latitude
	maxSpan       = 120.0
	panStep       = 0.10 // fraction of the span per key press
	finePanStep   = 0.02
)

// MapView is the map display: it owns the viewport the user pans and zooms
// and reports every change through onChange
type MapView struct {
	renderer    *render.MapRenderer
	projection  *geo.Projection
	canvas      *render.Canvas
	width       int
	height      int
	aspectRatio float64
	onChange    func(geo.Viewport)
}

// NewMapView creates a map view showing initial. The longitude span is refit
// to the screen shape and the resulting viewport is reported immediately.
func NewMapView(width, height int, initial geo.Viewport, features map[geo.FeatureType][]*geo.Feature, aspectRatio float64, onChange func(geo.Viewport)) *MapView {
	projection := geo.NewProjection(initial, width, height)
	canvas := render.NewCanvas(width, height)
	renderer := render.NewMapRenderer(projection, features, canvas)

	m := &MapView{
		renderer:    renderer,
		projection:  projection,
		canvas:      canvas,
		width:       width,
		height:      height,
		aspectRatio: aspectRatio,
		onChange:    onChange,
	}

	m.SetViewport(initial)
	return m
}

// Render draws the basemap, the overlay and the crosshair onto the canvas
func (m *MapView) Render(desc overlay.Description) {
	m.canvas.Clear()

	m.renderer.RenderMap()
	m.renderer.RenderOverlay(desc)
	m.renderer.RenderCrosshair()
}

// Canvas returns the canvas the map is drawn on
func (m *MapView) Canvas() *render.Canvas {
	return m.canvas
}

// Viewport returns the viewport on screen
func (m *MapView) Viewport() geo.Viewport {
	return m.projection.Viewport()
}

// SetViewport shows vp with its longitude span refit to the screen shape
func (m *MapView) SetViewport(vp geo.Viewport) {
	m.apply(vp.WithAspect(m.width, m.height, m.aspectRatio))
}

// Pan moves the center by fractions of the visible spans
func (m *MapView) Pan(latFraction, lonFraction float64) {
	m.apply(m.Viewport().Pan(latFraction, lonFraction))
}

// CenterOnCell moves the center to the coordinate under screen cell (x, y)
func (m *MapView) CenterOnCell(x, y int) {
	vp := m.Viewport()
	vp.Center = m.projection.Unproject(x, y)
	m.apply(vp)
}

// ZoomIn shrinks the visible spans
func (m *MapView) ZoomIn() {
	m.apply(m.Viewport().Zoom(zoomInFactor, minSpan, maxSpan))
}

// ZoomOut grows the visible spans
func (m *MapView) ZoomOut() {
	m.apply(m.Viewport().Zoom(zoomOutFactor, minSpan, maxSpan))
}

// UpdateDimensions updates the view dimensions when the screen is resized
func (m *MapView) UpdateDimensions(width, height int) {
	m.width = width
	m.height = height

	m.projection.UpdateDimensions(width, height)

	m.canvas = render.NewCanvas(width, height)
	m.renderer.UpdateCanvas(m.canvas)

	m.SetViewport(m.Viewport())
}

func (m *MapView) apply(vp geo.Viewport) {
	if !vp.Valid() {
		log.Warn().Stringer("viewport", vp).Msg("Ignoring invalid viewport")
		return
	}

	m.projection.UpdateViewport(vp)

	if m.onChange != nil {
		m.onChange(vp)
	}
}
