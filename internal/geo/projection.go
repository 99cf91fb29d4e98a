package geo

import (
	"math"
)

// ScreenPoint is a position in screen space with (0, 0) at top-left
type ScreenPoint struct {
	X float64
	Y float64
}

// Point represents a terminal cell
type Point struct {
	X int
	Y int
}

// ToScreenPoint maps a coordinate to screen space for the given viewport.
//
// This is a linear approximation, not a map projection: it is accurate near
// the viewport center and increasingly distorted toward the edges. Y is
// inverted so that increasing latitude moves up the screen.
func ToScreenPoint(c Coordinate, vp Viewport, screenWidth, screenHeight float64) ScreenPoint {
	x := screenWidth/2 + ((c.Longitude-vp.Center.Longitude)/vp.LongitudeSpan)*screenWidth
	y := screenHeight/2 - ((c.Latitude-vp.Center.Latitude)/vp.LatitudeSpan)*screenHeight

	return ScreenPoint{X: x, Y: y}
}

// Projection handles conversion between coordinates and terminal cells
// for the current viewport
type Projection struct {
	viewport     Viewport
	screenWidth  int
	screenHeight int
}

// NewProjection creates a linear projection of viewport onto a grid of
// screenWidth x screenHeight cells
func NewProjection(viewport Viewport, screenWidth, screenHeight int) *Projection {
	return &Projection{
		viewport:     viewport,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
}

// Project converts a coordinate to the cell containing it
// The viewport center lands on cell (width/2, height/2)
func (p *Projection) Project(c Coordinate) Point {
	sp := ToScreenPoint(c, p.viewport, float64(p.screenWidth), float64(p.screenHeight))

	return Point{X: toCell(sp.X), Y: toCell(sp.Y)}
}

// maxCell keeps far off-screen and NaN positions representable as int
const maxCell = 1 << 30

func toCell(v float64) int {
	if math.IsNaN(v) {
		return -maxCell
	}
	return int(math.Floor(math.Max(-maxCell, math.Min(maxCell, v))))
}

// Unproject converts a cell back to the coordinate at its middle
func (p *Projection) Unproject(x, y int) Coordinate {
	w := float64(p.screenWidth)
	h := float64(p.screenHeight)

	// Inverse of ToScreenPoint, sampled at the cell middle
	lon := p.viewport.Center.Longitude + ((float64(x)+0.5)-w/2)/w*p.viewport.LongitudeSpan
	lat := p.viewport.Center.Latitude - ((float64(y)+0.5)-h/2)/h*p.viewport.LatitudeSpan

	return Coordinate{Latitude: lat, Longitude: lon}
}

// IsInBounds checks if a coordinate would be visible on screen
func (p *Projection) IsInBounds(c Coordinate) bool {
	point := p.Project(c)
	return point.X >= 0 && point.X < p.screenWidth &&
		point.Y >= 0 && point.Y < p.screenHeight
}

// UpdateViewport replaces the projected viewport
func (p *Projection) UpdateViewport(viewport Viewport) {
	p.viewport = viewport
}

// UpdateDimensions updates the screen dimensions
func (p *Projection) UpdateDimensions(width, height int) {
	p.screenWidth = width
	p.screenHeight = height
}

// Viewport returns the projected viewport
func (p *Projection) Viewport() Viewport {
	return p.viewport
}

// Center returns the screen cell of the viewport center
func (p *Projection) Center() Point {
	return Point{X: p.screenWidth / 2, Y: p.screenHeight / 2}
}

// GetBounds returns the geographic bounds visible on screen
func (p *Projection) GetBounds() *Bounds {
	return p.viewport.Bounds()
}
