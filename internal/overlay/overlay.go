// Package overlay builds the render description handed to the map display:
// one marker per waypoint plus the shape chosen by the caller.
package overlay

import (
	"fmt"
	"strings"

	"asciiline/internal/geo"
	"asciiline/internal/waypoint"

	"github.com/google/uuid"
)

// Style selects how waypoints are joined
type Style int

const (
	StyleLine Style = iota
	StylePolygon
	StyleCircle
)

var styleNames = []string{"line", "polygon", "circle"}

// String returns the config name of the style
func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return "unknown"
	}
	return styleNames[s]
}

// Next cycles line -> polygon -> circle -> line
func (s Style) Next() Style {
	return Style((int(s) + 1) % len(styleNames))
}

// ParseStyle parses a style name, case-insensitively
func ParseStyle(name string) (Style, error) {
	for i, n := range styleNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return Style(i), nil
		}
	}
	return StyleLine, fmt.Errorf("unknown overlay style %q (want one of %s)", name, strings.Join(styleNames, ", "))
}

// ShapeKind is the primitive the display has to draw
type ShapeKind int

const (
	ShapeNone ShapeKind = iota
	ShapePolyline
	ShapePolygon
	ShapeCircle
)

// Shape is the outline joining the waypoints.
// Polygon vertices are not repeated: the display closes the ring.
type Shape struct {
	Kind         ShapeKind
	Vertices     []geo.Coordinate
	Center       geo.Coordinate
	RadiusMeters float64
}

// Marker is drawn at each waypoint; Index is the position in drawing order
type Marker struct {
	ID         uuid.UUID
	Index      int
	Coordinate geo.Coordinate
	Active     bool // last waypoint, the one following the map center
}

// Description is everything the display needs to draw the overlay
type Description struct {
	Style   Style
	Markers []Marker
	Shape   Shape
}

// Describe builds the render description for the waypoints in drawing order.
//
// Line and polygon shapes need at least two waypoints. A circle is only
// defined for exactly two: centered on the first, passing through the second,
// with the radius rounded to centimeters.
func Describe(waypoints []waypoint.Waypoint, style Style) Description {
	desc := Description{
		Style:   style,
		Markers: make([]Marker, len(waypoints)),
	}

	for i, wp := range waypoints {
		desc.Markers[i] = Marker{
			ID:         wp.ID,
			Index:      i,
			Coordinate: wp.Coordinate,
			Active:     i == len(waypoints)-1,
		}
	}

	switch style {
	case StyleLine:
		if len(waypoints) > 1 {
			desc.Shape = Shape{Kind: ShapePolyline, Vertices: vertices(waypoints)}
		}

	case StylePolygon:
		if len(waypoints) > 1 {
			desc.Shape = Shape{Kind: ShapePolygon, Vertices: vertices(waypoints)}
		}

	case StyleCircle:
		if len(waypoints) == 2 {
			center := waypoints[0].Coordinate
			desc.Shape = Shape{
				Kind:         ShapeCircle,
				Center:       center,
				RadiusMeters: geo.RoundTo(geo.DistanceMeters(center, waypoints[1].Coordinate), 2),
			}
		}
	}

	return desc
}

// Segments returns the vertex pairs to stroke, closing polygons back to the
// first vertex. Circles and empty shapes have no segments.
func (s Shape) Segments() [][2]geo.Coordinate {
	if s.Kind != ShapePolyline && s.Kind != ShapePolygon {
		return nil
	}

	segments := make([][2]geo.Coordinate, 0, len(s.Vertices))
	for i := 0; i < len(s.Vertices)-1; i++ {
		segments = append(segments, [2]geo.Coordinate{s.Vertices[i], s.Vertices[i+1]})
	}

	if s.Kind == ShapePolygon && len(s.Vertices) > 2 {
		segments = append(segments, [2]geo.Coordinate{s.Vertices[len(s.Vertices)-1], s.Vertices[0]})
	}

	return segments
}

// Outline approximates a circle shape with n points around its rim
func (s Shape) Outline(n int) []geo.Coordinate {
	if s.Kind != ShapeCircle || n < 3 {
		return nil
	}

	rim := make([]geo.Coordinate, n)
	for i := range rim {
		rim[i] = geo.Destination(s.Center, 360*float64(i)/float64(n), s.RadiusMeters)
	}
	return rim
}

func vertices(waypoints []waypoint.Waypoint) []geo.Coordinate {
	coords := make([]geo.Coordinate, len(waypoints))
	for i, wp := range waypoints {
		coords[i] = wp.Coordinate
	}
	return coords
}
