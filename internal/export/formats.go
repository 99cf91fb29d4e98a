package export

import (
	"encoding/json"
	"fmt"
	"io"

	"asciiline/internal/geo"
	"asciiline/internal/overlay"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	kml "github.com/twpayne/go-kml"
	"github.com/twpayne/go-polyline"
)

// circleSegments is how many rim points approximate a circle shape
const circleSegments = 72

// WriteKML writes the description as a KML document: one placemark per
// marker and one for the shape
func WriteKML(w io.Writer, desc overlay.Description) error {
	children := []kml.Element{kml.Name("asciiline waypoints")}

	for _, m := range desc.Markers {
		children = append(children, kml.Placemark(
			kml.Name(markerName(m)),
			kml.Description(m.ID.String()),
			kml.Point(kml.Coordinates(kmlCoordinate(m.Coordinate))),
		))
	}

	switch {
	case isLine(desc.Shape):
		children = append(children, kml.Placemark(
			kml.Name(desc.Style.String()),
			kml.LineString(
				kml.Tessellate(true),
				kml.Coordinates(kmlCoordinates(desc.Shape.Vertices)...),
			),
		))

	case desc.Shape.Kind == overlay.ShapePolygon, desc.Shape.Kind == overlay.ShapeCircle:
		children = append(children, kml.Placemark(
			kml.Name(desc.Style.String()),
			kml.Polygon(
				kml.OuterBoundaryIs(
					kml.LinearRing(kml.Coordinates(kmlCoordinates(ring(desc.Shape))...)),
				),
			),
		))
	}

	return kml.KML(kml.Document(children...)).WriteIndent(w, "", "  ")
}

// WriteGeoJSON writes the description as a GeoJSON FeatureCollection
func WriteGeoJSON(w io.Writer, desc overlay.Description) error {
	fc := geojson.NewFeatureCollection()

	for _, m := range desc.Markers {
		f := geojson.NewFeature(orbPoint(m.Coordinate))
		f.Properties["id"] = m.ID.String()
		f.Properties["index"] = m.Index
		f.Properties["active"] = m.Active
		fc.Append(f)
	}

	switch {
	case isLine(desc.Shape):
		line := make(orb.LineString, len(desc.Shape.Vertices))
		for i, c := range desc.Shape.Vertices {
			line[i] = orbPoint(c)
		}
		f := geojson.NewFeature(line)
		f.Properties["style"] = desc.Style.String()
		fc.Append(f)

	case desc.Shape.Kind == overlay.ShapePolygon, desc.Shape.Kind == overlay.ShapeCircle:
		coords := ring(desc.Shape)
		r := make(orb.Ring, len(coords))
		for i, c := range coords {
			r[i] = orbPoint(c)
		}
		f := geojson.NewFeature(orb.Polygon{r})
		f.Properties["style"] = desc.Style.String()
		if desc.Shape.Kind == overlay.ShapeCircle {
			f.Properties["radius_m"] = desc.Shape.RadiusMeters
		}
		fc.Append(f)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(fc)
}

// EncodePolyline encodes the markers, in drawing order, as a Google encoded
// polyline. Polygons repeat the first marker at the end to close the ring.
func EncodePolyline(desc overlay.Description) string {
	coords := make([][]float64, 0, len(desc.Markers)+1)
	for _, m := range desc.Markers {
		coords = append(coords, []float64{m.Coordinate.Latitude, m.Coordinate.Longitude})
	}

	if desc.Shape.Kind == overlay.ShapePolygon && len(coords) > 2 {
		coords = append(coords, coords[0])
	}

	return string(polyline.EncodeCoords(coords))
}

// isLine reports whether the shape is written as a line string. A polygon
// with two vertices has no area and its closed ring would have only three
// positions, below the four KML and GeoJSON require.
func isLine(shape overlay.Shape) bool {
	return shape.Kind == overlay.ShapePolyline ||
		(shape.Kind == overlay.ShapePolygon && len(shape.Vertices) < 3)
}

// ring returns the closed outline of a polygon or circle shape
func ring(shape overlay.Shape) []geo.Coordinate {
	var coords []geo.Coordinate
	if shape.Kind == overlay.ShapeCircle {
		coords = shape.Outline(circleSegments)
	} else {
		coords = append(coords, shape.Vertices...)
	}

	if len(coords) > 0 {
		coords = append(coords, coords[0])
	}
	return coords
}

func markerName(m overlay.Marker) string {
	return fmt.Sprintf("Waypoint %d", m.Index+1)
}

func kmlCoordinate(c geo.Coordinate) kml.Coordinate {
	return kml.Coordinate{Lon: c.Longitude, Lat: c.Latitude}
}

func kmlCoordinates(coords []geo.Coordinate) []kml.Coordinate {
	out := make([]kml.Coordinate, len(coords))
	for i, c := range coords {
		out[i] = kmlCoordinate(c)
	}
	return out
}

func orbPoint(c geo.Coordinate) orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}
