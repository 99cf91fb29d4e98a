package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"asciiline/internal/geo"
	"asciiline/internal/overlay"
	"asciiline/internal/waypoint"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"
)

func describe(style overlay.Style, coords ...geo.Coordinate) overlay.Description {
	store := waypoint.NewStore()
	for _, c := range coords {
		store.Add(geo.Viewport{Center: c, LatitudeSpan: 0.1, LongitudeSpan: 0.1})
	}
	return overlay.Describe(store.Snapshot(), style)
}

var triangle = []geo.Coordinate{
	{Latitude: 37.0, Longitude: -122.0},
	{Latitude: 37.01, Longitude: -122.0},
	{Latitude: 37.01, Longitude: -122.01},
}

func TestWriteKML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteKML(&buf, describe(overlay.StyleLine, triangle...)))

	out := buf.String()
	assert.Contains(t, out, "<kml")
	assert.Equal(t, 4, strings.Count(out, "<Placemark>"))
	assert.Contains(t, out, "Waypoint 1")
	assert.Contains(t, out, "Waypoint 3")
	assert.Contains(t, out, "<LineString>")
	assert.NotContains(t, out, "<Polygon>")

	buf.Reset()
	require.NoError(t, WriteKML(&buf, describe(overlay.StylePolygon, triangle...)))
	assert.Contains(t, buf.String(), "<Polygon>")
	assert.Contains(t, buf.String(), "<LinearRing>")
}

func TestWriteKML_SingleWaypoint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteKML(&buf, describe(overlay.StylePolygon, triangle[0])))

	assert.Equal(t, 1, strings.Count(buf.String(), "<Placemark>"))
}

func TestWriteGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, describe(overlay.StylePolygon, triangle...)))

	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 4)

	for i := 0; i < 3; i++ {
		point, ok := fc.Features[i].Geometry.(orb.Point)
		require.True(t, ok)
		assert.InDelta(t, triangle[i].Longitude, point.Lon(), 1e-9)
		assert.InDelta(t, triangle[i].Latitude, point.Lat(), 1e-9)
	}

	polygon, ok := fc.Features[3].Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, polygon, 1)
	assert.Len(t, polygon[0], 4)
	assert.True(t, polygon[0].Closed())
	assert.Equal(t, "polygon", fc.Features[3].Properties["style"])
}

func TestWriteGeoJSON_TwoPointPolygon(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, describe(overlay.StylePolygon, triangle[:2]...)))

	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 3)

	// Two vertices cannot form a valid ring, so the shape is a line
	line, ok := fc.Features[2].Geometry.(orb.LineString)
	require.True(t, ok, "got %T", fc.Features[2].Geometry)
	require.Len(t, line, 2)
	assert.InDelta(t, triangle[1].Latitude, line[1].Lat(), 1e-9)
	assert.Equal(t, "polygon", fc.Features[2].Properties["style"])
}

func TestWriteKML_TwoPointPolygon(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteKML(&buf, describe(overlay.StylePolygon, triangle[:2]...)))

	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "<Placemark>"))
	assert.Contains(t, out, "<LineString>")
	assert.NotContains(t, out, "<LinearRing>")
}

func TestWriteGeoJSON_Circle(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, describe(overlay.StyleCircle, triangle[:2]...)))

	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 3)

	polygon, ok := fc.Features[2].Geometry.(orb.Polygon)
	require.True(t, ok)
	assert.Len(t, polygon[0], circleSegments+1)
	assert.InDelta(t, 1111.95, fc.Features[2].Properties["radius_m"], 1e-9)
}

func TestEncodePolyline(t *testing.T) {
	encoded := EncodePolyline(describe(overlay.StyleLine, triangle...))

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	require.NoError(t, err)
	require.Len(t, coords, 3)
	for i, c := range coords {
		assert.InDelta(t, triangle[i].Latitude, c[0], 1e-5)
		assert.InDelta(t, triangle[i].Longitude, c[1], 1e-5)
	}

	closed, _, err := polyline.DecodeCoords([]byte(EncodePolyline(describe(overlay.StylePolygon, triangle...))))
	require.NoError(t, err)
	require.Len(t, closed, 4)
	assert.InDelta(t, closed[0][0], closed[3][0], 1e-9)
	assert.InDelta(t, closed[0][1], closed[3][1], 1e-9)

	assert.Empty(t, EncodePolyline(describe(overlay.StyleLine)))
}

func TestExporter_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	exporter, err := NewExporter(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, exporter.Dir())

	result, err := exporter.Export(describe(overlay.StyleLine, triangle...))
	require.NoError(t, err)

	for _, path := range []string{result.KML, result.GeoJSON, result.Polyline} {
		info, err := os.Stat(path)
		require.NoError(t, err, path)
		assert.Greater(t, info.Size(), int64(0), path)
	}

	// A second export replaces the files and leaves no temp files behind
	_, err = exporter.Export(describe(overlay.StyleLine, triangle[0]))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
