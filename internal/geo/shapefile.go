package geo

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rs/zerolog/log"
)

// Basemap file names inside the basemap directory (Natural Earth naming)
const (
	StatesFile    = "ne_50m_admin_1_states_provinces.shp"
	RiversFile    = "ne_50m_rivers_lake_centerlines.shp"
	CoastlineFile = "ne_50m_coastline.shp"
	PlacesFile    = "ne_50m_populated_places.shp"
	RoadsFile     = "ne_10m_roads_north_america.shp"
	LandmarksFile = "landmarks.csv"
)

// ShapefileLoader loads the optional basemap from a directory of ESRI shapefiles
type ShapefileLoader struct {
	dataDir string
}

// NewShapefileLoader creates a new shapefile loader
func NewShapefileLoader(dataDir string) *ShapefileLoader {
	return &ShapefileLoader{
		dataDir: dataDir,
	}
}

// LoadAll loads every basemap layer it can find, organized by feature type.
// Missing or unreadable files are skipped with a warning; the map works with
// no basemap at all. highwayDetail is the scalerank threshold for roads.
func (s *ShapefileLoader) LoadAll(highwayDetail int) map[FeatureType][]*Feature {
	features := make(map[FeatureType][]*Feature)

	layers := []struct {
		ftype FeatureType
		load  func() ([]*Feature, error)
	}{
		{FeatureStateBorder, func() ([]*Feature, error) { return s.LoadShapefile(s.path(StatesFile), FeatureStateBorder) }},
		{FeatureRiver, func() ([]*Feature, error) { return s.LoadShapefile(s.path(RiversFile), FeatureRiver) }},
		{FeatureCoastline, func() ([]*Feature, error) { return s.LoadShapefile(s.path(CoastlineFile), FeatureCoastline) }},
		{FeatureHighway, func() ([]*Feature, error) { return s.LoadHighways(s.path(RoadsFile), highwayDetail) }},
		{FeatureCity, func() ([]*Feature, error) { return s.LoadCities(s.path(PlacesFile)) }},
		{FeatureLandmark, func() ([]*Feature, error) { return NewLandmarkLoader(s.path(LandmarksFile)).LoadLandmarks() }},
	}

	for _, layer := range layers {
		loaded, err := layer.load()
		if err != nil {
			log.Warn().Err(err).Str("layer", layer.ftype.String()).Msg("Basemap layer skipped")
			features[layer.ftype] = []*Feature{}
			continue
		}
		features[layer.ftype] = loaded
	}

	log.Info().
		Str("dir", s.dataDir).
		Int("states", len(features[FeatureStateBorder])).
		Int("rivers", len(features[FeatureRiver])).
		Int("coastlines", len(features[FeatureCoastline])).
		Int("highways", len(features[FeatureHighway])).
		Int("cities", len(features[FeatureCity])).
		Int("landmarks", len(features[FeatureLandmark])).
		Msg("Basemap loaded")

	return features
}

func (s *ShapefileLoader) path(name string) string {
	return filepath.Join(s.dataDir, name)
}

// LoadShapefile loads a shapefile and converts its shapes to features.
// Polygons are kept as their outline.
func (s *ShapefileLoader) LoadShapefile(path string, ftype FeatureType) ([]*Feature, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer shape.Close()

	features := make([]*Feature, 0)

	for shape.Next() {
		_, p := shape.Shape()

		switch geom := p.(type) {
		case *shp.PolyLine:
			if points := toCoordinates(geom.Points); len(points) > 1 {
				features = append(features, NewLineFeature(ftype, points))
			}

		case *shp.Polygon:
			if points := toCoordinates(geom.Points); len(points) > 1 {
				features = append(features, NewLineFeature(ftype, points))
			}

		case *shp.Point:
			features = append(features, NewPointFeature(ftype, Coordinate{Latitude: geom.Y, Longitude: geom.X}, ""))
		}
	}

	return features, nil
}

// LoadCities loads populated places with their names
func (s *ShapefileLoader) LoadCities(path string) ([]*Feature, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer shape.Close()

	nameIdx := -1
	for i, field := range shape.Fields() {
		switch fieldName(field) {
		case "NAME", "NAMEASCII", "NAME_EN":
			if nameIdx < 0 {
				nameIdx = i
			}
		}
	}

	features := make([]*Feature, 0)

	for shape.Next() {
		n, p := shape.Shape()

		point, ok := p.(*shp.Point)
		if !ok {
			continue
		}

		name := ""
		if nameIdx >= 0 {
			name = attribute(shape, n, nameIdx)
		}

		features = append(features, NewPointFeature(FeatureCity, Coordinate{Latitude: point.Y, Longitude: point.X}, name))
	}

	return features, nil
}

// LoadHighways loads roads with scalerank <= maxScalerank
func (s *ShapefileLoader) LoadHighways(path string, maxScalerank int) ([]*Feature, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer shape.Close()

	scalerankIdx := -1
	for i, field := range shape.Fields() {
		if fieldName(field) == "scalerank" {
			scalerankIdx = i
			break
		}
	}

	log.Debug().Int("max_scalerank", maxScalerank).Msg("Loading highways")

	features := make([]*Feature, 0)

	for shape.Next() {
		n, p := shape.Shape()

		if scalerankIdx >= 0 {
			var scalerank int
			if _, err := fmt.Sscanf(attribute(shape, n, scalerankIdx), "%d", &scalerank); err == nil && scalerank > maxScalerank {
				continue
			}
		}

		if line, ok := p.(*shp.PolyLine); ok {
			if points := toCoordinates(line.Points); len(points) > 1 {
				features = append(features, NewLineFeature(FeatureHighway, points))
			}
		}
	}

	return features, nil
}

// fieldName trims the NUL padding from a DBF field name
func fieldName(field shp.Field) string {
	return strings.TrimRight(string(field.Name[:]), "\x00 ")
}

// attribute reads a DBF value without its space or NUL padding
func attribute(shape *shp.Reader, row, field int) string {
	return strings.TrimSpace(strings.TrimRight(shape.ReadAttribute(row, field), "\x00"))
}

func toCoordinates(points []shp.Point) []Coordinate {
	coords := make([]Coordinate, len(points))
	for i, point := range points {
		coords[i] = Coordinate{Latitude: point.Y, Longitude: point.X}
	}
	return coords
}
