package geo

// FeatureType represents the type of basemap feature
type FeatureType int

const (
	FeatureStateBorder FeatureType = iota
	FeatureHighway
	FeatureRiver
	FeatureCoastline
	FeatureCity
	FeatureLandmark
)

// String returns a string representation of the feature type
func (f FeatureType) String() string {
	switch f {
	case FeatureStateBorder:
		return "StateBorder"
	case FeatureHighway:
		return "Highway"
	case FeatureRiver:
		return "River"
	case FeatureCoastline:
		return "Coastline"
	case FeatureCity:
		return "City"
	case FeatureLandmark:
		return "Landmark"
	default:
		return "Unknown"
	}
}

// Feature is a basemap feature drawn beneath the waypoint overlay
type Feature struct {
	Type   FeatureType
	Points []Coordinate // polyline or polygon outline, empty for point features
	Point  *Coordinate
	Name   string
}

// NewLineFeature creates a new line/polyline feature
func NewLineFeature(ftype FeatureType, points []Coordinate) *Feature {
	return &Feature{
		Type:   ftype,
		Points: points,
	}
}

// NewPointFeature creates a new labelled point feature
func NewPointFeature(ftype FeatureType, point Coordinate, name string) *Feature {
	return &Feature{
		Type:  ftype,
		Point: &point,
		Name:  name,
	}
}

// IsPoint returns true if this is a point feature
func (f *Feature) IsPoint() bool {
	return f.Point != nil
}

// IsLine returns true if this is a line/polyline feature
func (f *Feature) IsLine() bool {
	return len(f.Points) > 0
}

// Bounds represents a geographic bounding box
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains checks if a coordinate is within the bounds
func (b *Bounds) Contains(c Coordinate) bool {
	return c.Latitude >= b.MinLat && c.Latitude <= b.MaxLat &&
		c.Longitude >= b.MinLon && c.Longitude <= b.MaxLon
}

// FilterByBounds filters features to those with at least one point inside bounds
func FilterByBounds(features []*Feature, bounds *Bounds) []*Feature {
	filtered := make([]*Feature, 0)

	for _, feature := range features {
		if feature.IsPoint() {
			if bounds.Contains(*feature.Point) {
				filtered = append(filtered, feature)
			}
			continue
		}

		// Lines crossing the screen without a vertex inside are dropped
		for _, point := range feature.Points {
			if bounds.Contains(point) {
				filtered = append(filtered, feature)
				break
			}
		}
	}

	return filtered
}
