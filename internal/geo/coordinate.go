package geo

import (
	"fmt"
	"math"
)

// Coordinate represents a geographic position in decimal degrees
type Coordinate struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// String formats the coordinate for status panels and logs
func (c Coordinate) String() string {
	return fmt.Sprintf("%.5f, %.5f", c.Latitude, c.Longitude)
}

// Viewport is the visible map extent: a center plus the angular
// height (LatitudeSpan) and width (LongitudeSpan) in degrees
type Viewport struct {
	Center        Coordinate
	LatitudeSpan  float64
	LongitudeSpan float64
}

// Valid reports whether both spans are positive
// NaN spans are not valid
func (v Viewport) Valid() bool {
	return v.LatitudeSpan > 0 && v.LongitudeSpan > 0
}

// Bounds returns the geographic box covered by the viewport
func (v Viewport) Bounds() *Bounds {
	halfLat := v.LatitudeSpan / 2
	halfLon := v.LongitudeSpan / 2

	return &Bounds{
		MinLat: v.Center.Latitude - halfLat,
		MaxLat: v.Center.Latitude + halfLat,
		MinLon: v.Center.Longitude - halfLon,
		MaxLon: v.Center.Longitude + halfLon,
	}
}

// Zoom scales both spans by factor (< 1 zooms in, > 1 zooms out)
// The latitude span is clamped to [minSpan, maxSpan] and the longitude
// span keeps its ratio to it
func (v Viewport) Zoom(factor, minSpan, maxSpan float64) Viewport {
	if factor <= 0 || !v.Valid() {
		return v
	}

	newLat := v.LatitudeSpan * factor
	if newLat < minSpan {
		newLat = minSpan
	}
	if newLat > maxSpan {
		newLat = maxSpan
	}

	ratio := v.LongitudeSpan / v.LatitudeSpan
	v.LatitudeSpan = newLat
	v.LongitudeSpan = newLat * ratio
	return v
}

// Pan moves the center by a fraction of the current spans
// Positive latFraction moves north, positive lonFraction moves east.
// Latitude is clamped to the poles and longitude wraps at the antimeridian.
func (v Viewport) Pan(latFraction, lonFraction float64) Viewport {
	lat := v.Center.Latitude + latFraction*v.LatitudeSpan
	lon := v.Center.Longitude + lonFraction*v.LongitudeSpan

	lat = math.Max(-90, math.Min(90, lat))
	if lon > 180 || lon < -180 {
		lon = math.Mod(lon+540, 360) - 180
	}

	v.Center = Coordinate{Latitude: lat, Longitude: lon}
	return v
}

// WithAspect recomputes the longitude span so that a screen of width x height
// cells, each aspectRatio times taller than wide, shows square ground distances
// around the center latitude
func (v Viewport) WithAspect(width, height int, aspectRatio float64) Viewport {
	if width <= 0 || height <= 0 || aspectRatio <= 0 {
		return v
	}

	cosLat := math.Cos(ToRadians(v.Center.Latitude))
	if cosLat < 0.01 {
		cosLat = 0.01 // near the poles a degree of longitude is almost nothing
	}

	v.LongitudeSpan = v.LatitudeSpan * float64(width) / (float64(height) * aspectRatio) / cosLat
	return v
}

// String formats the viewport for logs
func (v Viewport) String() string {
	return fmt.Sprintf("center=(%s) span=%.5fx%.5f", v.Center, v.LatitudeSpan, v.LongitudeSpan)
}
