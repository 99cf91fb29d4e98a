package report

import (
	"math"
	"testing"

	"asciiline/internal/geo"
	"asciiline/internal/waypoint"

	"github.com/stretchr/testify/assert"
)

func waypoints(coords ...geo.Coordinate) []waypoint.Waypoint {
	wps := make([]waypoint.Waypoint, len(coords))
	for i, c := range coords {
		wps[i] = waypoint.Waypoint{Coordinate: c}
	}
	return wps
}

func TestCurrentDistanceLabel_NotAvailable(t *testing.T) {
	a := geo.Coordinate{Latitude: 0, Longitude: 0}
	b := geo.Coordinate{Latitude: 0, Longitude: 1}
	c := geo.Coordinate{Latitude: 1, Longitude: 1}

	assert.Equal(t, NotAvailable, CurrentDistanceLabel(nil))
	assert.Equal(t, NotAvailable, CurrentDistanceLabel(waypoints(a)))
	assert.Equal(t, NotAvailable, CurrentDistanceLabel(waypoints(a, b, c)))
	assert.Equal(t, NotAvailable, CurrentDistanceLabel(waypoints(a, b, c, a)))
}

func TestCurrentDistanceLabel_TwoWaypoints(t *testing.T) {
	a := geo.Coordinate{Latitude: 0, Longitude: 0}
	b := geo.Coordinate{Latitude: 0, Longitude: 1}

	assert.Equal(t, "111194.93 meters", CurrentDistanceLabel(waypoints(a, b)))
	assert.Equal(t, "0.00 meters", CurrentDistanceLabel(waypoints(a, a)))
}

func TestFormatMeters(t *testing.T) {
	assert.Equal(t, "1111.95 meters", FormatMeters(1111.9492664))
	assert.Equal(t, "12.30 meters", FormatMeters(12.3))
	assert.Equal(t, "NaN meters", FormatMeters(math.NaN()))
}
