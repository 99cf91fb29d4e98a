// Package report derives the human-facing distance label from the waypoints.
package report

import (
	"fmt"

	"asciiline/internal/geo"
	"asciiline/internal/waypoint"
)

// NotAvailable is shown whenever the distance is not reported
const NotAvailable = "N/A"

// CurrentDistanceLabel returns the distance between the two waypoints as
// "<meters> meters" with two decimals. Any other number of waypoints gives
// NotAvailable.
// TODO: sum consecutive legs to report path length for three or more waypoints.
func CurrentDistanceLabel(waypoints []waypoint.Waypoint) string {
	if len(waypoints) != 2 {
		return NotAvailable
	}

	return FormatMeters(geo.DistanceMeters(waypoints[0].Coordinate, waypoints[1].Coordinate))
}

// FormatMeters formats a full-precision distance for display
func FormatMeters(meters float64) string {
	return fmt.Sprintf("%.2f meters", geo.RoundTo(meters, 2))
}
