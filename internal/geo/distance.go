package geo

import "math"

// EarthRadiusMeters is the mean radius of the spherical earth model
const EarthRadiusMeters = 6371000.0

// ToRadians converts degrees to radians
func ToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// ToDegrees converts radians to degrees
func ToDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

// DistanceMeters returns the great-circle distance between a and b using the
// haversine formula. Input is not validated: out-of-range coordinates are used
// as-is and NaN or infinite input yields NaN.
func DistanceMeters(a, b Coordinate) float64 {
	lat1 := ToRadians(a.Latitude)
	lat2 := ToRadians(b.Latitude)
	dLat := ToRadians(b.Latitude - a.Latitude)
	dLon := ToRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	// Rounding near antipodes and out-of-range latitudes can push h
	// outside [0, 1]
	if h > 1 {
		h = 1
	} else if h < 0 {
		h = 0
	}

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusMeters * c
}

// Destination returns the point reached by travelling distanceMeters from
// start along the initial bearing (degrees clockwise from north)
func Destination(start Coordinate, bearingDegrees, distanceMeters float64) Coordinate {
	lat1 := ToRadians(start.Latitude)
	lon1 := ToRadians(start.Longitude)
	theta := ToRadians(bearingDegrees)
	delta := distanceMeters / EarthRadiusMeters

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(delta) + math.Cos(lat1)*math.Sin(delta)*math.Cos(theta))
	lon2 := lon1 + math.Atan2(math.Sin(theta)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2))

	return Coordinate{Latitude: ToDegrees(lat2), Longitude: ToDegrees(lon2)}
}

// RoundTo rounds v to the given number of decimal places
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
