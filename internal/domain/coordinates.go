package domain

import (
	"math"

	"github.com/golang/geo/s2"
)

// Mean Earth radius used for all straight-line distances.
const EarthRadiusMiles = 3958.8

// Immutable geographic coordinates (longitude, latitude) in degrees.
type Coordinates struct {
	Lon float64
	Lat float64
}

// IsSentinel reports whether c is (0,0), which callers send when no real
// location is available.
func (c Coordinates) IsSentinel() bool { return c.Lat == 0 && c.Lon == 0 }

// Valid reports whether c lies within [-90,90] x [-180,180].
func (c Coordinates) Valid() bool {
	return s2.LatLngFromDegrees(c.Lat, c.Lon).IsValid()
}

// DistanceMiles returns the great-circle (haversine) distance between a and b.
func DistanceMiles(a, b Coordinates) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMiles * c
}

// RoundTenth rounds to one decimal place.
func RoundTenth(v float64) float64 { return math.Round(v*10) / 10 }

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
