package geo

import (
	"github.com/golang/geo/s2"
)

func toLatLng(c Coordinate) s2.LatLng {
	return s2.LatLngFromDegrees(c.Lat, c.Lon)
}

// BeelineDistance. great circle distance between the first and last coordinate in meters.
func BeelineDistance(coords []Coordinate) float64 {
	if len(coords) < 2 {
		return 0
	}
	first, last := toLatLng(coords[0]), toLatLng(coords[len(coords)-1])
	return first.Distance(last).Radians() * earthRadiusKM * 1000
}

// IsValid. latitude within [-90, 90] and longitude within [-180, 180].
func (c Coordinate) IsValid() bool {
	return toLatLng(c).IsValid()
}
