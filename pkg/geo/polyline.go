package geo

import (
	"fmt"

	"github.com/twpayne/go-polyline"
)

// DecodePolyline. decodes a google encoded polyline with 5 digit precision.
func DecodePolyline(encoded string) ([]Coordinate, error) {
	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("decode polyline: %d trailing bytes", len(rest))
	}
	out := make([]Coordinate, len(coords))
	for i, c := range coords {
		out[i] = NewCoordinate(c[0], c[1])
	}
	return out, nil
}

func EncodePolyline(coords []Coordinate) string {
	raw := make([][]float64, len(coords))
	for i, c := range coords {
		raw[i] = []float64{c.Lat, c.Lon}
	}
	return string(polyline.EncodeCoords(raw))
}
