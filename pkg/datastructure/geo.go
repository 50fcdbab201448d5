package datastructure

import "github.com/lintang-b-s/flagencoder/pkg/geo"

type BoundingBox struct {
	min   [2]float64
	max   [2]float64
	empty bool
}

func NewBoundingBox(minLat, minLon, maxLat, maxLon float64) *BoundingBox {
	return &BoundingBox{
		min: [2]float64{minLat, minLon},
		max: [2]float64{maxLat, maxLon},
	}
}

func newEmptyBoundingBox() *BoundingBox {
	return &BoundingBox{empty: true}
}

// extend. grows the box to contain c.
func (b *BoundingBox) extend(c geo.Coordinate) {
	if b.empty {
		b.min = [2]float64{c.Lat, c.Lon}
		b.max = [2]float64{c.Lat, c.Lon}
		b.empty = false
		return
	}
	b.min[0] = min(b.min[0], c.Lat)
	b.min[1] = min(b.min[1], c.Lon)
	b.max[0] = max(b.max[0], c.Lat)
	b.max[1] = max(b.max[1], c.Lon)
}

func (b *BoundingBox) IsEmpty() bool {
	return b.empty
}

func (b *BoundingBox) GetMinLat() float64 {
	return b.min[0]
}

func (b *BoundingBox) GetMinLon() float64 {
	return b.min[1]
}

func (b *BoundingBox) GetMaxLat() float64 {
	return b.max[0]
}

func (b *BoundingBox) GetMaxLon() float64 {
	return b.max[1]
}

func (b *BoundingBox) Contains(c geo.Coordinate) bool {
	return !b.empty && c.Lat >= b.min[0] && c.Lat <= b.max[0] && c.Lon >= b.min[1] && c.Lon <= b.max[1]
}
