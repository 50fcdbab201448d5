package flagencoder

import (
	"math"

	"github.com/lintang-b-s/flagencoder/pkg/osmway"
)

// EdgeState. the stored edge a way was turned into.
type EdgeState interface {
	GetFlags() Flags
	SetFlags(flags Flags)
	// GetDistance. road length in meters.
	GetDistance() float64
}

// ApplyWayTags. rewrites the edge flags with information that needs the edge geometry.
// ways without an estimated_distance tag count as straight.
func (e *Encoder) ApplyWayTags(way osmway.TagReader, edge EdgeState) {
	e.mustBeDefined()
	beeline, ok := way.FloatTag(osmway.ESTIMATED_DISTANCE)
	if !ok {
		beeline = math.Inf(1)
	}
	flags := edge.GetFlags()
	edge.SetFlags(e.ext.ApplyWayTags(flags, e.Speed(flags), edge.GetDistance(), beeline))
}
