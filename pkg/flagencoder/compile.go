package flagencoder

import (
	"fmt"
	"math"
	"sort"

	"github.com/lintang-b-s/flagencoder/pkg"
	"github.com/lintang-b-s/flagencoder/pkg/osmway"
	"github.com/lintang-b-s/flagencoder/pkg/util"
)

// HandleWayTags. compiles an accepted way into flags. ways rejected by this encoder yield 0.
func (e *Encoder) HandleWayTags(way osmway.TagReader, allowed AcceptMask, relationPriority int) Flags {
	e.mustBeDefined()
	if !e.IsAccept(allowed) {
		return 0
	}

	var flags Flags
	if e.IsFerry(allowed) {
		speed := e.ferrySpeed(way)
		flags = e.SetAccess(flags, true, true)
		flags = e.SetSpeed(flags, speed)
		flags = e.SetReverseSpeed(flags, speed)
	} else {
		speed := e.wayBaseSpeed(way)
		speed = e.applyMaxSpeed(way, speed)
		speed = e.ext.AdjustSpeed(way, speed)
		if speed > pkg.BAD_SURFACE_MAX_SPEED && way.HasTagIn("surface", e.tables.BadSurfaces) {
			speed = pkg.BAD_SURFACE_MAX_SPEED
		}

		roundabout := way.HasTagValue("junction", "roundabout")
		flags = e.SetRoundabout(flags, roundabout)

		switch {
		case way.HasTagValue("oneway", "-1"):
			flags = e.SetAccess(flags, false, true)
			flags = e.SetReverseSpeed(flags, speed)
		case roundabout || way.HasTagIn("oneway", e.tables.Vocabulary.Oneways):
			flags = e.SetAccess(flags, true, false)
			flags = e.SetSpeed(flags, speed)
		default:
			flags = e.SetAccess(flags, true, true)
			flags = e.SetSpeed(flags, speed)
			flags = e.SetReverseSpeed(flags, speed)
		}
	}

	return e.ext.HandleExtraTags(flags, way, relationPriority)
}

// wayBaseSpeed. road class speed, tracktype overrides it for tracks.
func (e *Encoder) wayBaseSpeed(way osmway.TagReader) float64 {
	highway := way.Tag("highway")
	speed, ok := e.tables.DefaultSpeeds[highway]
	util.AssertPanic(ok, fmt.Sprintf("%s: no speed for highway %q of way", e.Name(), highway))

	if highway == "track" {
		if tt, ok := e.tables.TrackTypeSpeeds[way.Tag("tracktype")]; ok {
			speed = tt
		}
	}
	return float64(speed)
}

// applyMaxSpeed. the lowest of maxspeed, maxspeed:forward and maxspeed:backward caps the speed
// at 90% of the tagged value when that is lower.
func (e *Encoder) applyMaxSpeed(way osmway.TagReader, speed float64) float64 {
	maxSpeed := math.Inf(1)
	for _, key := range []string{"maxspeed", "maxspeed:forward", "maxspeed:backward"} {
		if v, ok := ParseSpeed(way.Tag(key)); ok && v < maxSpeed {
			maxSpeed = v
		}
	}
	if !math.IsInf(maxSpeed, 1) && maxSpeed*pkg.NERF_MAXSPEED_OSM < speed {
		return maxSpeed * pkg.NERF_MAXSPEED_OSM
	}
	return speed
}

// ferryReference. living_street, service and residential speeds sorted ascending.
func (e *Encoder) ferryReference() (float64, float64, float64) {
	refs := []float64{
		float64(e.tables.DefaultSpeeds["living_street"]),
		float64(e.tables.DefaultSpeeds["service"]),
		float64(e.tables.DefaultSpeeds["residential"]),
	}
	sort.Float64s(refs)
	return refs[0], refs[1], refs[2]
}

// ferrySpeed. short ferries with a known length get their average speed, long trips the
// fastest reference, everything else the middle one.
func (e *Encoder) ferrySpeed(way osmway.TagReader) float64 {
	slow, medium, fast := e.ferryReference()

	minutes, ok := ParseDuration(way.Tag("duration"))
	if !ok || minutes <= 0 {
		return medium
	}
	hours := minutes / 60
	if hours > pkg.FERRY_LONG_TRIP_HOURS {
		return fast
	}

	meters, ok := way.FloatTag(osmway.ESTIMATED_DISTANCE)
	if !ok || meters <= 0 {
		return medium
	}
	speed := math.Round(meters / 1000 / hours / pkg.FERRY_DURATION_PENALTY)
	return util.Clamp(speed, slow, e.tables.MaxPossibleSpeed)
}
