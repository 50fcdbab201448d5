package flagencoder

import (
	"github.com/lintang-b-s/flagencoder/pkg/osmway"
)

var impassable = map[string]osmway.Set{
	"impassable": osmway.NewSet("yes"),
	"status":     osmway.NewSet("impassable"),
}

// AcceptWay. decides whether the profile can use the way. the checks run in a fixed order,
// an explicit intended access value accepts the way before the ford and railway checks.
func (e *Encoder) AcceptWay(way osmway.TagReader) AcceptMask {
	e.mustBeDefined()
	voc := e.tables.Vocabulary

	highway := way.Tag("highway")
	if highway == "" {
		if way.HasTagIn("route", voc.Ferries) && e.ferryAllowed(way) {
			return e.acceptBit | e.ferryBit
		}
		return 0
	}

	if highway == "track" {
		if tt := way.Tag("tracktype"); tt != "" && !e.ext.AcceptTrack(tt) {
			return 0
		}
	}

	if _, ok := e.tables.DefaultSpeeds[highway]; !ok {
		return 0
	}

	for key, values := range impassable {
		if way.HasTagIn(key, values) {
			return 0
		}
	}

	if access := way.FirstPriorityTag(voc.Restrictions); access != "" {
		if voc.RestrictedValues.Contains(access) && !e.conditional.IsRestrictedWayConditionallyPermitted(way) {
			return 0
		}
		if voc.IntendedValues.Contains(access) {
			return e.acceptBit
		}
	}

	if e.opts.BlockFords && (highway == "ford" || way.HasTag("ford")) {
		return 0
	}

	if way.HasTag("railway") && !way.HasTagIn("railway", voc.AcceptedRailways) {
		return 0
	}

	if e.conditional.IsPermittedWayConditionallyRestricted(way) {
		return 0
	}

	return e.acceptBit
}

// ferryAllowed. ferries are used unless the vehicle is not mentioned while foot or bicycle are,
// an explicit "yes" always allows them.
func (e *Encoder) ferryAllowed(way osmway.TagReader) bool {
	vehicle := way.FirstPriorityTag(e.tables.FerryAccess)
	if vehicle == "yes" {
		return true
	}
	return vehicle == "" && !way.HasTag("foot") && !way.HasTag("bicycle")
}
