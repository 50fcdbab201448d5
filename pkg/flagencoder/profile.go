package flagencoder

import (
	"fmt"
	"sort"

	"github.com/lintang-b-s/flagencoder/pkg/encodedvalue"
	"github.com/lintang-b-s/flagencoder/pkg/osmway"
)

const (
	CAR        = "car"
	MOTORCYCLE = "motorcycle"
)

// Extension. vehicle specific behaviour plugged into the shared Encoder.
// the Encoder owns the base layout (direction bits, roundabout bit, forward speed)
// and the acceptance skeleton, extensions own everything after that.
type Extension interface {
	Name() string
	Version() int
	Tables() Tables

	// DefineWayBits. allocates the extension fields right after the base fields.
	DefineWayBits(a *encodedvalue.BitAllocator, opts Options, defaultSpeed, maxSpeed float64) error

	// AcceptTrack. false rejects a highway=track of the given tracktype.
	AcceptTrack(tracktype string) bool
	// AdjustSpeed. profile specific speed correction after the generic maxspeed handling.
	AdjustSpeed(way osmway.TagReader, speed float64) float64

	// ReverseSpeedField. nil when the profile stores one speed for both directions.
	ReverseSpeedField() *encodedvalue.EncodedDoubleValue
	// HandleExtraTags. encodes the extension fields for an accepted way.
	HandleExtraTags(flags encodedvalue.Flags, way osmway.TagReader, relationPriority int) encodedvalue.Flags
	// ApplyWayTags. geometry dependent post processing once the edge exists.
	ApplyWayTags(flags encodedvalue.Flags, speed, roadDistance, beelineDistance float64) encodedvalue.Flags

	Double(flags encodedvalue.Flags, key string) (float64, bool)
	Supports(feature string) bool
}

type profileFactory func() Extension

var profiles = map[string]profileFactory{
	CAR:        func() Extension { return newCarProfile() },
	MOTORCYCLE: func() Extension { return newMotorcycleProfile() },
}

// Profiles. names of the registered vehicle profiles.
func Profiles() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newExtension(name string) (Extension, error) {
	factory, ok := profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return factory(), nil
}
