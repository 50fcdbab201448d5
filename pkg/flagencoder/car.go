package flagencoder

import (
	"github.com/lintang-b-s/flagencoder/pkg/encodedvalue"
	"github.com/lintang-b-s/flagencoder/pkg/osmway"
)

const carVersion = 1

// carSpeeds. km/h per road class.
func carSpeeds() map[string]int {
	return map[string]int{
		"motorway":       100,
		"motorway_link":  70,
		"motorroad":      90,
		"trunk":          70,
		"trunk_link":     65,
		"primary":        65,
		"primary_link":   60,
		"secondary":      60,
		"secondary_link": 50,
		"tertiary":       50,
		"tertiary_link":  40,
		"unclassified":   30,
		"residential":    30,
		"living_street":  5,
		"service":        20,
		"road":           20,
		"track":          15,
	}
}

// carProfile. base motor vehicle profile, forward speed only.
type carProfile struct{}

func newCarProfile() *carProfile {
	return &carProfile{}
}

func (c *carProfile) Name() string {
	return CAR
}

func (c *carProfile) Version() int {
	return carVersion
}

func (c *carProfile) Tables() Tables {
	return Tables{
		Vocabulary:    baseVocabulary("motorcar"),
		DefaultSpeeds: carSpeeds(),
		TrackTypeSpeeds: map[string]int{
			"grade1": 20,
			"grade2": 15,
			"grade3": 10,
		},
		BadSurfaces:      badSurfaces(),
		MaxPossibleSpeed: 140,
		FerryAccess:      []string{"motorcar", "motor_vehicle"},
	}
}

func (c *carProfile) DefineWayBits(_ *encodedvalue.BitAllocator, _ Options, _, _ float64) error {
	return nil
}

func (c *carProfile) AcceptTrack(tracktype string) bool {
	switch tracktype {
	case "grade1", "grade2", "grade3":
		return true
	}
	return false
}

func (c *carProfile) AdjustSpeed(_ osmway.TagReader, speed float64) float64 {
	return speed
}

// ReverseSpeedField. nil, both directions share the speed field. a reverse speed below half the
// factor only clears the backward bit, ReverseSpeed keeps returning the forward speed.
func (c *carProfile) ReverseSpeedField() *encodedvalue.EncodedDoubleValue {
	return nil
}

func (c *carProfile) HandleExtraTags(flags encodedvalue.Flags, _ osmway.TagReader, _ int) encodedvalue.Flags {
	return flags
}

func (c *carProfile) ApplyWayTags(flags encodedvalue.Flags, _, _, _ float64) encodedvalue.Flags {
	return flags
}

func (c *carProfile) Double(_ encodedvalue.Flags, _ string) (float64, bool) {
	return 0, false
}

func (c *carProfile) Supports(_ string) bool {
	return false
}
