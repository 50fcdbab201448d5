package flagencoder

import (
	"math"

	"github.com/lintang-b-s/flagencoder/pkg"
	"github.com/lintang-b-s/flagencoder/pkg/encodedvalue"
	"github.com/lintang-b-s/flagencoder/pkg/osmway"
)

const motorcycleVersion = 1

// motorcycleProfile. car derived profile with a separate reverse speed, a road priority
// and a curvature field for scenic routing.
type motorcycleProfile struct {
	avoid  map[pkg.OsmHighwayType]struct{}
	prefer map[pkg.OsmHighwayType]struct{}

	reverseSpeed *encodedvalue.EncodedDoubleValue
	priority     *encodedvalue.EncodedValue
	curvature    *encodedvalue.EncodedValue
}

func newMotorcycleProfile() *motorcycleProfile {
	return &motorcycleProfile{
		avoid:  highwaySet(pkg.MOTORWAY, pkg.TRUNK, pkg.MOTORROAD, pkg.RESIDENTIAL),
		prefer: highwaySet(pkg.PRIMARY, pkg.SECONDARY, pkg.TERTIARY),
	}
}

func highwaySet(classes ...pkg.OsmHighwayType) map[pkg.OsmHighwayType]struct{} {
	set := make(map[pkg.OsmHighwayType]struct{}, len(classes))
	for _, c := range classes {
		set[c] = struct{}{}
	}
	return set
}

func (m *motorcycleProfile) Name() string {
	return MOTORCYCLE
}

func (m *motorcycleProfile) Version() int {
	return motorcycleVersion
}

func (m *motorcycleProfile) Tables() Tables {
	speeds := carSpeeds()
	speeds["trunk"] = 80
	speeds["trunk_link"] = 75

	return Tables{
		Vocabulary:    baseVocabulary("motorcycle"),
		DefaultSpeeds: speeds,
		TrackTypeSpeeds: map[string]int{
			"grade1": 20,
			"grade2": 15,
			"grade3": 10,
			"grade4": 5,
			"grade5": 5,
		},
		BadSurfaces:      badSurfaces(),
		MaxPossibleSpeed: 120,
		FerryAccess:      []string{"motorcycle", "motor_vehicle"},
	}
}

func (m *motorcycleProfile) DefineWayBits(a *encodedvalue.BitAllocator, opts Options, defaultSpeed, maxSpeed float64) error {
	var err error
	m.reverseSpeed, err = a.DoubleValue("motorcycle.reverse_speed", opts.SpeedBits, opts.SpeedFactor,
		defaultSpeed, maxSpeed)
	if err != nil {
		return err
	}
	m.priority, err = a.Value("motorcycle.priority", 3, 1, int64(pkg.AVOID_IF_POSSIBLE.Value()),
		int64(pkg.BEST.Value()))
	if err != nil {
		return err
	}
	m.curvature, err = a.Value("motorcycle.curvature", 4, 1, pkg.CURVATURE_MAX_RAW, pkg.CURVATURE_MAX_RAW)
	return err
}

// AcceptTrack. only well paved tracks.
func (m *motorcycleProfile) AcceptTrack(tracktype string) bool {
	return tracktype == "grade1"
}

func (m *motorcycleProfile) AdjustSpeed(way osmway.TagReader, speed float64) float64 {
	if v, ok := ParseSpeed(way.Tag("maxspeed:motorcycle")); ok && v < speed {
		return v * pkg.NERF_MAXSPEED_OSM
	}
	return speed
}

func (m *motorcycleProfile) ReverseSpeedField() *encodedvalue.EncodedDoubleValue {
	return m.reverseSpeed
}

func (m *motorcycleProfile) HandleExtraTags(flags encodedvalue.Flags, way osmway.TagReader, _ int) encodedvalue.Flags {
	flags = m.priority.SetValue(flags, int64(m.roadPriority(way).Value()))
	// straight until the geometry says otherwise
	return m.curvature.SetDefaultValue(flags)
}

func (m *motorcycleProfile) roadPriority(way osmway.TagReader) pkg.PriorityCode {
	highway := pkg.GetHighwayType(way.Tag("highway"))
	if _, ok := m.avoid[highway]; ok {
		return pkg.WORST
	}
	if _, ok := m.prefer[highway]; ok {
		return pkg.BEST
	}
	return pkg.UNCHANGED
}

// ApplyWayTags. bendiness is the squared beeline to road length ratio, only above curvature speed.
func (m *motorcycleProfile) ApplyWayTags(flags encodedvalue.Flags, speed, roadDistance, beelineDistance float64) encodedvalue.Flags {
	bendiness := beelineDistance / roadDistance
	if speed < pkg.CURVATURE_MIN_SPEED {
		bendiness = 1
	}
	bendiness *= bendiness
	if math.IsNaN(bendiness) || bendiness < pkg.CURVATURE_EPSILON || bendiness > 1 {
		bendiness = 1
	}
	return m.curvature.SetValue(flags, int64(bendiness*pkg.CURVATURE_MAX_RAW))
}

func (m *motorcycleProfile) Double(flags encodedvalue.Flags, key string) (float64, bool) {
	switch key {
	case pkg.FEATURE_PRIORITY:
		return float64(m.priority.Value(flags)) / float64(pkg.BEST.Value()), true
	case pkg.FEATURE_CURVATURE:
		return float64(m.curvature.Value(flags)) / pkg.CURVATURE_MAX_RAW, true
	}
	return 0, false
}

func (m *motorcycleProfile) Supports(feature string) bool {
	switch feature {
	case pkg.FEATURE_PRIORITY, pkg.FEATURE_CURVATURE:
		return true
	}
	return false
}
