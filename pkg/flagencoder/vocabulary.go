package flagencoder

import (
	"fmt"

	"github.com/lintang-b-s/flagencoder/pkg/osmway"
)

// Vocabulary. tag keys and values that govern access for one profile. read-only after construction.
type Vocabulary struct {
	// consulted in priority order, the first present key decides
	Restrictions     []string
	RestrictedValues osmway.Set
	IntendedValues   osmway.Set

	Ferries          osmway.Set
	Oneways          osmway.Set
	AcceptedRailways osmway.Set
}

func (v Vocabulary) validate() error {
	if len(v.Restrictions) == 0 {
		return fmt.Errorf("%w: no restriction keys", ErrInvalidVocabulary)
	}
	if !v.RestrictedValues.Disjoint(v.IntendedValues) {
		return fmt.Errorf("%w: restricted and intended values overlap", ErrInvalidVocabulary)
	}
	return nil
}

// Tables. per profile lookup tables, populated once and shared by every way the encoder handles.
type Tables struct {
	Vocabulary Vocabulary

	// road class -> km/h
	DefaultSpeeds map[string]int
	// tracktype -> km/h, overrides the track speed
	TrackTypeSpeeds map[string]int
	BadSurfaces     osmway.Set

	MaxPossibleSpeed float64

	// keys checked for explicit vehicle access on ferry routes
	FerryAccess []string
}

func (t Tables) validate() error {
	if err := t.Vocabulary.validate(); err != nil {
		return err
	}
	if !(t.MaxPossibleSpeed > 0) {
		return fmt.Errorf("%w: max possible speed must be positive", ErrInvalidOption)
	}
	for _, class := range []string{"secondary", "living_street", "service", "residential"} {
		if _, ok := t.DefaultSpeeds[class]; !ok {
			return fmt.Errorf("%w: speed table has no %s speed", ErrInvalidOption, class)
		}
	}
	return nil
}

func baseVocabulary(vehicleKey string) Vocabulary {
	return Vocabulary{
		Restrictions: []string{vehicleKey, "motor_vehicle", "vehicle", "access"},
		RestrictedValues: osmway.NewSet("private", "agricultural", "forestry", "no", "restricted",
			"delivery", "military", "emergency"),
		IntendedValues: osmway.NewSet("yes", "permissive"),
		Ferries:        osmway.NewSet("shuttle_train", "ferry"),
		Oneways:        osmway.NewSet("yes", "true", "1", "-1"),
		AcceptedRailways: osmway.NewSet("tram", "abandoned", "abandoned_tram", "disused", "dismantled",
			"razed", "historic", "obliterated"),
	}
}

func badSurfaces() osmway.Set {
	return osmway.NewSet("cobblestone", "grass_paver", "gravel", "sand", "paving_stones", "dirt",
		"ground", "grass")
}
