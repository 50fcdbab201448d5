package flagencoder

import (
	"fmt"
	"strings"

	"github.com/lintang-b-s/flagencoder/pkg/encodedvalue"
	"github.com/lintang-b-s/flagencoder/pkg/osmway"
)

// EncodingManager. several profiles sharing one flags value, each in a disjoint bit range.
type EncodingManager struct {
	encoders      []*Encoder
	byName        map[string]*Encoder
	bytesForFlags int
	usedBits      int
	usedTurnBits  int
}

// NewEncodingManager. builds the profiles named in a list like "car,motorcycle|speedBits=4".
// opts apply to every profile before its own properties.
func NewEncodingManager(profileList string, bytesForFlags int, opts ...Option) (*EncodingManager, error) {
	var encoders []*Encoder
	for _, entry := range strings.Split(profileList, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, properties, _ := strings.Cut(entry, "|")
		name = strings.ToLower(strings.TrimSpace(name))

		ext, err := newExtension(name)
		if err != nil {
			return nil, err
		}
		own, err := ParseOptions(properties)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		e, err := newEncoder(ext, append(append([]Option{}, opts...), own...)...)
		if err != nil {
			return nil, err
		}
		encoders = append(encoders, e)
	}
	return NewEncodingManagerFromEncoders(bytesForFlags, encoders...)
}

// NewEncodingManagerFromEncoders. lays out encoders that have no bits defined yet.
func NewEncodingManagerFromEncoders(bytesForFlags int, encoders ...*Encoder) (*EncodingManager, error) {
	if bytesForFlags < 1 || bytesForFlags*8 > encodedvalue.FlagsBits {
		return nil, fmt.Errorf("%w: bytesForFlags must be within [1, %d], got %d",
			encodedvalue.ErrInvalidLayout, encodedvalue.FlagsBits/8, bytesForFlags)
	}
	if len(encoders) == 0 {
		return nil, fmt.Errorf("%w: no encoders", ErrUnknownProfile)
	}

	em := &EncodingManager{
		byName:        make(map[string]*Encoder, len(encoders)),
		bytesForFlags: bytesForFlags,
	}
	capacity := bytesForFlags * 8
	for i, e := range encoders {
		if _, ok := em.byName[e.Name()]; ok {
			return nil, fmt.Errorf("%w: duplicate encoder %s", encodedvalue.ErrInvalidLayout, e.Name())
		}
		next, err := e.DefineWayBits(i, em.usedBits, capacity)
		if err != nil {
			return nil, fmt.Errorf("encoders are requesting more than %d bits of way flags: %w", capacity, err)
		}
		em.usedBits = next

		nextTurn, err := e.DefineTurnBits(em.usedTurnBits, encodedvalue.FlagsBits)
		if err != nil {
			return nil, fmt.Errorf("encoders are requesting more than %d bits of turn flags: %w",
				encodedvalue.FlagsBits, err)
		}
		em.usedTurnBits = nextTurn

		em.encoders = append(em.encoders, e)
		em.byName[e.Name()] = e
	}
	return em, nil
}

func (em *EncodingManager) Encoders() []*Encoder {
	return append([]*Encoder(nil), em.encoders...)
}

func (em *EncodingManager) Encoder(name string) (*Encoder, error) {
	e, ok := em.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return e, nil
}

func (em *EncodingManager) Supports(name string) bool {
	_, ok := em.byName[name]
	return ok
}

func (em *EncodingManager) BytesForFlags() int {
	return em.bytesForFlags
}

func (em *EncodingManager) UsedBits() int {
	return em.usedBits
}

// AcceptWay. union of every encoder's acceptance bits.
func (em *EncodingManager) AcceptWay(way osmway.TagReader) AcceptMask {
	var mask AcceptMask
	for _, e := range em.encoders {
		mask |= e.AcceptWay(way)
	}
	return mask
}

func (em *EncodingManager) HandleWayTags(way osmway.TagReader, allowed AcceptMask, relationPriority int) Flags {
	var flags Flags
	for _, e := range em.encoders {
		flags |= e.HandleWayTags(way, allowed, relationPriority)
	}
	return flags
}

func (em *EncodingManager) ApplyWayTags(way osmway.TagReader, edge EdgeState) {
	for _, e := range em.encoders {
		e.ApplyWayTags(way, edge)
	}
}

func (em *EncodingManager) ReverseFlags(flags Flags) Flags {
	for _, e := range em.encoders {
		flags = e.ReverseFlags(flags)
	}
	return flags
}

// String. profile names in layout order, e.g. "car,motorcycle".
func (em *EncodingManager) String() string {
	names := make([]string, len(em.encoders))
	for i, e := range em.encoders {
		names[i] = e.Name()
	}
	return strings.Join(names, ",")
}

// VersionString. the profiles' PropertiesString joined by ",", stored next to persisted flags.
func (em *EncodingManager) VersionString() string {
	parts := make([]string, len(em.encoders))
	for i, e := range em.encoders {
		parts[i] = e.PropertiesString()
	}
	return strings.Join(parts, ",")
}

// CheckVersion. persisted flags are only readable by the same profiles in the same order, version and
// field widths.
func (em *EncodingManager) CheckVersion(stored string) error {
	if stored != em.VersionString() {
		return fmt.Errorf("%w: stored %q, current %q", ErrIncompatibleVersion, stored, em.VersionString())
	}
	return nil
}
