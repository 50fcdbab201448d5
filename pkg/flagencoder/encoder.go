package flagencoder

import (
	"fmt"
	"math"
	"strconv"

	"github.com/lintang-b-s/flagencoder/pkg"
	"github.com/lintang-b-s/flagencoder/pkg/conditional"
	"github.com/lintang-b-s/flagencoder/pkg/encodedvalue"
	"github.com/lintang-b-s/flagencoder/pkg/util"
)

type Flags = encodedvalue.Flags

// AcceptMask. two bits per encoder: routable and ferry.
type AcceptMask uint64

type WayAcceptance uint8

const (
	REJECTED WayAcceptance = iota
	ACCEPTED
	ACCEPTED_FERRY
)

func (a WayAcceptance) String() string {
	switch a {
	case ACCEPTED:
		return "accepted"
	case ACCEPTED_FERRY:
		return "accepted_ferry"
	default:
		return "rejected"
	}
}

// Encoder. translates osm way tags of one vehicle profile into packed edge flags.
// immutable once its bits are defined, safe for concurrent use.
type Encoder struct {
	ext         Extension
	opts        Options
	tables      Tables
	conditional *conditional.Inspector

	index     int
	acceptBit AcceptMask
	ferryBit  AcceptMask

	firstBit int
	nextBit  int
	defined  bool

	forward    encodedvalue.Bit
	backward   encodedvalue.Bit
	roundabout encodedvalue.Bit
	speed      *encodedvalue.EncodedDoubleValue

	turnRestriction encodedvalue.Bit
	turnCosts       *encodedvalue.EncodedValue
	turnNextBit     int
}

func newEncoder(ext Extension, opts ...Option) (*Encoder, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	tables := ext.Tables()
	if err := tables.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ext.Name(), err)
	}
	voc := tables.Vocabulary
	return &Encoder{
		ext:    ext,
		opts:   o,
		tables: tables,
		conditional: conditional.NewInspector(voc.Restrictions, voc.RestrictedValues, voc.IntendedValues,
			conditional.WithClock(o.Clock)),
	}, nil
}

// NewEncoder. creates the named profile and lays its bits out from offset 0 of a 64 bit flags value.
func NewEncoder(name string, opts ...Option) (*Encoder, error) {
	ext, err := newExtension(name)
	if err != nil {
		return nil, err
	}
	e, err := newEncoder(ext, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := e.DefineWayBits(0, 0, encodedvalue.FlagsBits); err != nil {
		return nil, err
	}
	if _, err := e.DefineTurnBits(0, encodedvalue.FlagsBits); err != nil {
		return nil, err
	}
	return e, nil
}

func NewCarEncoder(opts ...Option) (*Encoder, error) {
	return NewEncoder(CAR, opts...)
}

func NewMotorcycleEncoder(opts ...Option) (*Encoder, error) {
	return NewEncoder(MOTORCYCLE, opts...)
}

// DefineWayBits. allocates the base fields then the extension fields starting at shift.
// index selects the acceptance bits. returns the next free bit.
func (e *Encoder) DefineWayBits(index, shift, capacity int) (int, error) {
	if e.defined {
		return 0, fmt.Errorf("%w: %s", ErrAlreadyDefined, e.Name())
	}
	if index < 0 || index >= 32 {
		return 0, fmt.Errorf("%w: encoder index %d out of range", encodedvalue.ErrInvalidLayout, index)
	}
	a, err := encodedvalue.NewBitAllocator(shift, capacity)
	if err != nil {
		return 0, err
	}

	e.firstBit = shift
	if e.forward, err = a.Bit(e.Name() + ".forward"); err != nil {
		return 0, err
	}
	if e.backward, err = a.Bit(e.Name() + ".backward"); err != nil {
		return 0, err
	}
	if e.roundabout, err = a.Bit(e.Name() + ".roundabout"); err != nil {
		return 0, err
	}

	defaultSpeed := float64(e.tables.DefaultSpeeds["secondary"])
	e.speed, err = a.DoubleValue(e.Name()+".speed", e.opts.SpeedBits, e.opts.SpeedFactor,
		defaultSpeed, e.tables.MaxPossibleSpeed)
	if err != nil {
		return 0, err
	}

	if err := e.ext.DefineWayBits(a, e.opts, defaultSpeed, e.tables.MaxPossibleSpeed); err != nil {
		return 0, fmt.Errorf("%s: %w", e.Name(), err)
	}

	e.index = index
	e.acceptBit = AcceptMask(1) << (2 * index)
	e.ferryBit = AcceptMask(2) << (2 * index)
	e.nextBit = a.Shift()
	e.defined = true
	return e.nextBit, nil
}

// DefineTurnBits. reserves the turn restriction bit and the turn cost field in a separate integer.
// nothing is reserved when turn costs are disabled.
func (e *Encoder) DefineTurnBits(shift, capacity int) (int, error) {
	if e.opts.MaxTurnCosts <= 0 {
		e.turnNextBit = shift
		return shift, nil
	}
	a, err := encodedvalue.NewBitAllocator(shift, capacity)
	if err != nil {
		return 0, err
	}
	if e.turnRestriction, err = a.Bit(e.Name() + ".turn_restriction"); err != nil {
		return 0, err
	}
	bits := util.BitLength(uint64(e.opts.MaxTurnCosts))
	e.turnCosts, err = a.Value(e.Name()+".turn_costs", bits, 1, 0, int64(e.opts.MaxTurnCosts))
	if err != nil {
		return 0, err
	}
	e.turnNextBit = a.Shift()
	return e.turnNextBit, nil
}

func (e *Encoder) Name() string {
	return e.ext.Name()
}

func (e *Encoder) Version() int {
	return e.ext.Version()
}

// PropertiesString. name, the options that shape the bit layout and the version,
// e.g. "motorcycle|speedBits=5|speedFactor=5|maxTurnCosts=0|version=1".
func (e *Encoder) PropertiesString() string {
	return fmt.Sprintf("%s|speedBits=%d|speedFactor=%s|maxTurnCosts=%d|version=%d", e.Name(),
		e.opts.SpeedBits, strconv.FormatFloat(e.opts.SpeedFactor, 'g', -1, 64), e.opts.MaxTurnCosts, e.Version())
}

func (e *Encoder) Index() int {
	return e.index
}

func (e *Encoder) Options() Options {
	return e.opts
}

// BitRange. [first, next) bits of the way flags owned by this encoder.
func (e *Encoder) BitRange() (int, int) {
	return e.firstBit, e.nextBit
}

// MaxSpeed. highest speed the profile can encode in km/h.
func (e *Encoder) MaxSpeed() float64 {
	return e.tables.MaxPossibleSpeed
}

func (e *Encoder) SpeedField() *encodedvalue.EncodedDoubleValue {
	return e.speed
}

func (e *Encoder) ReverseSpeedField() *encodedvalue.EncodedDoubleValue {
	if rev := e.ext.ReverseSpeedField(); rev != nil {
		return rev
	}
	return e.speed
}

func (e *Encoder) String() string {
	return e.Name()
}

func (e *Encoder) mustBeDefined() {
	util.AssertPanic(e.defined, fmt.Sprintf("%s: way bits are not defined", e.Name()))
}

// Acceptance. decodes this encoder's part of an acceptance mask.
func (e *Encoder) Acceptance(mask AcceptMask) WayAcceptance {
	switch {
	case mask&e.ferryBit != 0:
		return ACCEPTED_FERRY
	case mask&e.acceptBit != 0:
		return ACCEPTED
	default:
		return REJECTED
	}
}

func (e *Encoder) IsAccept(mask AcceptMask) bool {
	return mask&(e.acceptBit|e.ferryBit) != 0
}

func (e *Encoder) IsFerry(mask AcceptMask) bool {
	return mask&e.ferryBit != 0
}

func (e *Encoder) IsForward(flags Flags) bool {
	return e.forward.IsSet(flags)
}

func (e *Encoder) IsBackward(flags Flags) bool {
	return e.backward.IsSet(flags)
}

func (e *Encoder) IsRoundabout(flags Flags) bool {
	return e.roundabout.IsSet(flags)
}

func (e *Encoder) SetRoundabout(flags Flags, roundabout bool) Flags {
	return e.roundabout.Set(flags, roundabout)
}

func (e *Encoder) SetAccess(flags Flags, forward, backward bool) Flags {
	return e.backward.Set(e.forward.Set(flags, forward), backward)
}

func (e *Encoder) Speed(flags Flags) float64 {
	return e.speed.DoubleValue(flags)
}

// SetSpeed. speeds below half the speed factor cannot be represented, they clear the forward bit.
func (e *Encoder) SetSpeed(flags Flags, speed float64) Flags {
	util.AssertPanic(!math.IsNaN(speed) && speed >= 0,
		fmt.Sprintf("%s: speed cannot be negative or NaN: %v, flags: %s", e.Name(), speed, flags))
	if speed < e.speed.Factor()/2 {
		return e.forward.Off(e.speed.SetDoubleValue(flags, 0))
	}
	return e.speed.SetDoubleValue(flags, speed)
}

func (e *Encoder) ReverseSpeed(flags Flags) float64 {
	return e.ReverseSpeedField().DoubleValue(flags)
}

// SetReverseSpeed. for profiles without a reverse field a low speed only clears the backward bit,
// the shared speed field keeps the forward value.
func (e *Encoder) SetReverseSpeed(flags Flags, speed float64) Flags {
	util.AssertPanic(!math.IsNaN(speed) && speed >= 0,
		fmt.Sprintf("%s: reverse speed cannot be negative or NaN: %v, flags: %s", e.Name(), speed, flags))
	rev := e.ext.ReverseSpeedField()
	low := speed < e.speed.Factor()/2
	switch {
	case rev == nil && low:
		return e.backward.Off(flags)
	case rev == nil:
		return e.speed.SetDoubleValue(flags, speed)
	case low:
		return e.backward.Off(rev.SetDoubleValue(flags, 0))
	default:
		return rev.SetDoubleValue(flags, speed)
	}
}

// FlagsDefault. flags with the default speeds and the given directions.
func (e *Encoder) FlagsDefault(forward, backward bool) Flags {
	e.mustBeDefined()
	flags := e.speed.SetDefaultValue(0)
	if rev := e.ext.ReverseSpeedField(); rev != nil && backward {
		flags = rev.SetDefaultValue(flags)
	}
	return e.SetAccess(flags, forward, backward)
}

// SetProperties. flags for a given speed and directions.
func (e *Encoder) SetProperties(speed float64, forward, backward bool) Flags {
	e.mustBeDefined()
	flags := e.SetSpeed(e.SetAccess(0, forward, backward), speed)
	if e.ext.ReverseSpeedField() != nil && backward {
		flags = e.SetReverseSpeed(flags, speed)
	}
	return flags
}

// ReverseFlags. swaps the direction bits and, when present, the raw forward and reverse speeds.
// applying it twice yields the original flags.
func (e *Encoder) ReverseFlags(flags Flags) Flags {
	fwd, bwd := e.forward.IsSet(flags), e.backward.IsSet(flags)
	flags = e.SetAccess(flags, bwd, fwd)
	if rev := e.ext.ReverseSpeedField(); rev != nil {
		flags = e.speed.Swap(flags, &rev.EncodedValue)
	}
	return flags
}

// Double. named profile value, e.g. "priority" or "curvature".
func (e *Encoder) Double(flags Flags, key string) (float64, error) {
	if v, ok := e.ext.Double(flags, key); ok {
		return v, nil
	}
	return 0, fmt.Errorf("%w: %q for %s", ErrUnsupportedKey, key, e.Name())
}

func (e *Encoder) Supports(feature string) bool {
	switch feature {
	case pkg.FEATURE_FASTEST:
		return true
	case pkg.FEATURE_TURN_COSTS:
		return e.opts.MaxTurnCosts > 0
	}
	return e.ext.Supports(feature)
}
