package encodedvalue

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/flagencoder/pkg/util"
)

// EncodedValue. quantized non-negative value stored in a fixed bit range of Flags.
//
// a value v is clamped to [0, maxValue], divided by factor, rounded to the nearest integer and
// saturated at 2^bits-1. decoding multiplies the raw integer by factor.
type EncodedValue struct {
	name         string
	shift        uint
	bits         uint
	mask         Flags
	rawMax       uint64
	factor       float64
	defaultValue float64
	maxValue     float64
}

func newEncodedValue(name string, shift, bits int, factor, defaultValue, maxValue float64) (*EncodedValue, error) {
	if bits < 1 {
		return nil, fmt.Errorf("%w: %s needs at least one bit, got %d", ErrInvalidLayout, name, bits)
	}
	if shift < 0 || shift+bits > FlagsBits {
		return nil, fmt.Errorf("%w: %s at bit %d with %d bits does not fit %d bits", ErrBitBudgetExceeded,
			name, shift, bits, FlagsBits)
	}
	if !(factor > 0) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("%w: %s factor must be positive, got %v", ErrInvalidLayout, name, factor)
	}
	if !(maxValue >= 0) || !(defaultValue >= 0) || defaultValue > maxValue {
		return nil, fmt.Errorf("%w: %s default %v must be within [0, %v]", ErrInvalidLayout, name, defaultValue, maxValue)
	}

	rawMax := uint64(1)<<uint(bits) - 1
	if bits == FlagsBits {
		rawMax = math.MaxUint64
	}
	return &EncodedValue{
		name:         name,
		shift:        uint(shift),
		bits:         uint(bits),
		mask:         Flags(rawMax) << uint(shift),
		rawMax:       rawMax,
		factor:       factor,
		defaultValue: defaultValue,
		maxValue:     maxValue,
	}, nil
}

// NewEncodedValue. integer valued field, e.g. priority or curvature with factor 1.
func NewEncodedValue(name string, shift, bits int, factor float64, defaultValue, maxValue int64) (*EncodedValue, error) {
	return newEncodedValue(name, shift, bits, factor, float64(defaultValue), float64(maxValue))
}

func (ev *EncodedValue) Name() string {
	return ev.name
}

func (ev *EncodedValue) Shift() int {
	return int(ev.shift)
}

func (ev *EncodedValue) Bits() int {
	return int(ev.bits)
}

// NextShift. first bit after this field.
func (ev *EncodedValue) NextShift() int {
	return int(ev.shift + ev.bits)
}

func (ev *EncodedValue) Mask() Flags {
	return ev.mask
}

func (ev *EncodedValue) Factor() float64 {
	return ev.factor
}

func (ev *EncodedValue) MaxValue() float64 {
	return ev.maxValue
}

func (ev *EncodedValue) DefaultValue() float64 {
	return ev.defaultValue
}

// Raw. the stored integer of this range.
func (ev *EncodedValue) Raw(flags Flags) uint64 {
	return uint64((flags & ev.mask) >> ev.shift)
}

// SetRaw. stores raw directly, saturating at 2^bits-1.
func (ev *EncodedValue) SetRaw(flags Flags, raw uint64) Flags {
	if raw > ev.rawMax {
		raw = ev.rawMax
	}
	return (flags &^ ev.mask) | (Flags(raw) << ev.shift)
}

func (ev *EncodedValue) encode(flags Flags, value float64) Flags {
	util.AssertPanic(!math.IsNaN(value), fmt.Sprintf("%s value must be a number, flags: %s", ev.name, flags))
	util.AssertPanic(value >= 0, fmt.Sprintf("%s cannot be negative: %v, flags: %s", ev.name, value, flags))

	value = util.Clamp(value, 0, ev.maxValue)
	q := math.Round(value / ev.factor)
	raw := ev.rawMax
	if q < float64(ev.rawMax) {
		raw = uint64(q)
	}
	return ev.SetRaw(flags, raw)
}

func (ev *EncodedValue) decode(flags Flags) float64 {
	return float64(ev.Raw(flags)) * ev.factor
}

func (ev *EncodedValue) SetValue(flags Flags, value int64) Flags {
	return ev.encode(flags, float64(value))
}

func (ev *EncodedValue) Value(flags Flags) int64 {
	return int64(math.Round(ev.decode(flags)))
}

func (ev *EncodedValue) SetDefaultValue(flags Flags) Flags {
	return ev.encode(flags, ev.defaultValue)
}

// Swap. exchanges the raw contents of ev and other, both must have the same width.
func (ev *EncodedValue) Swap(flags Flags, other *EncodedValue) Flags {
	util.AssertPanic(ev.bits == other.bits, fmt.Sprintf("cannot swap %s (%d bits) with %s (%d bits)",
		ev.name, ev.bits, other.name, other.bits))
	a, b := ev.Raw(flags), other.Raw(flags)
	return other.SetRaw(ev.SetRaw(flags, b), a)
}

func (ev *EncodedValue) String() string {
	return fmt.Sprintf("%s[shift=%d,bits=%d,factor=%v,max=%v]", ev.name, ev.shift, ev.bits, ev.factor, ev.maxValue)
}

// EncodedDoubleValue. EncodedValue read and written as float64, used for speeds.
type EncodedDoubleValue struct {
	EncodedValue
}

func NewEncodedDoubleValue(name string, shift, bits int, factor, defaultValue, maxValue float64) (*EncodedDoubleValue, error) {
	ev, err := newEncodedValue(name, shift, bits, factor, defaultValue, maxValue)
	if err != nil {
		return nil, err
	}
	return &EncodedDoubleValue{EncodedValue: *ev}, nil
}

func (ev *EncodedDoubleValue) SetDoubleValue(flags Flags, value float64) Flags {
	return ev.encode(flags, value)
}

func (ev *EncodedDoubleValue) DoubleValue(flags Flags) float64 {
	return ev.decode(flags)
}
