package encodedvalue

import "fmt"

// BitAllocator. hands out contiguous, non-overlapping bit ranges of Flags in the order they are requested.
type BitAllocator struct {
	shift    int
	capacity int
}

func NewBitAllocator(shift, capacity int) (*BitAllocator, error) {
	if capacity < 1 || capacity > FlagsBits {
		return nil, fmt.Errorf("%w: capacity must be within [1, %d], got %d", ErrInvalidLayout, FlagsBits, capacity)
	}
	if shift < 0 || shift > capacity {
		return nil, fmt.Errorf("%w: start bit %d outside capacity %d", ErrBitBudgetExceeded, shift, capacity)
	}
	return &BitAllocator{shift: shift, capacity: capacity}, nil
}

// Shift. next free bit.
func (a *BitAllocator) Shift() int {
	return a.shift
}

func (a *BitAllocator) Capacity() int {
	return a.capacity
}

func (a *BitAllocator) Remaining() int {
	return a.capacity - a.shift
}

func (a *BitAllocator) reserve(name string, bits int) (int, error) {
	if bits < 1 {
		return 0, fmt.Errorf("%w: %s needs at least one bit, got %d", ErrInvalidLayout, name, bits)
	}
	if bits > a.Remaining() {
		return 0, fmt.Errorf("%w: %s needs %d bits at bit %d, only %d of %d left", ErrBitBudgetExceeded,
			name, bits, a.shift, a.Remaining(), a.capacity)
	}
	start := a.shift
	a.shift += bits
	return start, nil
}

func (a *BitAllocator) Bit(name string) (Bit, error) {
	start, err := a.reserve(name, 1)
	if err != nil {
		return Bit{}, err
	}
	return newBit(name, uint(start)), nil
}

func (a *BitAllocator) Value(name string, bits int, factor float64, defaultValue, maxValue int64) (*EncodedValue, error) {
	start, err := a.reserve(name, bits)
	if err != nil {
		return nil, err
	}
	return NewEncodedValue(name, start, bits, factor, defaultValue, maxValue)
}

func (a *BitAllocator) DoubleValue(name string, bits int, factor, defaultValue, maxValue float64) (*EncodedDoubleValue, error) {
	start, err := a.reserve(name, bits)
	if err != nil {
		return nil, err
	}
	return NewEncodedDoubleValue(name, start, bits, factor, defaultValue, maxValue)
}
