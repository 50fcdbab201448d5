package encodedvalue

import (
	"errors"
	"fmt"
)

// FlagsBits. width of the packed per-edge integer.
const FlagsBits = 64

var (
	ErrBitBudgetExceeded = errors.New("bit budget exceeded")
	ErrInvalidLayout     = errors.New("invalid bit layout")
)

// Flags. packed per-edge attributes. only descriptors (Bit, EncodedValue) read or write its ranges,
// every write returns a new value.
type Flags uint64

func (f Flags) String() string {
	return fmt.Sprintf("%064b", uint64(f))
}

func (f Flags) Uint64() uint64 {
	return uint64(f)
}
