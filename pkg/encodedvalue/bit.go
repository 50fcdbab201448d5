package encodedvalue

// Bit. single boolean bit inside Flags.
type Bit struct {
	name string
	pos  uint
	mask Flags
}

func newBit(name string, pos uint) Bit {
	return Bit{name: name, pos: pos, mask: Flags(1) << pos}
}

func (b Bit) Name() string {
	return b.name
}

func (b Bit) Position() uint {
	return b.pos
}

func (b Bit) Mask() Flags {
	return b.mask
}

func (b Bit) IsSet(flags Flags) bool {
	return flags&b.mask != 0
}

func (b Bit) On(flags Flags) Flags {
	return flags | b.mask
}

func (b Bit) Off(flags Flags) Flags {
	return flags &^ b.mask
}

func (b Bit) Set(flags Flags, on bool) Flags {
	if on {
		return b.On(flags)
	}
	return b.Off(flags)
}
