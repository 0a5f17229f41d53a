package cpu

import "github.com/thelolagemann/sm83/internal/types"

// Flag is a mask over the F register.
type Flag = uint8

const (
	FlagZero      Flag = types.Bit7
	FlagNegative  Flag = types.Bit6
	FlagHalfCarry Flag = types.Bit5
	FlagCarry     Flag = types.Bit4

	flagMask = FlagZero | FlagNegative | FlagHalfCarry | FlagCarry
)

// makeFlags packs the four flag conditions into an F value.
func makeFlags(zero, negative, halfCarry, carry bool) uint8 {
	var f uint8
	if zero {
		f |= FlagZero
	}
	if negative {
		f |= FlagNegative
	}
	if halfCarry {
		f |= FlagHalfCarry
	}
	if carry {
		f |= FlagCarry
	}
	return f
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.reg.AF.Lo&flag == flag
}

// setF replaces the flags, keeping the unused low nibble clear.
func (c *CPU) setF(f uint8) {
	c.reg.AF.Lo = f & flagMask
}

// condition evaluates one of the four branch conditions, in
// opcode order: NZ, Z, NC, C.
func condition(cc uint8, f uint8) bool {
	switch cc & 3 {
	case 0:
		return f&FlagZero == 0
	case 1:
		return f&FlagZero != 0
	case 2:
		return f&FlagCarry == 0
	default:
		return f&FlagCarry != 0
	}
}
