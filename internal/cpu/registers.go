package cpu

// Register represents a single 8-bit register lane.
type Register = uint8

// RegisterPair represents a pair of Registers which can be addressed
// as a single 16-bit value. Hi holds the most significant byte.
type RegisterPair struct {
	Hi Register
	Lo Register
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(r.Hi)<<8 | uint16(r.Lo)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	r.Hi = uint8(value >> 8)
	r.Lo = uint8(value)
}

// postInc returns the current value of the pair, then increments it.
func (r *RegisterPair) postInc() uint16 {
	v := r.Uint16()
	r.SetUint16(v + 1)
	return v
}

// preDec decrements the pair, then returns the new value.
func (r *RegisterPair) preDec() uint16 {
	r.SetUint16(r.Uint16() - 1)
	return r.Uint16()
}

// Registers is the SM83 register file. The low lane of AF holds the
// flags, of which only bits 7-4 are ever set.
type Registers struct {
	AF RegisterPair
	BC RegisterPair
	DE RegisterPair
	HL RegisterPair
	SP RegisterPair
	PC RegisterPair
}

func (r Registers) A() uint8 { return r.AF.Hi }
func (r Registers) F() uint8 { return r.AF.Lo }
func (r Registers) B() uint8 { return r.BC.Hi }
func (r Registers) C() uint8 { return r.BC.Lo }
func (r Registers) D() uint8 { return r.DE.Hi }
func (r Registers) E() uint8 { return r.DE.Lo }
func (r Registers) H() uint8 { return r.HL.Hi }
func (r Registers) L() uint8 { return r.HL.Lo }

// Flag reports whether the given flag mask is set in F.
func (r Registers) Flag(flag Flag) bool {
	return r.AF.Lo&flag == flag
}

// post-boot register values, as left by the DMG boot ROM.
var postBootRegisters = Registers{
	AF: RegisterPair{0x01, 0xB0},
	BC: RegisterPair{0x00, 0x13},
	DE: RegisterPair{0x00, 0xD8},
	HL: RegisterPair{0x01, 0x4D},
	SP: RegisterPair{0xFF, 0xFE},
	PC: RegisterPair{0x01, 0x00},
}

// operand index used by the opcode encoding for "memory at HL".
const operandHL = 6

// reg8 returns the register selected by an 8-bit operand index
// (B, C, D, E, H, L, (HL), A), or nil for the memory operand.
func (c *CPU) reg8(index uint8) *Register {
	return c.registerPointers[index&7]
}

// rp returns the register pair selected by p, with SP in slot 3.
func (c *CPU) rp(p uint8) *RegisterPair {
	switch p & 3 {
	case 0:
		return &c.reg.BC
	case 1:
		return &c.reg.DE
	case 2:
		return &c.reg.HL
	default:
		return &c.reg.SP
	}
}

// rp2 returns the register pair selected by p, with AF in slot 3.
func (c *CPU) rp2(p uint8) *RegisterPair {
	if p&3 == 3 {
		return &c.reg.AF
	}
	return c.rp(p)
}
