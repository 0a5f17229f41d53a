package cpu

// ALUOp selects one of the eight accumulator operations, in the
// order they are encoded by the y field of an ALU opcode.
type ALUOp uint8

const (
	ALUAdd ALUOp = iota
	ALUAdc
	ALUSub
	ALUSbc
	ALUAnd
	ALUXor
	ALUOr
	ALUCp
)

// ALU performs op on the accumulator a and operand n, returning the
// new accumulator and flags. The incoming flags are only consulted
// for the carry input of ADC and SBC.
//
// Flags affected:
//
//	ADD/ADC  Z - result is zero, N - reset, H - carry from bit 3, C - carry from bit 7.
//	SUB/SBC  Z - result is zero, N - set, H - borrow from bit 4, C - borrow.
//	AND      Z - result is zero, N - reset, H - set, C - reset.
//	XOR/OR   Z - result is zero, N - reset, H - reset, C - reset.
//	CP       as SUB, but the accumulator is left unchanged.
func ALU(op ALUOp, a, n, flags uint8) (uint8, uint8) {
	var carry uint8
	if (op == ALUAdc || op == ALUSbc) && flags&FlagCarry != 0 {
		carry = 1
	}

	switch op {
	case ALUAdd, ALUAdc:
		sum := uint16(a) + uint16(n) + uint16(carry)
		result := uint8(sum)
		return result, makeFlags(result == 0, false, a&0xF+n&0xF+carry > 0xF, sum > 0xFF)
	case ALUSub, ALUSbc, ALUCp:
		diff := int16(a) - int16(n) - int16(carry)
		result := uint8(diff)
		f := makeFlags(result == 0, true, int16(a&0xF)-int16(n&0xF)-int16(carry) < 0, diff < 0)
		if op == ALUCp {
			return a, f
		}
		return result, f
	case ALUAnd:
		a &= n
		return a, makeFlags(a == 0, false, true, false)
	case ALUXor:
		a ^= n
		return a, makeFlags(a == 0, false, false, false)
	default: // ALUOr
		a |= n
		return a, makeFlags(a == 0, false, false, false)
	}
}

// DAA adjusts the accumulator to packed BCD after an addition or
// subtraction, using the N, H and C flags left by that operation.
//
// After an addition, 0x60 is added when C is set or a > 0x99 (which
// sets C), and 0x06 when H is set or the low nibble exceeds 9. After
// a subtraction, 0x60 and 0x06 are subtracted when C and H are set.
//
// Flags affected:
//
//	Z - result is zero, N - not affected, H - reset, C - set on BCD overflow.
func DAA(a, flags uint8) (uint8, uint8) {
	negative := flags&FlagNegative != 0
	halfCarry := flags&FlagHalfCarry != 0
	carry := flags&FlagCarry != 0

	if !negative {
		if carry || a > 0x99 {
			a += 0x60
			carry = true
		}
		if halfCarry || a&0x0F > 0x09 {
			a += 0x06
		}
	} else {
		if carry {
			a -= 0x60
		}
		if halfCarry {
			a -= 0x06
		}
	}

	return a, makeFlags(a == 0, negative, false, carry)
}

// Inc8 increments n by 1. C is not affected.
//
//	Z - result is zero, N - reset, H - carry from bit 3.
func Inc8(n, flags uint8) (uint8, uint8) {
	result := n + 1
	return result, makeFlags(result == 0, false, n&0xF == 0xF, flags&FlagCarry != 0)
}

// Dec8 decrements n by 1. C is not affected.
//
//	Z - result is zero, N - set, H - borrow from bit 4.
func Dec8(n, flags uint8) (uint8, uint8) {
	result := n - 1
	return result, makeFlags(result == 0, true, n&0xF == 0, flags&FlagCarry != 0)
}

// AddHL adds nn to hl. Z is not affected.
//
//	N - reset, H - carry from bit 11, C - carry from bit 15.
func AddHL(hl, nn uint16, flags uint8) (uint16, uint8) {
	sum := uint32(hl) + uint32(nn)
	return uint16(sum), makeFlags(flags&FlagZero != 0, false, hl&0xFFF+nn&0xFFF > 0xFFF, sum > 0xFFFF)
}

// AddSP adds the signed offset e to sp, as used by ADD SP, i8 and
// LD HL, SP+i8. The carries are those of the unsigned addition of
// e to the low byte of sp.
//
//	Z - reset, N - reset, H - carry from bit 3, C - carry from bit 7.
func AddSP(sp uint16, e uint8) (uint16, uint8) {
	result := sp + uint16(int16(int8(e)))
	return result, makeFlags(false, false, sp&0xF+uint16(e&0xF) > 0xF, sp&0xFF+uint16(e) > 0xFF)
}

// Rotate performs one of the eight CB-prefixed rotate and shift
// operations, selected by the y field of the opcode: RLC, RRC, RL,
// RR, SLA, SRA, SWAP, SRL.
//
//	Z - result is zero, N - reset, H - reset, C - the bit shifted out
//	(SWAP always resets C).
func Rotate(op uint8, n, flags uint8) (uint8, uint8) {
	var result uint8
	var carryIn uint8
	if flags&FlagCarry != 0 {
		carryIn = 1
	}

	carryOut := n&0x80 != 0
	switch op & 7 {
	case 0: // RLC
		result = n<<1 | n>>7
	case 1: // RRC
		result = n>>1 | n<<7
		carryOut = n&1 != 0
	case 2: // RL
		result = n<<1 | carryIn
	case 3: // RR
		result = n>>1 | carryIn<<7
		carryOut = n&1 != 0
	case 4: // SLA
		result = n << 1
	case 5: // SRA
		result = n&0x80 | n>>1
		carryOut = n&1 != 0
	case 6: // SWAP
		result = n<<4 | n>>4
		carryOut = false
	default: // SRL
		result = n >> 1
		carryOut = n&1 != 0
	}

	return result, makeFlags(result == 0, false, false, carryOut)
}

// TestBit tests bit b of n. C is not affected.
//
//	Z - bit b is zero, N - reset, H - set.
func TestBit(b, n, flags uint8) uint8 {
	return makeFlags(n&(1<<(b&7)) == 0, false, true, flags&FlagCarry != 0)
}

// accumulator performs the x=0, z=7 opcodes on A.
func (c *CPU) accumulator(y uint8) {
	a, f := c.reg.AF.Hi, c.reg.AF.Lo
	switch y {
	case 0, 1, 2, 3: // RLCA, RRCA, RLA, RRA
		a, f = Rotate(y, a, f)
		f &^= FlagZero
	case 4: // DAA
		a, f = DAA(a, f)
	case 5: // CPL
		a = ^a
		f |= FlagNegative | FlagHalfCarry
	case 6: // SCF
		f = f&FlagZero | FlagCarry
	case 7: // CCF
		f = f&(FlagZero|FlagCarry) ^ FlagCarry
	}
	c.reg.AF.Hi = a
	c.setF(f)
}

// alu applies the ALU operation selected by y to A and n.
func (c *CPU) alu(y uint8, n uint8) {
	a, f := ALU(ALUOp(y&7), c.reg.AF.Hi, n, c.reg.AF.Lo)
	c.reg.AF.Hi = a
	c.setF(f)
}
