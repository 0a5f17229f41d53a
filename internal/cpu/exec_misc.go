package cpu

// executeBlock0 advances the x=0 opcodes (0x00 - 0x3F).
func (c *CPU) executeBlock0(f Fields) status {
	s := &c.state
	switch s.family {
	case FamilyNOP:
		return complete
	case FamilyStop:
		// STOP is followed by a padding byte, which is skipped.
		c.reg.PC.postInc()
		c.stopped = true
		return complete
	case FamilyAccumulator:
		c.accumulator(f.Y)
		return complete

	case FamilyStoreSP: // LD (u16), SP
		switch s.step {
		case 1:
		case 2:
			s.lo = c.readImmediate()
		case 3:
			s.hi = c.readImmediate()
		case 4:
			c.bus.Write(s.address(), c.reg.SP.Lo)
		case 5:
			c.bus.Write(s.address()+1, c.reg.SP.Hi)
			return complete
		default:
			return unhandled
		}
		return pending

	case FamilyJumpRelative: // JR i8 / JR cc, i8
		switch s.step {
		case 1:
		case 2:
			s.lo = c.readImmediate()
			if !isUnconditional(s.opcode) && !condition(branchCondition(s.opcode), c.reg.AF.Lo) {
				return complete
			}
		case 3:
			c.reg.PC.SetUint16(c.reg.PC.Uint16() + uint16(int16(int8(s.lo))))
			return complete
		default:
			return unhandled
		}
		return pending

	case FamilyLoad16: // LD rr, u16
		rr := c.rp(f.P)
		switch s.step {
		case 1:
		case 2:
			rr.Lo = c.readImmediate()
		case 3:
			rr.Hi = c.readImmediate()
			return complete
		default:
			return unhandled
		}
		return pending

	case FamilyAddHL: // ADD HL, rr
		switch s.step {
		case 1:
		case 2:
			hl, flags := AddHL(c.reg.HL.Uint16(), c.rp(f.P).Uint16(), c.reg.AF.Lo)
			c.reg.HL.SetUint16(hl)
			c.setF(flags)
			return complete
		default:
			return unhandled
		}
		return pending

	case FamilyStoreIndirect: // LD (rr), A
		switch s.step {
		case 1:
		case 2:
			c.bus.Write(c.indirectAddress(f.P), c.reg.AF.Hi)
			return complete
		default:
			return unhandled
		}
		return pending

	case FamilyLoadIndirect: // LD A, (rr)
		switch s.step {
		case 1:
		case 2:
			c.reg.AF.Hi = c.bus.Read(c.indirectAddress(f.P))
			return complete
		default:
			return unhandled
		}
		return pending

	case FamilyIncDec16: // INC rr / DEC rr
		// the pair is updated a byte at a time, and the high byte
		// only costs a cycle when the low byte wrapped around.
		rr := c.rp(f.P)
		switch s.step {
		case 1, 2:
		case 3:
			if f.Q == 0 {
				rr.Lo++
				if rr.Lo != 0x00 {
					return complete
				}
			} else {
				rr.Lo--
				if rr.Lo != 0xFF {
					return complete
				}
			}
		case 4:
			if f.Q == 0 {
				rr.Hi++
			} else {
				rr.Hi--
			}
			return complete
		default:
			return unhandled
		}
		return pending

	case FamilyInc8, FamilyDec8: // INC r / DEC r
		op := Inc8
		if s.family == FamilyDec8 {
			op = Dec8
		}
		if r := c.reg8(f.Y); r != nil {
			v, flags := op(*r, c.reg.AF.Lo)
			*r = v
			c.setF(flags)
			return complete
		}
		switch s.step {
		case 1:
		case 2:
			s.lo = c.bus.Read(c.reg.HL.Uint16())
		case 3:
			v, flags := op(s.lo, c.reg.AF.Lo)
			c.bus.Write(c.reg.HL.Uint16(), v)
			c.setF(flags)
			return complete
		default:
			return unhandled
		}
		return pending

	case FamilyLoad8Immediate: // LD r, u8
		switch s.step {
		case 1:
		case 2:
			s.lo = c.readImmediate()
			if r := c.reg8(f.Y); r != nil {
				*r = s.lo
				return complete
			}
		case 3:
			c.bus.Write(c.reg.HL.Uint16(), s.lo)
			return complete
		default:
			return unhandled
		}
		return pending
	}

	return unhandled
}

// indirectAddress returns the address used by LD (rr), A and
// LD A, (rr): BC, DE, HL+ or HL-.
func (c *CPU) indirectAddress(p uint8) uint16 {
	switch p & 3 {
	case 0:
		return c.reg.BC.Uint16()
	case 1:
		return c.reg.DE.Uint16()
	case 2:
		return c.reg.HL.postInc()
	default:
		hl := c.reg.HL.Uint16()
		c.reg.HL.SetUint16(hl - 1)
		return hl
	}
}
