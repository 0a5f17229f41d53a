package cpu

// executeBlock3 advances the x=3 opcodes (0xC0 - 0xFF).
func (c *CPU) executeBlock3(f Fields) status {
	s := &c.state
	switch s.family {
	case FamilyJumpHL: // JP HL
		c.reg.PC = c.reg.HL
		return complete
	case FamilyDI:
		c.ime, c.eiPending = false, false
		return complete
	case FamilyEI:
		c.eiPending = true
		return complete
	case FamilyIllegal:
		c.locked = true
		return complete
	case FamilyPrefixCB:
		return c.executeCB()

	case FamilyRetConditional: // RET cc
		switch s.step {
		case 1:
		case 2:
			if !condition(f.Y, c.reg.AF.Lo) {
				return complete
			}
		case 3:
			s.lo = c.pop()
		case 4:
			s.hi = c.pop()
		case 5:
			c.reg.PC.SetUint16(s.address())
			return complete
		default:
			return unhandled
		}
		return pending

	case FamilyRet, FamilyReti: // RET / RETI
		switch s.step {
		case 1:
		case 2:
			s.lo = c.pop()
		case 3:
			s.hi = c.pop()
		case 4:
			c.reg.PC.SetUint16(s.address())
			if s.family == FamilyReti {
				c.ime = true
			}
			return complete
		default:
			return unhandled
		}
		return pending

	case FamilyPop: // POP rr
		rr := c.rp2(f.P)
		switch s.step {
		case 1:
		case 2:
			rr.Lo = c.pop()
			if rr == &c.reg.AF {
				c.setF(rr.Lo)
			}
		case 3:
			rr.Hi = c.pop()
			return complete
		default:
			return unhandled
		}
		return pending

	case FamilyPush: // PUSH rr
		rr := c.rp2(f.P)
		switch s.step {
		case 1, 2:
		case 3:
			c.push(rr.Hi)
		case 4:
			c.push(rr.Lo)
			return complete
		default:
			return unhandled
		}
		return pending

	case FamilyLoadSPHL: // LD SP, HL
		switch s.step {
		case 1:
		case 2:
			c.reg.SP = c.reg.HL
			return complete
		default:
			return unhandled
		}
		return pending

	case FamilyJump: // JP u16 / JP cc, u16
		switch s.step {
		case 1:
		case 2:
			s.lo = c.readImmediate()
		case 3:
			s.hi = c.readImmediate()
			if !isUnconditional(s.opcode) && !condition(branchCondition(s.opcode), c.reg.AF.Lo) {
				return complete
			}
		case 4:
			c.reg.PC.SetUint16(s.address())
			return complete
		default:
			return unhandled
		}
		return pending

	case FamilyCall: // CALL u16 / CALL cc, u16
		switch s.step {
		case 1:
		case 2:
			s.lo = c.readImmediate()
		case 3:
			s.hi = c.readImmediate()
			if !isUnconditional(s.opcode) && !condition(branchCondition(s.opcode), c.reg.AF.Lo) {
				return complete
			}
		case 4:
		case 5:
			c.push(c.reg.PC.Hi)
		case 6:
			c.push(c.reg.PC.Lo)
			c.reg.PC.SetUint16(s.address())
			return complete
		default:
			return unhandled
		}
		return pending

	case FamilyRST: // RST n
		switch s.step {
		case 1, 2:
		case 3:
			c.push(c.reg.PC.Hi)
		case 4:
			c.push(c.reg.PC.Lo)
			c.reg.PC.SetUint16(uint16(f.Y) * 8)
			return complete
		default:
			return unhandled
		}
		return pending

	case FamilyALUImmediate: // ALU A, u8
		switch s.step {
		case 1:
		case 2:
			c.alu(f.Y, c.readImmediate())
			return complete
		default:
			return unhandled
		}
		return pending

	case FamilyStoreHigh, FamilyLoadHigh: // LDH (u8), A / LDH A, (u8)
		switch s.step {
		case 1:
		case 2:
			s.lo = c.readImmediate()
		case 3:
			c.transferHigh(s.family == FamilyLoadHigh, s.lo)
			return complete
		default:
			return unhandled
		}
		return pending

	case FamilyStoreHighC, FamilyLoadHighC: // LD (FF00+C), A / LD A, (FF00+C)
		switch s.step {
		case 1:
		case 2:
			c.transferHigh(s.family == FamilyLoadHighC, c.reg.BC.Lo)
			return complete
		default:
			return unhandled
		}
		return pending

	case FamilyStoreAbsolute, FamilyLoadAbsolute: // LD (u16), A / LD A, (u16)
		switch s.step {
		case 1:
		case 2:
			s.lo = c.readImmediate()
		case 3:
			s.hi = c.readImmediate()
		case 4:
			if s.family == FamilyLoadAbsolute {
				c.reg.AF.Hi = c.bus.Read(s.address())
			} else {
				c.bus.Write(s.address(), c.reg.AF.Hi)
			}
			return complete
		default:
			return unhandled
		}
		return pending

	case FamilyAddSP: // ADD SP, i8
		switch s.step {
		case 1, 3:
		case 2:
			s.lo = c.readImmediate()
		case 4:
			sp, flags := AddSP(c.reg.SP.Uint16(), s.lo)
			c.reg.SP.SetUint16(sp)
			c.setF(flags)
			return complete
		default:
			return unhandled
		}
		return pending

	case FamilyLoadHLSP: // LD HL, SP+i8
		switch s.step {
		case 1:
		case 2:
			s.lo = c.readImmediate()
		case 3:
			hl, flags := AddSP(c.reg.SP.Uint16(), s.lo)
			c.reg.HL.SetUint16(hl)
			c.setF(flags)
			return complete
		default:
			return unhandled
		}
		return pending
	}

	return unhandled
}

// transferHigh moves A to or from the I/O page at 0xFF00+offset.
func (c *CPU) transferHigh(load bool, offset uint8) {
	address := 0xFF00 | uint16(offset)
	if load {
		c.reg.AF.Hi = c.bus.Read(address)
	} else {
		c.bus.Write(address, c.reg.AF.Hi)
	}
}
