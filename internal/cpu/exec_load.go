package cpu

// executeBlock1 advances the x=1 opcodes (0x40 - 0x7F): LD r, r
// and HALT, which takes the place of LD (HL), (HL).
func (c *CPU) executeBlock1(f Fields) status {
	if c.state.family == FamilyHalt {
		c.halt()
		return complete
	}

	dst, src := c.reg8(f.Y), c.reg8(f.Z)
	if dst != nil && src != nil {
		*dst = *src
		return complete
	}

	switch c.state.step {
	case 1:
		return pending
	case 2:
		if src == nil {
			*dst = c.bus.Read(c.reg.HL.Uint16())
		} else {
			c.bus.Write(c.reg.HL.Uint16(), *src)
		}
		return complete
	}

	return unhandled
}

// executeBlock2 advances the x=2 opcodes (0x80 - 0xBF): ALU A, r.
func (c *CPU) executeBlock2(f Fields) status {
	if src := c.reg8(f.Z); src != nil {
		c.alu(f.Y, *src)
		return complete
	}

	switch c.state.step {
	case 1:
		return pending
	case 2:
		c.alu(f.Y, c.bus.Read(c.reg.HL.Uint16()))
		return complete
	}

	return unhandled
}

// halt suspends instruction fetch until an interrupt is pending.
func (c *CPU) halt() {
	if !c.ime && c.haltBugEnabled && c.pendingInterrupts() != 0 {
		c.haltBug = true
		return
	}
	c.halted = true
}
