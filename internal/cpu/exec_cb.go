package cpu

// executeCB advances a CB-prefixed instruction. The second opcode
// byte is fetched on cycle 2 and decoded like a regular opcode:
//
//	00 000 000
//	^^ ^^^ ^^^
//	op bit reg
//
// Register operands finish on cycle 2. Memory operands are read on
// cycle 3 and written back on cycle 4, except for BIT which only
// reads.
func (c *CPU) executeCB() status {
	s := &c.state
	if s.step == 1 {
		return pending
	}
	if s.step == 2 {
		s.cbOpcode = c.readImmediate()
	}

	f := Decode(s.cbOpcode)
	op := CBOperation(f.X)
	if r := c.reg8(f.Z); r != nil {
		if s.step != 2 {
			return unhandled
		}
		if v, write := c.bitOperation(op, f.Y, *r); write {
			*r = v
		}
		return complete
	}

	switch s.step {
	case 2:
		return pending
	case 3:
		s.lo = c.bus.Read(c.reg.HL.Uint16())
		if op == CBBit {
			c.bitOperation(op, f.Y, s.lo)
			return complete
		}
		return pending
	case 4:
		v, _ := c.bitOperation(op, f.Y, s.lo)
		c.bus.Write(c.reg.HL.Uint16(), v)
		return complete
	}

	return unhandled
}

// bitOperation applies a CB operation to n, updating the flags. It
// returns the new value and whether it should be written back.
func (c *CPU) bitOperation(op CBOperation, y, n uint8) (uint8, bool) {
	switch op {
	case CBRotate:
		v, flags := Rotate(y, n, c.reg.AF.Lo)
		c.setF(flags)
		return v, true
	case CBBit:
		c.setF(TestBit(y, n, c.reg.AF.Lo))
		return n, false
	case CBRes:
		return n &^ (1 << y), true
	default: // CBSet
		return n | 1<<y, true
	}
}
