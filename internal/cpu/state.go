package cpu

import "github.com/thelolagemann/sm83/internal/types"

var _ types.Stater = (*CPU)(nil)

// Save implements the types.Stater interface.
//
// The values are saved in the following order:
//   - AF, BC, DE, HL, SP, PC (uint16)
//   - opcode, CB opcode, family, step, lo, hi (uint8)
//   - IME, EI pending, halted, stopped, locked, just serviced, halt bug (bool)
func (c *CPU) Save(s *types.State) {
	for _, rr := range c.pairs() {
		s.Write16(rr.Uint16())
	}
	s.Write8(c.state.opcode)
	s.Write8(c.state.cbOpcode)
	s.Write8(uint8(c.state.family))
	s.Write8(c.state.step)
	s.Write8(c.state.lo)
	s.Write8(c.state.hi)
	s.WriteBool(c.ime)
	s.WriteBool(c.eiPending)
	s.WriteBool(c.halted)
	s.WriteBool(c.stopped)
	s.WriteBool(c.locked)
	s.WriteBool(c.justServiced)
	s.WriteBool(c.haltBug)
}

// Load implements the types.Stater interface, reading the values in
// the order written by Save.
func (c *CPU) Load(s *types.State) {
	for _, rr := range c.pairs() {
		rr.SetUint16(s.Read16())
	}
	c.setF(c.reg.AF.Lo)
	c.state.opcode = s.Read8()
	c.state.cbOpcode = s.Read8()
	c.state.family = Family(s.Read8())
	c.state.step = s.Read8()
	c.state.lo = s.Read8()
	c.state.hi = s.Read8()
	c.ime = s.ReadBool()
	c.eiPending = s.ReadBool()
	c.halted = s.ReadBool()
	c.stopped = s.ReadBool()
	c.locked = s.ReadBool()
	c.justServiced = s.ReadBool()
	c.haltBug = s.ReadBool()
	c.err = nil
}

func (c *CPU) pairs() []*RegisterPair {
	return []*RegisterPair{&c.reg.AF, &c.reg.BC, &c.reg.DE, &c.reg.HL, &c.reg.SP, &c.reg.PC}
}
