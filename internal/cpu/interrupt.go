package cpu

import "github.com/thelolagemann/sm83/internal/types"

// interrupt sources, in priority order (lowest bit wins).
const (
	VBlankInterrupt  = types.Bit0
	LCDInterrupt     = types.Bit1
	TimerInterrupt   = types.Bit2
	SerialInterrupt  = types.Bit3
	JoypadInterrupt  = types.Bit4
	interruptSources = 5
)

// Vectors holds the jump target of each interrupt source, indexed
// by bit number.
var Vectors = [interruptSources]uint16{0x0040, 0x0048, 0x0050, 0x0058, 0x0060}

// pendingInterrupts returns the sources that are both requested
// and enabled.
func (c *CPU) pendingInterrupts() uint8 {
	return c.irq.EnabledMask() & c.irq.RequestedMask() & 0x1F
}

// pollInterrupts runs at an instruction boundary. Any pending source
// wakes the CPU from HALT, even with IME clear; STOP only wakes for
// the joypad. It returns true if servicing begins on this cycle.
func (c *CPU) pollInterrupts() bool {
	p := c.pendingInterrupts()
	if c.stopped {
		if p&JoypadInterrupt == 0 {
			return false
		}
		c.stopped = false
	}
	if p == 0 {
		return false
	}
	c.halted = false
	if !c.ime {
		return false
	}

	c.state = execution{
		family: familyInterrupt,
	}
	return true
}

// dispatch advances the 5 cycle interrupt service sequence. The
// source is only chosen after PC has been pushed, so a push that
// overwrites IE can change, or cancel, the interrupt. A cancelled
// dispatch jumps to 0x0000.
func (c *CPU) dispatch() status {
	s := &c.state
	switch s.step {
	case 1:
		c.ime, c.eiPending = false, false
	case 2:
		c.push(c.reg.PC.Hi)
	case 3:
		c.push(c.reg.PC.Lo)
	case 4:
		s.lo, s.hi = 0, 0
		p := c.pendingInterrupts()
		for i := uint8(0); i < interruptSources; i++ {
			if flag := uint8(1) << i; p&flag != 0 {
				c.irq.ClearRequest(flag)
				s.lo = uint8(Vectors[i])
				break
			}
		}
	case 5:
		c.reg.PC.SetUint16(s.address())
		c.justServiced = true
		return complete
	default:
		return unhandled
	}
	return pending
}
