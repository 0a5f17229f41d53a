// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// types.TAC register.
package timer

import (
	"github.com/thelolagemann/sm83/internal/interrupts"
	"github.com/thelolagemann/sm83/internal/types"
)

// the divider bit watched for each TAC clock select. TIMA is
// incremented on its falling edge.
//
//	00 = bit 9 (every 1024 clocks)
//	01 = bit 3 (every 16 clocks)
//	10 = bit 5 (every 64 clocks)
//	11 = bit 7 (every 256 clocks)
var bits = [4]uint16{512, 8, 32, 128}

// Controller is a timer controller, clocked once per clock pulse.
//
// DIV is the upper byte of a 16-bit divider. TIMA is incremented on
// the falling edge of the selected divider bit ANDed with the enable
// bit, so resetting DIV or changing TAC can also increment TIMA, as
// on hardware.
type Controller struct {
	div  uint16
	tima uint8
	tma  uint8
	tac  uint8

	Enabled    bool
	currentBit uint16
	lastBit    bool

	// TIMA reads 0 for one machine cycle after an overflow, before
	// being reloaded from TMA.
	overflow           bool
	ticksSinceOverflow uint8

	irq *interrupts.Service
}

// NewController returns a new timer controller, registering its
// registers on the given hardware table.
func NewController(hw *types.HardwareRegisters, irq *interrupts.Service) *Controller {
	c := &Controller{
		irq:        irq,
		currentBit: bits[0],
	}
	hw.RegisterHardware(
		types.DIV,
		func(v uint8) {
			c.div = 0
			c.detectEdge()
		}, func() uint8 {
			return uint8(c.div >> 8)
		},
	)
	hw.RegisterHardware(
		types.TIMA,
		func(v uint8) {
			switch {
			case c.overflow && c.ticksSinceOverflow < 4:
				// a write before the reload cancels it
				c.tima = v
				c.overflow = false
				c.ticksSinceOverflow = 0
			case c.overflow:
				// writes to TIMA are ignored during the reload cycle
			default:
				c.tima = v
			}
		}, func() uint8 {
			return c.tima
		},
	)
	hw.RegisterHardware(
		types.TMA,
		func(v uint8) {
			c.tma = v
			// if you write to TMA during the reload cycle, TIMA
			// will be set to the new value of TMA
			if c.overflow && c.ticksSinceOverflow >= 4 {
				c.tima = v
			}
		}, func() uint8 {
			return c.tma
		},
	)
	hw.RegisterHardware(
		types.TAC,
		func(v uint8) {
			c.tac = v & 0x07
			c.currentBit = bits[v&0b11]
			c.Enabled = v&types.Bit2 == types.Bit2
			c.detectEdge()
		}, func() uint8 {
			return c.tac | 0b11111000
		},
	)

	return c
}

var _ types.Peripheral = (*Controller)(nil)

// Tick advances the timer by a single clock pulse.
func (c *Controller) Tick() {
	if c.overflow {
		c.ticksSinceOverflow++

		switch c.ticksSinceOverflow {
		case 4:
			c.tima = c.tma
			c.irq.Request(interrupts.TimerFlag)
		case 8:
			c.overflow = false
			c.ticksSinceOverflow = 0
		}
	}

	c.div++
	c.detectEdge()
}

// detectEdge increments TIMA on a falling edge of the selected
// divider bit.
func (c *Controller) detectEdge() {
	newBit := c.Enabled && c.div&c.currentBit != 0
	if c.lastBit && !newBit {
		c.tima++
		if c.tima == 0 {
			c.overflow = true
			c.ticksSinceOverflow = 0
		}
	}
	c.lastBit = newBit
}

// Reset clears the divider and the timer registers.
func (c *Controller) Reset() {
	*c = Controller{
		irq:        c.irq,
		currentBit: bits[0],
	}
}

var _ types.Stater = (*Controller)(nil)

// Load loads the state of the controller.
//
// The values are loaded in the following order:
//   - div (uint16)
//   - tima, tma, tac (uint8)
//   - lastBit, overflow (bool)
//   - ticksSinceOverflow (uint8)
func (c *Controller) Load(s *types.State) {
	c.div = s.Read16()
	c.tima = s.Read8()
	c.tma = s.Read8()
	c.tac = s.Read8() & 0x07
	c.currentBit = bits[c.tac&0b11]
	c.Enabled = c.tac&types.Bit2 == types.Bit2

	c.lastBit = s.ReadBool()
	c.overflow = s.ReadBool()
	c.ticksSinceOverflow = s.Read8()
}

// Save saves the state of the controller.
func (c *Controller) Save(s *types.State) {
	s.Write16(c.div)
	s.Write8(c.tima)
	s.Write8(c.tma)
	s.Write8(c.tac)

	s.WriteBool(c.lastBit)
	s.WriteBool(c.overflow)
	s.Write8(c.ticksSinceOverflow)
}
