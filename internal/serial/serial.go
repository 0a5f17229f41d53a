// Package serial provides the Game Boy serial port. Transfers using
// the internal clock complete as soon as they are started, which is
// all test ROMs need to report their results.
package serial

import (
	"github.com/thelolagemann/sm83/internal/interrupts"
	"github.com/thelolagemann/sm83/internal/types"
)

// Controller is the serial controller. It is responsible for sending
// and receiving data to and from the attached Device.
//
// During a transfer the leftmost bit of data is sent to the attached
// device and shifted out, while the incoming bit is shifted in:
//
//	Before : data = o7 o6 o5 o4 o3 o2 o1 o0
//	Bit 1  : data = o6 o5 o4 o3 o2 o1 o0 i0
//	...
//	Bit 8  : data = i0 i1 i2 i3 i4 i5 i6 i7
type Controller struct {
	data          uint8 // types.SB
	InternalClock bool  // if true, this controller is the master.
	Transferring  bool  // types.SC bit 7

	AttachedDevice Device // the device that is attached to this controller.

	irq *interrupts.Service
}

// NewController creates a new Controller, registering SB and SC on
// the given hardware table.
//
// By default, the Controller is attached to a nullDevice, which acts
// as if there is no device attached. Use Controller.Attach to attach
// a device.
func NewController(hw *types.HardwareRegisters, irq *interrupts.Service) *Controller {
	c := &Controller{
		AttachedDevice: nullDevice{},
		irq:            irq,
	}
	hw.RegisterHardware(
		types.SB,
		func(v uint8) {
			c.data = v
		}, func() uint8 {
			return c.data
		},
	)
	hw.RegisterHardware(
		types.SC,
		func(v uint8) {
			c.InternalClock = v&types.Bit0 == types.Bit0
			c.Transferring = v&types.Bit7 == types.Bit7

			// only the master drives the clock, so a transfer
			// on the external clock never completes
			if c.Transferring && c.InternalClock {
				c.transfer()
			}
		}, func() uint8 {
			v := uint8(0x7E) // bits 1-6 are always set
			if c.Transferring {
				v |= types.Bit7
			}
			if c.InternalClock {
				v |= types.Bit0
			}
			return v
		},
	)
	return c
}

// Attach attaches a Device to the Controller.
func (c *Controller) Attach(d Device) {
	c.AttachedDevice = d
}

// transfer exchanges all 8 bits with the attached device, then
// requests the serial interrupt.
func (c *Controller) transfer() {
	for i := 0; i < 8; i++ {
		bit := c.AttachedDevice.Send()
		c.AttachedDevice.Receive(c.data&types.Bit7 == types.Bit7)

		c.data <<= 1
		if bit {
			c.data |= 1
		}
	}

	c.Transferring = false
	c.irq.Request(interrupts.SerialFlag)
}

// Reset clears the serial registers.
func (c *Controller) Reset() {
	c.data = 0
	c.InternalClock, c.Transferring = false, false
}

var _ types.Stater = (*Controller)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - data (uint8)
//   - InternalClock (bool)
//   - Transferring (bool)
func (c *Controller) Load(s *types.State) {
	c.data = s.Read8()
	c.InternalClock = s.ReadBool()
	c.Transferring = s.ReadBool()
}

// Save implements the types.Stater interface.
func (c *Controller) Save(s *types.State) {
	s.Write8(c.data)
	s.WriteBool(c.InternalClock)
	s.WriteBool(c.Transferring)
}
