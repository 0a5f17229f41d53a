package interrupts

import (
	"github.com/thelolagemann/sm83/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// requested every time the LCD enters vertical blank.
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1), requested
	// by the LCD STAT register when its conditions are met.
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2),
	// which is requested when the timer overflows,
	// (types.TIMA > 0xFF).
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3),
	// which is requested when a serial transfer is
	// completed.
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt Flag (bit 4),
	// which is requested when any of types.P1 bits 0-3
	// go from high to low.
	JoypadFlag = types.Bit4

	flagMask = 0x1F
)

// Service is the interrupt latch, shared by the peripherals that
// request interrupts and the CPU that services them.
//
// When an interrupt is requested, the corresponding bit in the
// Flag register is set. When an interrupt is enabled, the
// corresponding bit in the Enable register is set. The CPU
// acknowledges an interrupt by clearing its Flag bit once it has
// committed to the interrupt vector.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)
}

// NewService returns a new Service, registering IF and IE on the
// given hardware table.
func NewService(hw *types.HardwareRegisters) *Service {
	s := &Service{}
	hw.RegisterHardware(
		types.IF,
		func(v uint8) {
			s.Flag = v & flagMask // only the first 5 bits are used
		}, func() uint8 {
			return s.Flag | 0xE0 // the upper 3 bits are always set
		},
	)
	hw.RegisterHardware(
		types.IE,
		func(v uint8) {
			s.Enable = v
		}, func() uint8 {
			return s.Enable
		},
	)

	return s
}

// Request requests the specified interrupt, by setting the
// corresponding bit in the Flag register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag & flagMask
}

// ClearRequest acknowledges the specified interrupt, by clearing
// the corresponding bit in the Flag register.
func (s *Service) ClearRequest(flag uint8) {
	s.Flag &^= flag
}

// EnabledMask returns the enabled interrupt sources.
func (s *Service) EnabledMask() uint8 {
	return s.Enable & flagMask
}

// RequestedMask returns the requested interrupt sources.
func (s *Service) RequestedMask() uint8 {
	return s.Flag & flagMask
}

// HasInterrupts returns true if there are any interrupts that are
// requested and enabled.
func (s *Service) HasInterrupts() bool {
	return s.Enable&s.Flag&flagMask != 0
}

// Reset clears both registers.
func (s *Service) Reset() {
	s.Flag, s.Enable = 0, 0
}

var _ types.Stater = (*Service)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - Flag (uint8)
//   - Enable (uint8)
func (s *Service) Load(st *types.State) {
	s.Flag = st.Read8() & flagMask
	s.Enable = st.Read8()
}

// Save implements the types.Stater interface.
//
// The values are saved in the following order:
//   - Flag (uint8)
//   - Enable (uint8)
func (s *Service) Save(st *types.State) {
	st.Write8(s.Flag)
	st.Write8(s.Enable)
}
