// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys, and is the only source able to wake
// the CPU from STOP.
package joypad

import (
	"github.com/thelolagemann/sm83/internal/interrupts"
	"github.com/thelolagemann/sm83/internal/types"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// Pressed holds a bit per Button, set while it is held down.
	// The lower 4 bits are the action buttons, the upper 4
	// bits the direction buttons.
	Pressed uint8
	// selection holds bits 4 and 5 of types.P1.
	selection uint8

	irq *interrupts.Service
}

// New returns a new joypad state, registering types.P1 on the
// given hardware table.
func New(hw *types.HardwareRegisters, irq *interrupts.Service) *State {
	s := &State{irq: irq}
	hw.RegisterHardware(
		types.P1,
		func(v uint8) {
			s.selection = v & 0x30
		},
		s.read,
	)
	s.Reset()

	return s
}

func (s *State) read() uint8 {
	return 0xC0 | s.selection | ^s.lines()&0x0F
}

// lines returns the input lines pulled low by the current selection.
func (s *State) lines() uint8 {
	var l uint8
	if s.selection&types.Bit4 == 0 {
		l |= s.Pressed >> 4
	}
	if s.selection&types.Bit5 == 0 {
		l |= s.Pressed & 0x0F
	}
	return l
}

// Press presses a button, requesting the joypad interrupt when it
// pulls an input line low.
func (s *State) Press(button Button) {
	before := s.lines()
	s.Pressed |= types.Bit(button)
	if s.lines()&^before != 0 {
		s.irq.Request(interrupts.JoypadFlag)
	}
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.Pressed &^= types.Bit(button)
}

// Reset releases every button and deselects both button groups.
func (s *State) Reset() {
	s.Pressed = 0
	s.selection = 0x30
}

var _ types.Stater = (*State)(nil)

// Load implements the types.Stater interface.
func (s *State) Load(st *types.State) {
	s.Pressed = st.Read8()
	s.selection = st.Read8() & 0x30
}

// Save implements the types.Stater interface.
func (s *State) Save(st *types.State) {
	st.Write8(s.Pressed)
	st.Write8(s.selection)
}
