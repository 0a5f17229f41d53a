// Package cpu implements the Sharp SM83 core found in the Game Boy.
//
// The core advances exactly one machine cycle (4 clock pulses) per call
// to Cycle. Instructions are not atomic: each one is a small state
// machine keyed by the cycle within the instruction, so every bus access
// happens on the same machine cycle as it would on hardware, and a
// peripheral ticked between calls observes the partially executed
// instruction exactly as the real bus would expose it.
package cpu

import (
	"github.com/thelolagemann/sm83/internal/types"
)

const (
	// ClockSpeed is the clock speed of the CPU, in clock pulses per second.
	ClockSpeed = 4194304
	// TicksPerCycle is the number of clock pulses in one machine cycle.
	TicksPerCycle = 4
)

// Bus is the address space as seen by the core. All addressing
// quirks (banking, echo RAM, unmapped regions) are the Bus's own
// responsibility; the core never validates addresses.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// InterruptLatch exposes the interrupt enable and request registers.
// Masks are 5 bits wide: vblank, lcd-stat, timer, serial, joypad.
type InterruptLatch interface {
	EnabledMask() uint8
	RequestedMask() uint8
	ClearRequest(flag uint8)
}

// Trace describes an instruction at the moment it was fetched.
type Trace struct {
	PC        uint16 // address of the opcode
	Opcode    uint8
	Family    Family
	Registers Registers // register file before execution
}

// TraceFunc observes every decoded instruction boundary.
type TraceFunc func(Trace)

// Option configures a CPU.
type Option func(c *CPU)

// WithTrace attaches a trace hook, called once per fetched instruction.
// Hooks attached by repeated options are called in order.
func WithTrace(fn TraceFunc) Option {
	return func(c *CPU) {
		if prev := c.trace; prev != nil {
			c.trace = func(t Trace) {
				prev(t)
				fn(t)
			}
			return
		}
		c.trace = fn
	}
}

// WithBootROM resets the CPU to its power-on state (zeroed registers,
// PC=0x0000) instead of the state left by the boot ROM.
func WithBootROM() Option {
	return func(c *CPU) {
		c.bootROM = true
	}
}

// WithHaltBug toggles emulation of the HALT bug: when HALT executes
// with interrupts disabled and an interrupt already pending, the CPU
// does not halt and the following opcode byte is read twice.
func WithHaltBug(enabled bool) Option {
	return func(c *CPU) {
		c.haltBugEnabled = enabled
	}
}

// execution is the resumable state of the instruction in flight.
type execution struct {
	opcode   uint8  // current opcode byte
	cbOpcode uint8  // second byte of a CB-prefixed instruction
	family   Family // family of opcode, or familyInterrupt
	step     uint8  // machine cycle within the instruction, 0 at a boundary
	lo, hi   uint8  // latched operand bytes
}

// address returns the 16-bit value formed by the latched bytes.
func (e *execution) address() uint16 {
	return uint16(e.hi)<<8 | uint16(e.lo)
}

// status is the outcome of advancing an instruction by one cycle.
type status uint8

const (
	pending   status = iota // more cycles remain
	complete                // instruction finished on this cycle
	unhandled               // no handler covers this opcode and cycle
)

// CPU represents the SM83 core. It owns the register file and the
// execution state; the Bus and InterruptLatch are owned by the host.
type CPU struct {
	reg   Registers
	state execution

	// registerPointers maps 8-bit operand indices to registers,
	// with nil in the (HL) slot.
	registerPointers [8]*Register

	bus Bus
	irq InterruptLatch

	ime       bool // global interrupt enable
	eiPending bool // EI executed, IME is set at the next boundary

	halted       bool
	stopped      bool
	locked       bool // illegal opcode executed
	justServiced bool // dispatch completed, skip polling once

	haltBugEnabled bool
	haltBug        bool // next fetch does not advance PC

	bootROM bool
	trace   TraceFunc
	err     error

	cycles uint64
}

// New creates a new CPU attached to the given bus and interrupt latch,
// and resets it.
func New(bus Bus, irq InterruptLatch, opts ...Option) *CPU {
	c := &CPU{
		bus:            bus,
		irq:            irq,
		haltBugEnabled: true,
	}
	c.registerPointers = [8]*Register{
		&c.reg.BC.Hi, &c.reg.BC.Lo,
		&c.reg.DE.Hi, &c.reg.DE.Lo,
		&c.reg.HL.Hi, &c.reg.HL.Lo,
		nil, &c.reg.AF.Hi,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Reset()

	return c
}

var _ types.Resettable = (*CPU)(nil)

// Reset initializes the registers and clears the execution state. With
// no boot ROM the registers hold the values the DMG boot ROM leaves
// behind, and execution starts at 0x0100.
func (c *CPU) Reset() {
	if c.bootROM {
		c.reg = Registers{}
	} else {
		c.reg = postBootRegisters
	}
	c.state = execution{}
	c.ime, c.eiPending = false, false
	c.halted, c.stopped, c.locked = false, false, false
	c.justServiced, c.haltBug = false, false
	c.err = nil
	c.cycles = 0
}

// Cycle advances the CPU by exactly one machine cycle. It performs at
// most one bus access and never blocks.
//
// An error is only returned for an opcode and cycle combination that
// no handler covers, which indicates a defect in the decoder. Once
// returned, the same error is returned by every later call.
func (c *CPU) Cycle() error {
	if c.err != nil {
		return c.err
	}
	if c.locked {
		return nil
	}

	if c.state.step == 0 {
		serviced := c.justServiced
		c.justServiced = false
		if serviced || !c.pollInterrupts() {
			if c.halted || c.stopped {
				return nil
			}
			if c.eiPending {
				c.ime, c.eiPending = true, false
			}
			c.fetch()
		}
	}

	c.state.step++
	c.cycles++

	var s status
	if c.state.family == familyInterrupt {
		s = c.dispatch()
	} else {
		s = c.execute()
	}

	switch s {
	case complete:
		c.state.step = 0
	case unhandled:
		c.err = &UnimplementedError{
			Opcode:   c.state.opcode,
			CBOpcode: c.state.cbOpcode,
			Family:   c.state.family,
			Step:     c.state.step,
		}
		return c.err
	}

	return nil
}

// fetch reads the opcode at PC and decodes its family.
func (c *CPU) fetch() {
	pc := c.reg.PC.Uint16()
	c.state = execution{
		opcode: c.bus.Read(pc),
	}
	if c.haltBug {
		c.haltBug = false
	} else {
		c.reg.PC.SetUint16(pc + 1)
	}
	c.state.family = Classify(c.state.opcode)

	if c.trace != nil {
		regs := c.reg
		regs.PC.SetUint16(pc)
		c.trace(Trace{
			PC:        pc,
			Opcode:    c.state.opcode,
			Family:    c.state.family,
			Registers: regs,
		})
	}
}

// execute advances the current instruction by one cycle, dispatching
// on the x field of the opcode.
func (c *CPU) execute() status {
	f := Decode(c.state.opcode)
	switch f.X {
	case 0:
		return c.executeBlock0(f)
	case 1:
		return c.executeBlock1(f)
	case 2:
		return c.executeBlock2(f)
	default:
		return c.executeBlock3(f)
	}
}

// readImmediate reads the byte at PC and advances PC.
func (c *CPU) readImmediate() uint8 {
	return c.bus.Read(c.reg.PC.postInc())
}

// push decrements SP and writes value to the new top of the stack.
func (c *CPU) push(value uint8) {
	c.bus.Write(c.reg.SP.preDec(), value)
}

// pop reads the top of the stack and increments SP.
func (c *CPU) pop() uint8 {
	return c.bus.Read(c.reg.SP.postInc())
}

// Registers returns a copy of the register file.
func (c *CPU) Registers() Registers {
	return c.reg
}

// PC returns the program counter.
func (c *CPU) PC() uint16 {
	return c.reg.PC.Uint16()
}

// SP returns the stack pointer.
func (c *CPU) SP() uint16 {
	return c.reg.SP.Uint16()
}

// Halted returns true while the CPU is suspended by HALT.
func (c *CPU) Halted() bool {
	return c.halted
}

// Stopped returns true while the CPU is suspended by STOP.
func (c *CPU) Stopped() bool {
	return c.stopped
}

// Locked returns true once an illegal opcode has hung the CPU.
func (c *CPU) Locked() bool {
	return c.locked
}

// IME returns the global interrupt enable flag.
func (c *CPU) IME() bool {
	return c.ime
}

// Step returns the machine cycle within the current instruction,
// or 0 at an instruction boundary.
func (c *CPU) Step() uint8 {
	return c.state.step
}

// Opcode returns the opcode of the instruction in flight.
func (c *CPU) Opcode() uint8 {
	return c.state.opcode
}

// Cycles returns the number of machine cycles executed since reset,
// excluding cycles spent halted, stopped or locked.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}
