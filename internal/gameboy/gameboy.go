// Package gameboy ties the SM83 core to the rest of a headless DMG:
// the MMU, cartridge, timer, serial port, joypad and interrupt latch,
// all driven from a single clock.
package gameboy

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/sm83/internal/boot"
	"github.com/thelolagemann/sm83/internal/cartridge"
	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/interrupts"
	"github.com/thelolagemann/sm83/internal/joypad"
	"github.com/thelolagemann/sm83/internal/mmu"
	"github.com/thelolagemann/sm83/internal/serial"
	"github.com/thelolagemann/sm83/internal/timer"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed // 4.194304 MHz
	// TicksPerFrame is the number of clock pulses per frame.
	TicksPerFrame = 70224
)

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	Interrupts *interrupts.Service
	Timer      *timer.Controller
	Serial     *serial.Controller
	Joypad     *joypad.State

	log.Logger

	registers   *types.HardwareRegisters
	peripherals []types.Peripheral

	// set by options, before the components are created
	bootROM   *boot.ROM
	cpuOpts   []cpu.Option
	serialOut io.Writer
	optErr    error

	ticks          uint64
	reportedLocked bool
}

// New returns a new GameBoy running the given ROM.
func New(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Logger:    log.NewNullLogger(),
		registers: &types.HardwareRegisters{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.optErr != nil {
		return nil, g.optErr
	}

	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, fmt.Errorf("gameboy: %w", err)
	}
	g.Infof("cartridge: %s", cart.Header())
	if want := cartridge.Checksum(rom); cart.Header().HeaderChecksum != want {
		g.Debugf("cartridge: header checksum 0x%02X, expected 0x%02X", cart.Header().HeaderChecksum, want)
	}

	g.Interrupts = interrupts.NewService(g.registers)
	g.Timer = timer.NewController(g.registers, g.Interrupts)
	g.Serial = serial.NewController(g.registers, g.Interrupts)
	if g.serialOut != nil {
		g.Serial.Attach(serial.NewWriterDevice(g.serialOut))
	}
	g.Joypad = joypad.New(g.registers, g.Interrupts)
	g.MMU = mmu.NewMMU(cart, g.registers, g.Logger)

	if g.bootROM != nil {
		g.Infof("boot rom: %s (%s)", g.bootROM.Model(), g.bootROM.Checksum())
		g.MMU.SetBootROM(g.bootROM)
		g.cpuOpts = append(g.cpuOpts, cpu.WithBootROM())
	}
	g.CPU = cpu.New(g.MMU, g.Interrupts, g.cpuOpts...)

	g.peripherals = []types.Peripheral{g.Timer}

	return g, nil
}

// Tick advances the Game Boy by a single clock pulse. The CPU runs a
// machine cycle on every 4th pulse, and the peripherals on every
// pulse.
func (g *GameBoy) Tick() error {
	if g.ticks%cpu.TicksPerCycle == 0 {
		if err := g.CPU.Cycle(); err != nil {
			return fmt.Errorf("gameboy: pc 0x%04X: %w", g.CPU.PC(), err)
		}
	}
	for _, p := range g.peripherals {
		p.Tick()
	}
	g.ticks++

	return nil
}

// Step advances the Game Boy by a single machine cycle.
func (g *GameBoy) Step() error {
	for i := 0; i < cpu.TicksPerCycle; i++ {
		if err := g.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// Press presses a button on the joypad.
func (g *GameBoy) Press(button joypad.Button) {
	g.Joypad.Press(button)
}

// Release releases a button on the joypad.
func (g *GameBoy) Release(button joypad.Button) {
	g.Joypad.Release(button)
}

// RunFrame advances the Game Boy by one frame worth of clock pulses.
func (g *GameBoy) RunFrame() error {
	for i := 0; i < TicksPerFrame; i++ {
		if err := g.Tick(); err != nil {
			return err
		}
	}

	if g.CPU.Locked() && !g.reportedLocked {
		g.reportedLocked = true
		g.Errorf("cpu locked by illegal opcode 0x%02X at 0x%04X", g.CPU.Opcode(), g.CPU.PC()-1)
	}
	return nil
}

// Ticks returns the number of clock pulses since the last reset.
func (g *GameBoy) Ticks() uint64 {
	return g.ticks
}

// Reset resets every component, re-mapping the boot ROM if there
// is one.
func (g *GameBoy) Reset() {
	g.Interrupts.Reset()
	g.Timer.Reset()
	g.Serial.Reset()
	g.Joypad.Reset()
	g.MMU.Reset()
	g.CPU.Reset()
	g.ticks = 0
	g.reportedLocked = false
}

var _ types.Stater = (*GameBoy)(nil)

// Save implements the types.Stater interface.
//
// The values are saved in the following order:
//   - ticks (uint16, uint16, uint16, uint16)
//   - CPU, Interrupts, Timer, Serial, Joypad, MMU
func (g *GameBoy) Save(s *types.State) {
	for i := 0; i < 4; i++ {
		s.Write16(uint16(g.ticks >> (16 * i)))
	}
	g.CPU.Save(s)
	g.Interrupts.Save(s)
	g.Timer.Save(s)
	g.Serial.Save(s)
	g.Joypad.Save(s)
	g.MMU.Save(s)
}

// Load implements the types.Stater interface.
func (g *GameBoy) Load(s *types.State) {
	g.ticks = 0
	for i := 0; i < 4; i++ {
		g.ticks |= uint64(s.Read16()) << (16 * i)
	}
	g.CPU.Load(s)
	g.Interrupts.Load(s)
	g.Timer.Load(s)
	g.Serial.Load(s)
	g.Joypad.Load(s)
	g.MMU.Load(s)
}

// Digest returns a hash of the complete machine state, used to
// compare runs.
func (g *GameBoy) Digest() uint64 {
	s := types.NewState()
	g.Save(s)
	return xxhash.Sum64(s.Bytes())
}
