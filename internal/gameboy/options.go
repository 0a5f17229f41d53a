package gameboy

import (
	"io"

	"github.com/thelolagemann/sm83/internal/boot"
	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance before its components are created.
type Opt func(gb *GameBoy)

func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithBootROM sets the boot ROM for the emulator. With a boot ROM
// the CPU starts at 0x0000 with zeroed registers, otherwise it
// starts at 0x0100 with the registers set to the values upon
// completion of the boot ROM.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		b, err := boot.LoadBootROM(rom)
		if err != nil {
			gb.optErr = err
			return
		}
		gb.bootROM = b
	}
}

// WithSerialOutput writes every byte sent over the serial port
// to w.
func WithSerialOutput(w io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.serialOut = w
	}
}

// WithTrace calls fn for every instruction fetched by the CPU.
func WithTrace(fn cpu.TraceFunc) Opt {
	return func(gb *GameBoy) {
		gb.cpuOpts = append(gb.cpuOpts, cpu.WithTrace(fn))
	}
}

// WithoutHaltBug disables emulation of the HALT bug.
func WithoutHaltBug() Opt {
	return func(gb *GameBoy) {
		gb.cpuOpts = append(gb.cpuOpts, cpu.WithHaltBug(false))
	}
}
