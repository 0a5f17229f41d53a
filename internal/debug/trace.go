// Package debug contains instrumentation that hangs off the CPU trace
// hook: a line based instruction log and an opcode histogram.
package debug

import (
	"bufio"
	"fmt"
	"io"

	"github.com/thelolagemann/sm83/internal/cpu"
)

// FormatTrace renders tr as a single log line, in the format used by
// gameboy-doctor:
//
//	A:01 F:B0 B:00 C:13 D:00 E:D8 H:01 L:4D SP:FFFE PC:0100 PCMEM:00,C3,13,02
//
// PCMEM is read through bus, so it reflects the bus at the time of the call.
func FormatTrace(tr cpu.Trace, bus cpu.Bus) string {
	r := tr.Registers
	return fmt.Sprintf(
		"A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X PC:%04X PCMEM:%02X,%02X,%02X,%02X",
		r.A(), r.F(), r.B(), r.C(), r.D(), r.E(), r.H(), r.L(),
		r.SP.Uint16(), tr.PC,
		bus.Read(tr.PC), bus.Read(tr.PC+1), bus.Read(tr.PC+2), bus.Read(tr.PC+3),
	)
}

// TraceLogger writes a FormatTrace line for every traced instruction.
// The bus is attached after construction, as the trace hook has to
// exist before the bus it reads from.
type TraceLogger struct {
	w   *bufio.Writer
	bus cpu.Bus
	err error
}

// NewTraceLogger returns a TraceLogger writing to w.
func NewTraceLogger(w io.Writer) *TraceLogger {
	return &TraceLogger{w: bufio.NewWriter(w)}
}

// SetBus sets the bus used to read PCMEM.
func (l *TraceLogger) SetBus(bus cpu.Bus) {
	l.bus = bus
}

// Trace implements cpu.TraceFunc. Instructions traced before a bus is
// attached are dropped.
func (l *TraceLogger) Trace(tr cpu.Trace) {
	if l.bus == nil || l.err != nil {
		return
	}
	if _, err := l.w.WriteString(FormatTrace(tr, l.bus) + "\n"); err != nil {
		l.err = err
	}
}

// Flush writes any buffered lines, returning the first error
// encountered while logging.
func (l *TraceLogger) Flush() error {
	if l.err != nil {
		return l.err
	}
	return l.w.Flush()
}
