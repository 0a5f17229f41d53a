package cpu

import (
	"testing"
)

// testBus is a flat 64 KiB address space. IF and IE are routed to
// the attached testLatch so that stack pushes can reach them.
type testBus struct {
	mem   [0x10000]uint8
	latch *testLatch
	log   []busAccess
}

type busAccess struct {
	write   bool
	address uint16
	value   uint8
}

func (b *testBus) Read(address uint16) uint8 {
	var v uint8
	switch address {
	case 0xFF0F:
		v = b.latch.request | 0xE0
	case 0xFFFF:
		v = b.latch.enable
	default:
		v = b.mem[address]
	}
	b.log = append(b.log, busAccess{address: address, value: v})
	return v
}

func (b *testBus) Write(address uint16, value uint8) {
	switch address {
	case 0xFF0F:
		b.latch.request = value & 0x1F
	case 0xFFFF:
		b.latch.enable = value
	default:
		b.mem[address] = value
	}
	b.log = append(b.log, busAccess{write: true, address: address, value: value})
}

// writes returns the logged writes.
func (b *testBus) writes() []busAccess {
	var w []busAccess
	for _, a := range b.log {
		if a.write {
			w = append(w, a)
		}
	}
	return w
}

type testLatch struct {
	enable, request uint8
}

func (l *testLatch) EnabledMask() uint8   { return l.enable & 0x1F }
func (l *testLatch) RequestedMask() uint8 { return l.request & 0x1F }
func (l *testLatch) ClearRequest(flag uint8) {
	l.request &^= flag
}

// newTestCPU returns a CPU in its post-boot state, with program
// loaded at 0x0100.
func newTestCPU(program ...uint8) (*CPU, *testBus) {
	b := &testBus{latch: &testLatch{}}
	copy(b.mem[0x0100:], program)
	return New(b, b.latch), b
}

// runInstruction runs the CPU until the instruction in flight (or
// the next one) completes, returning the number of machine cycles.
func runInstruction(t *testing.T, c *CPU) int {
	t.Helper()
	cycles := 0
	for {
		if err := c.Cycle(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cycles++
		if c.Step() == 0 {
			return cycles
		}
		if cycles > 16 {
			t.Fatalf("opcode 0x%02X did not complete after %d cycles", c.Opcode(), cycles)
		}
	}
}

// runCycles calls Cycle n times.
func runCycles(t *testing.T, c *CPU, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := c.Cycle(); err != nil {
			t.Fatalf("unexpected error on cycle %d: %v", i, err)
		}
	}
}
