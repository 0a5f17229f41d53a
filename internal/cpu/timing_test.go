package cpu

import (
	"testing"
)

// instructionTimings holds the machine cycles taken by each opcode, with
// conditional branches taken and INC/DEC rr not crossing a byte boundary.
// 0 marks opcodes that are tested elsewhere (CB prefix, illegal opcodes).
var instructionTimings = [256]int{
	1, 3, 2, 3, 1, 1, 2, 1, 5, 2, 2, 3, 1, 1, 2, 1, // 0x00
	1, 3, 2, 3, 1, 1, 2, 1, 3, 2, 2, 3, 1, 1, 2, 1, // 0x10
	3, 3, 2, 3, 1, 1, 2, 1, 3, 2, 2, 3, 1, 1, 2, 1, // 0x20
	3, 3, 2, 3, 3, 3, 3, 1, 3, 2, 2, 3, 1, 1, 2, 1, // 0x30
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x40
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x50
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x60
	2, 2, 2, 2, 2, 2, 1, 2, 1, 1, 1, 1, 1, 1, 2, 1, // 0x70
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x80
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x90
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0xA0
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0xB0
	5, 3, 4, 4, 6, 4, 2, 4, 5, 4, 4, 0, 6, 6, 2, 4, // 0xC0
	5, 3, 4, 0, 6, 4, 2, 4, 5, 4, 4, 0, 6, 0, 2, 4, // 0xD0
	3, 3, 2, 0, 0, 4, 2, 4, 4, 1, 4, 0, 0, 0, 2, 4, // 0xE0
	3, 3, 2, 1, 0, 4, 2, 4, 3, 2, 4, 1, 0, 0, 2, 4, // 0xF0
}

// notTakenTimings holds the cycles taken by conditional branches when
// the condition does not hold.
var notTakenTimings = map[uint8]int{
	0x20: 2, 0x28: 2, 0x30: 2, 0x38: 2, // JR cc
	0xC2: 3, 0xCA: 3, 0xD2: 3, 0xDA: 3, // JP cc
	0xC4: 3, 0xCC: 3, 0xD4: 3, 0xDC: 3, // CALL cc
	0xC0: 2, 0xC8: 2, 0xD0: 2, 0xD8: 2, // RET cc
}

// flagsFor returns an F value for which condition cc evaluates to want.
func flagsFor(cc uint8, want bool) uint8 {
	for _, f := range []uint8{0x00, FlagZero, FlagCarry, FlagZero | FlagCarry} {
		if condition(cc, f) == want {
			return f
		}
	}
	panic("unreachable")
}

func timingCPU(opcode uint8, taken bool) *CPU {
	c, _ := newTestCPU(opcode)
	if isConditionalBranch(opcode) {
		c.setF(flagsFor(branchCondition(opcode), taken))
	}
	return c
}

func isConditionalBranch(opcode uint8) bool {
	_, ok := notTakenTimings[opcode]
	return ok
}

func TestInstructionTimings(t *testing.T) {
	for i, want := range instructionTimings {
		if want == 0 {
			continue
		}
		opcode := uint8(i)
		c := timingCPU(opcode, true)
		if got := runInstruction(t, c); got != want {
			t.Errorf("0x%02X (%s): expected %d cycles, got %d", opcode, Classify(opcode), want, got)
		}
	}
}

func TestInstructionTimingsNotTaken(t *testing.T) {
	for opcode, want := range notTakenTimings {
		c := timingCPU(opcode, false)
		if got := runInstruction(t, c); got != want {
			t.Errorf("0x%02X (%s): expected %d cycles, got %d", opcode, Classify(opcode), want, got)
		}
	}
}

func TestIncDec16Timings(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		value  uint16
		want   uint16
		cycles int
	}{
		{"INC BC", 0x03, 0x1234, 0x1235, 3},
		{"INC BC carry", 0x03, 0x12FF, 0x1300, 4},
		{"INC DE wrap", 0x13, 0xFFFF, 0x0000, 4},
		{"DEC BC", 0x0B, 0x1234, 0x1233, 3},
		{"DEC BC borrow", 0x0B, 0x1200, 0x11FF, 4},
		{"DEC HL wrap", 0x2B, 0x0000, 0xFFFF, 4},
		{"INC SP", 0x33, 0xCFFE, 0xCFFF, 3},
		{"DEC SP borrow", 0x3B, 0xD000, 0xCFFF, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU(tt.opcode)
			rr := c.rp(Decode(tt.opcode).P)
			rr.SetUint16(tt.value)
			flags := c.reg.AF.Lo

			if got := runInstruction(t, c); got != tt.cycles {
				t.Errorf("expected %d cycles, got %d", tt.cycles, got)
			}
			if rr.Uint16() != tt.want {
				t.Errorf("expected 0x%04X, got 0x%04X", tt.want, rr.Uint16())
			}
			if c.reg.AF.Lo != flags {
				t.Errorf("flags changed: 0x%02X -> 0x%02X", flags, c.reg.AF.Lo)
			}
		})
	}
}

func TestCBTimings(t *testing.T) {
	for i := 0; i < 256; i++ {
		cb := uint8(i)
		f := Decode(cb)
		want := 2
		if f.Z == operandHL {
			want = 4
			if CBOperation(f.X) == CBBit {
				want = 3
			}
		}

		c, _ := newTestCPU(0xCB, cb)
		if got := runInstruction(t, c); got != want {
			t.Errorf("CB 0x%02X: expected %d cycles, got %d", cb, want, got)
		}
		if c.PC() != 0x0102 {
			t.Errorf("CB 0x%02X: expected PC 0x0102, got 0x%04X", cb, c.PC())
		}
	}
}

// Memory accesses land on the cycle they would on hardware, so a
// peripheral ticked between cycles sees the intermediate state.
func TestBusAccessCycles(t *testing.T) {
	t.Run("INC (HL)", func(t *testing.T) {
		c, b := newTestCPU(0x34)
		c.reg.HL.SetUint16(0xC000)
		b.mem[0xC000] = 0x41

		runCycles(t, c, 2)
		if b.mem[0xC000] != 0x41 || len(b.writes()) != 0 {
			t.Fatalf("expected no write after cycle 2, got %v", b.writes())
		}
		runCycles(t, c, 1)
		if b.mem[0xC000] != 0x42 {
			t.Errorf("expected 0x42, got 0x%02X", b.mem[0xC000])
		}
		if c.Step() != 0 {
			t.Errorf("expected instruction to complete, at step %d", c.Step())
		}
	})
	t.Run("PUSH BC", func(t *testing.T) {
		c, b := newTestCPU(0xC5)
		c.reg.BC.SetUint16(0xBEEF)

		runCycles(t, c, 2)
		if len(b.writes()) != 0 {
			t.Fatalf("expected no writes after cycle 2, got %v", b.writes())
		}
		runCycles(t, c, 1)
		if w := b.writes(); len(w) != 1 || w[0].address != 0xFFFD || w[0].value != 0xBE {
			t.Fatalf("expected high byte at 0xFFFD on cycle 3, got %v", w)
		}
		runCycles(t, c, 1)
		if w := b.writes(); len(w) != 2 || w[1].address != 0xFFFC || w[1].value != 0xEF {
			t.Fatalf("expected low byte at 0xFFFC on cycle 4, got %v", w)
		}
	})
	t.Run("LD (u16), SP", func(t *testing.T) {
		c, b := newTestCPU(0x08, 0x00, 0xC1)
		c.reg.SP.SetUint16(0xABCD)

		runCycles(t, c, 4)
		if b.mem[0xC100] != 0xCD || b.mem[0xC101] != 0x00 {
			t.Fatalf("expected only the low byte written on cycle 4")
		}
		runCycles(t, c, 1)
		if b.mem[0xC101] != 0xAB {
			t.Errorf("expected 0xAB at 0xC101, got 0x%02X", b.mem[0xC101])
		}
	})
}
