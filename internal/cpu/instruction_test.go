package cpu

import (
	"testing"
)

func TestInstruction_IncA(t *testing.T) {
	for _, carry := range []bool{false, true} {
		c, _ := newTestCPU(0x3C)
		c.reg.AF.Hi = 0xFF
		c.setF(FlagNegative)
		if carry {
			c.setF(FlagNegative | FlagCarry)
		}

		if cycles := runInstruction(t, c); cycles != 1 {
			t.Errorf("expected 1 cycle, got %d", cycles)
		}
		if c.reg.AF.Hi != 0x00 {
			t.Errorf("expected A 0x00, got 0x%02X", c.reg.AF.Hi)
		}
		if !c.isFlagSet(FlagZero) || c.isFlagSet(FlagNegative) || !c.isFlagSet(FlagHalfCarry) {
			t.Errorf("expected Z=1 N=0 H=1, got flags 0x%02X", c.reg.AF.Lo)
		}
		if c.isFlagSet(FlagCarry) != carry {
			t.Errorf("expected carry to stay %v", carry)
		}
	}
}

func TestInstruction_Call(t *testing.T) {
	c, b := newTestCPU(0xCD, 0x34, 0x12)

	if cycles := runInstruction(t, c); cycles != 6 {
		t.Errorf("expected 6 cycles, got %d", cycles)
	}
	if c.PC() != 0x1234 {
		t.Errorf("expected PC 0x1234, got 0x%04X", c.PC())
	}
	if c.SP() != 0xFFFC {
		t.Errorf("expected SP 0xFFFC, got 0x%04X", c.SP())
	}
	w := b.writes()
	if len(w) != 2 {
		t.Fatalf("expected 2 writes, got %v", w)
	}
	if w[0] != (busAccess{write: true, address: 0xFFFD, value: 0x01}) {
		t.Errorf("expected return high byte first, got %+v", w[0])
	}
	if w[1] != (busAccess{write: true, address: 0xFFFC, value: 0x03}) {
		t.Errorf("expected return low byte second, got %+v", w[1])
	}
}

func TestInstruction_CallRet(t *testing.T) {
	// CALL 0x0200; HALT / 0x0200: LD A, 0x42; RET
	c, b := newTestCPU(0xCD, 0x00, 0x02, 0x76)
	copy(b.mem[0x0200:], []uint8{0x3E, 0x42, 0xC9})

	for i := 0; i < 3; i++ {
		runInstruction(t, c)
	}
	if c.PC() != 0x0103 || c.SP() != 0xFFFE {
		t.Errorf("expected PC 0x0103 SP 0xFFFE, got 0x%04X 0x%04X", c.PC(), c.SP())
	}
	if c.reg.AF.Hi != 0x42 {
		t.Errorf("expected A 0x42, got 0x%02X", c.reg.AF.Hi)
	}
}

func TestInstruction_RST(t *testing.T) {
	for y := uint8(0); y < 8; y++ {
		c, b := newTestCPU(0xC7 | y<<3)
		runInstruction(t, c)
		if want := uint16(y) * 8; c.PC() != want {
			t.Errorf("RST %02XH: expected PC 0x%04X, got 0x%04X", y*8, want, c.PC())
		}
		if b.mem[0xFFFC] != 0x01 || b.mem[0xFFFD] != 0x01 {
			t.Errorf("RST %02XH: expected 0x0101 pushed", y*8)
		}
	}
}

func TestInstruction_JumpRelative(t *testing.T) {
	tests := []struct {
		offset uint8
		want   uint16
	}{
		{0x05, 0x0107},
		{0xFE, 0x0100}, // jr -2 loops on itself
		{0x80, 0x0082},
	}
	for _, tt := range tests {
		c, _ := newTestCPU(0x18, tt.offset)
		runInstruction(t, c)
		if c.PC() != tt.want {
			t.Errorf("JR %d: expected 0x%04X, got 0x%04X", int8(tt.offset), tt.want, c.PC())
		}
	}
}

func TestInstruction_PopAFMasksFlags(t *testing.T) {
	c, b := newTestCPU(0xF1)
	c.reg.SP.SetUint16(0xC000)
	b.mem[0xC000] = 0xFF
	b.mem[0xC001] = 0x12

	runInstruction(t, c)
	if c.reg.AF.Uint16() != 0x12F0 {
		t.Errorf("expected AF 0x12F0, got 0x%04X", c.reg.AF.Uint16())
	}
	if c.SP() != 0xC002 {
		t.Errorf("expected SP 0xC002, got 0x%04X", c.SP())
	}
}

func TestInstruction_LoadIndirect(t *testing.T) {
	// LD (HL+), A; LD (HL-), A; LD A, (HL-)
	c, b := newTestCPU(0x22, 0x32, 0x3A)
	c.reg.HL.SetUint16(0xC000)
	c.reg.AF.Hi = 0x99

	runInstruction(t, c)
	if b.mem[0xC000] != 0x99 || c.reg.HL.Uint16() != 0xC001 {
		t.Errorf("LD (HL+), A: got (0xC000)=0x%02X HL=0x%04X", b.mem[0xC000], c.reg.HL.Uint16())
	}
	runInstruction(t, c)
	if b.mem[0xC001] != 0x99 || c.reg.HL.Uint16() != 0xC000 {
		t.Errorf("LD (HL-), A: got (0xC001)=0x%02X HL=0x%04X", b.mem[0xC001], c.reg.HL.Uint16())
	}
	c.reg.AF.Hi = 0
	runInstruction(t, c)
	if c.reg.AF.Hi != 0x99 || c.reg.HL.Uint16() != 0xBFFF {
		t.Errorf("LD A, (HL-): got A=0x%02X HL=0x%04X", c.reg.AF.Hi, c.reg.HL.Uint16())
	}
}

func TestInstruction_LoadHigh(t *testing.T) {
	// LDH (0x80), A; LD C, 0x81; LD A, (C)
	c, b := newTestCPU(0xE0, 0x80, 0x0E, 0x81, 0xF2)
	c.reg.AF.Hi = 0x5A
	b.mem[0xFF81] = 0xA5

	runInstruction(t, c)
	if b.mem[0xFF80] != 0x5A {
		t.Errorf("expected 0x5A at 0xFF80, got 0x%02X", b.mem[0xFF80])
	}
	runInstruction(t, c)
	runInstruction(t, c)
	if c.reg.AF.Hi != 0xA5 {
		t.Errorf("expected A 0xA5, got 0x%02X", c.reg.AF.Hi)
	}
}

func TestInstruction_LoadHLSP(t *testing.T) {
	c, _ := newTestCPU(0xF8, 0xFF)
	c.reg.SP.SetUint16(0x0001)
	c.setF(FlagZero | FlagNegative)

	runInstruction(t, c)
	if c.reg.HL.Uint16() != 0x0000 {
		t.Errorf("expected HL 0x0000, got 0x%04X", c.reg.HL.Uint16())
	}
	if c.reg.AF.Lo != FlagHalfCarry|FlagCarry {
		t.Errorf("expected flags 0x30, got 0x%02X", c.reg.AF.Lo)
	}
}

func TestInstruction_CB(t *testing.T) {
	t.Run("BIT 7, H", func(t *testing.T) {
		c, _ := newTestCPU(0xCB, 0x7C)
		c.reg.HL.SetUint16(0x7F00)
		c.setF(FlagCarry)
		runInstruction(t, c)
		if c.reg.AF.Lo != FlagZero|FlagHalfCarry|FlagCarry {
			t.Errorf("expected flags 0xB0, got 0x%02X", c.reg.AF.Lo)
		}
	})
	t.Run("SET 3, (HL)", func(t *testing.T) {
		c, b := newTestCPU(0xCB, 0xDE)
		c.reg.HL.SetUint16(0xC000)
		runInstruction(t, c)
		if b.mem[0xC000] != 0x08 {
			t.Errorf("expected 0x08, got 0x%02X", b.mem[0xC000])
		}
	})
	t.Run("BIT 0, (HL) does not write", func(t *testing.T) {
		c, b := newTestCPU(0xCB, 0x46)
		c.reg.HL.SetUint16(0xC000)
		runInstruction(t, c)
		if len(b.writes()) != 0 {
			t.Errorf("expected no writes, got %v", b.writes())
		}
	})
	t.Run("SWAP A", func(t *testing.T) {
		c, _ := newTestCPU(0xCB, 0x37)
		c.reg.AF.Hi = 0x12
		runInstruction(t, c)
		if c.reg.AF.Hi != 0x21 {
			t.Errorf("expected 0x21, got 0x%02X", c.reg.AF.Hi)
		}
	})
}

func TestInstruction_Stop(t *testing.T) {
	c, b := newTestCPU(0x10, 0x00, 0x3C)
	runInstruction(t, c)
	if !c.Stopped() || c.PC() != 0x0102 {
		t.Fatalf("expected stopped at 0x0102, got %v 0x%04X", c.Stopped(), c.PC())
	}

	// only the joypad wakes the CPU from STOP
	b.latch.enable = 0x1F
	b.latch.request = TimerInterrupt
	runCycles(t, c, 8)
	if !c.Stopped() || c.PC() != 0x0102 {
		t.Fatalf("expected timer to leave the CPU stopped")
	}
	b.latch.request |= JoypadInterrupt
	runInstruction(t, c)
	if c.Stopped() || c.reg.AF.Hi != 0x02 {
		t.Errorf("expected INC A after waking, got stopped=%v A=0x%02X", c.Stopped(), c.reg.AF.Hi)
	}
}

func TestTrace(t *testing.T) {
	var traces []Trace
	b := &testBus{latch: &testLatch{}}
	copy(b.mem[0x0100:], []uint8{0x00, 0x3E, 0x10, 0xCB, 0x37})
	c := New(b, b.latch, WithTrace(func(tr Trace) {
		traces = append(traces, tr)
	}))

	for i := 0; i < 3; i++ {
		runInstruction(t, c)
	}

	want := []struct {
		pc     uint16
		opcode uint8
		family Family
	}{
		{0x0100, 0x00, FamilyNOP},
		{0x0101, 0x3E, FamilyLoad8Immediate},
		{0x0103, 0xCB, FamilyPrefixCB},
	}
	if len(traces) != len(want) {
		t.Fatalf("expected %d traces, got %d", len(want), len(traces))
	}
	for i, w := range want {
		tr := traces[i]
		if tr.PC != w.pc || tr.Opcode != w.opcode || tr.Family != w.family {
			t.Errorf("trace %d: expected %04X %02X %s, got %04X %02X %s",
				i, w.pc, w.opcode, w.family, tr.PC, tr.Opcode, tr.Family)
		}
		if tr.Registers.PC.Uint16() != w.pc {
			t.Errorf("trace %d: expected register PC 0x%04X, got 0x%04X", i, w.pc, tr.Registers.PC.Uint16())
		}
	}
	if traces[2].Registers.A() != 0x10 {
		t.Errorf("expected A 0x10 before SWAP, got 0x%02X", traces[2].Registers.A())
	}
}

func TestReset(t *testing.T) {
	b := &testBus{latch: &testLatch{}}
	c := New(b, b.latch)
	if c.Registers() != postBootRegisters {
		t.Errorf("expected post-boot registers, got %+v", c.Registers())
	}

	c = New(b, b.latch, WithBootROM())
	if c.Registers() != (Registers{}) || c.PC() != 0 {
		t.Errorf("expected zeroed registers, got %+v", c.Registers())
	}
}
