package interrupts

import (
	"testing"

	"github.com/thelolagemann/sm83/internal/types"
)

func TestService_Registers(t *testing.T) {
	hw := &types.HardwareRegisters{}
	s := NewService(hw)

	hw.Write(types.IF, 0xFF)
	if s.Flag != 0x1F {
		t.Errorf("expected IF to keep only 5 bits, got 0x%02X", s.Flag)
	}
	s.ClearRequest(TimerFlag)
	if got := hw.Read(types.IF); got != 0xFB {
		t.Errorf("expected IF to read 0xFB, got 0x%02X", got)
	}

	hw.Write(types.IE, 0xFF)
	if got := hw.Read(types.IE); got != 0xFF {
		t.Errorf("expected IE to read back 0xFF, got 0x%02X", got)
	}
	if s.EnabledMask() != 0x1F {
		t.Errorf("expected enabled mask 0x1F, got 0x%02X", s.EnabledMask())
	}
}

func TestService_Requests(t *testing.T) {
	s := NewService(&types.HardwareRegisters{})
	if s.HasInterrupts() {
		t.Fatal("expected no interrupts")
	}

	s.Request(SerialFlag)
	s.Request(VBlankFlag)
	if s.RequestedMask() != SerialFlag|VBlankFlag {
		t.Errorf("expected 0x09, got 0x%02X", s.RequestedMask())
	}
	if s.HasInterrupts() {
		t.Error("expected requests without enables to not be pending")
	}

	s.Enable = SerialFlag
	if !s.HasInterrupts() {
		t.Error("expected the serial interrupt to be pending")
	}
	s.ClearRequest(SerialFlag)
	if s.HasInterrupts() || s.RequestedMask() != VBlankFlag {
		t.Errorf("expected only vblank to remain, got 0x%02X", s.RequestedMask())
	}
}

func TestService_State(t *testing.T) {
	s := NewService(&types.HardwareRegisters{})
	s.Request(JoypadFlag | LCDFlag)
	s.Enable = 0xE4

	st := types.NewState()
	s.Save(st)

	restored := NewService(&types.HardwareRegisters{})
	restored.Load(types.StateFromBytes(st.Bytes()))
	if *restored != *s {
		t.Errorf("expected %+v, got %+v", *s, *restored)
	}
}
