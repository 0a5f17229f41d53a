package cpu

import (
	"testing"
)

func TestDecode(t *testing.T) {
	for i := 0; i < 256; i++ {
		f := Decode(uint8(i))
		if got := f.X<<6 | f.Y<<3 | f.Z; got != uint8(i) {
			t.Fatalf("0x%02X: fields reassemble to 0x%02X", i, got)
		}
		if f.P != f.Y>>1 || f.Q != f.Y&1 {
			t.Fatalf("0x%02X: p/q do not match y: %+v", i, f)
		}
	}
}

func TestClassify(t *testing.T) {
	illegal := map[uint8]bool{
		0xD3: true, 0xDB: true, 0xDD: true, 0xE3: true, 0xE4: true, 0xEB: true,
		0xEC: true, 0xED: true, 0xF4: true, 0xFC: true, 0xFD: true,
	}
	for i := 0; i < 256; i++ {
		opcode := uint8(i)
		family := Classify(opcode)
		if family == FamilyInvalid {
			t.Errorf("0x%02X: no family", opcode)
		}
		if (family == FamilyIllegal) != illegal[opcode] {
			t.Errorf("0x%02X: unexpected family %s", opcode, family)
		}
		if (family == FamilyHalt) != (opcode == 0x76) {
			t.Errorf("0x%02X: unexpected family %s", opcode, family)
		}
	}

	tests := map[uint8]Family{
		0x00: FamilyNOP,
		0x08: FamilyStoreSP,
		0x10: FamilyStop,
		0x18: FamilyJumpRelative,
		0x38: FamilyJumpRelative,
		0x21: FamilyLoad16,
		0x39: FamilyAddHL,
		0x22: FamilyStoreIndirect,
		0x3A: FamilyLoadIndirect,
		0x3B: FamilyIncDec16,
		0x34: FamilyInc8,
		0x3D: FamilyDec8,
		0x36: FamilyLoad8Immediate,
		0x27: FamilyAccumulator,
		0x7E: FamilyLoad8,
		0xBE: FamilyALU,
		0xD8: FamilyRetConditional,
		0xE0: FamilyStoreHigh,
		0xE8: FamilyAddSP,
		0xF0: FamilyLoadHigh,
		0xF8: FamilyLoadHLSP,
		0xF1: FamilyPop,
		0xC9: FamilyRet,
		0xD9: FamilyReti,
		0xE9: FamilyJumpHL,
		0xF9: FamilyLoadSPHL,
		0xC3: FamilyJump,
		0xDA: FamilyJump,
		0xE2: FamilyStoreHighC,
		0xEA: FamilyStoreAbsolute,
		0xF2: FamilyLoadHighC,
		0xFA: FamilyLoadAbsolute,
		0xCB: FamilyPrefixCB,
		0xF3: FamilyDI,
		0xFB: FamilyEI,
		0xCD: FamilyCall,
		0xC4: FamilyCall,
		0xF5: FamilyPush,
		0xFE: FamilyALUImmediate,
		0xFF: FamilyRST,
	}
	for opcode, want := range tests {
		if got := Classify(opcode); got != want {
			t.Errorf("0x%02X: expected %s, got %s", opcode, want, got)
		}
	}
}
