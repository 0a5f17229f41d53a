package cpu

// Fields are the bit-fields of an opcode, used to select the
// instruction family and its operands.
//
//	7 6 5 4 3 2 1 0
//	x x y y y z z z
//	    p p q
type Fields struct {
	X, Y, Z, P, Q uint8
}

// Decode splits an opcode into its bit-fields. The same
// decomposition applies to the second byte of 0xCB-prefixed
// instructions.
func Decode(opcode uint8) Fields {
	y := opcode >> 3 & 7
	return Fields{
		X: opcode >> 6,
		Y: y,
		Z: opcode & 7,
		P: y >> 1,
		Q: y & 1,
	}
}

// Family identifies a group of opcodes sharing the same
// per-cycle behaviour.
type Family uint8

const (
	FamilyInvalid Family = iota

	// x = 0
	FamilyNOP
	FamilyStoreSP         // LD (u16), SP
	FamilyStop            // STOP
	FamilyJumpRelative    // JR i8 / JR cc, i8
	FamilyLoad16          // LD rr, u16
	FamilyAddHL           // ADD HL, rr
	FamilyStoreIndirect   // LD (BC/DE/HL+/HL-), A
	FamilyLoadIndirect    // LD A, (BC/DE/HL+/HL-)
	FamilyIncDec16        // INC rr / DEC rr
	FamilyInc8            // INC r
	FamilyDec8            // DEC r
	FamilyLoad8Immediate  // LD r, u8
	FamilyAccumulator     // RLCA, RRCA, RLA, RRA, DAA, CPL, SCF, CCF

	// x = 1
	FamilyLoad8 // LD r, r
	FamilyHalt  // HALT

	// x = 2
	FamilyALU // ALU A, r

	// x = 3
	FamilyRetConditional // RET cc
	FamilyStoreHigh      // LD (FF00+u8), A
	FamilyAddSP          // ADD SP, i8
	FamilyLoadHigh       // LD A, (FF00+u8)
	FamilyLoadHLSP       // LD HL, SP+i8
	FamilyPop            // POP rr
	FamilyRet            // RET
	FamilyReti           // RETI
	FamilyJumpHL         // JP HL
	FamilyLoadSPHL       // LD SP, HL
	FamilyJump           // JP u16 / JP cc, u16
	FamilyStoreHighC     // LD (FF00+C), A
	FamilyStoreAbsolute  // LD (u16), A
	FamilyLoadHighC      // LD A, (FF00+C)
	FamilyLoadAbsolute   // LD A, (u16)
	FamilyPrefixCB       // CB-prefixed bit operations
	FamilyDI             // DI
	FamilyEI             // EI
	FamilyCall           // CALL u16 / CALL cc, u16
	FamilyPush           // PUSH rr
	FamilyALUImmediate   // ALU A, u8
	FamilyRST            // RST n
	FamilyIllegal        // encodings that lock up the CPU

	// familyInterrupt is the dispatch sequence that runs
	// between instructions. It is never produced by Classify.
	familyInterrupt
)

var familyNames = [...]string{
	FamilyInvalid:        "invalid",
	FamilyNOP:            "NOP",
	FamilyStoreSP:        "LD (u16), SP",
	FamilyStop:           "STOP",
	FamilyJumpRelative:   "JR",
	FamilyLoad16:         "LD rr, u16",
	FamilyAddHL:          "ADD HL, rr",
	FamilyStoreIndirect:  "LD (rr), A",
	FamilyLoadIndirect:   "LD A, (rr)",
	FamilyIncDec16:       "INC/DEC rr",
	FamilyInc8:           "INC r",
	FamilyDec8:           "DEC r",
	FamilyLoad8Immediate: "LD r, u8",
	FamilyAccumulator:    "accumulator",
	FamilyLoad8:          "LD r, r",
	FamilyHalt:           "HALT",
	FamilyALU:            "ALU A, r",
	FamilyRetConditional: "RET cc",
	FamilyStoreHigh:      "LD (FF00+u8), A",
	FamilyAddSP:          "ADD SP, i8",
	FamilyLoadHigh:       "LD A, (FF00+u8)",
	FamilyLoadHLSP:       "LD HL, SP+i8",
	FamilyPop:            "POP rr",
	FamilyRet:            "RET",
	FamilyReti:           "RETI",
	FamilyJumpHL:         "JP HL",
	FamilyLoadSPHL:       "LD SP, HL",
	FamilyJump:           "JP",
	FamilyStoreHighC:     "LD (FF00+C), A",
	FamilyStoreAbsolute:  "LD (u16), A",
	FamilyLoadHighC:      "LD A, (FF00+C)",
	FamilyLoadAbsolute:   "LD A, (u16)",
	FamilyPrefixCB:       "PREFIX CB",
	FamilyDI:             "DI",
	FamilyEI:             "EI",
	FamilyCall:           "CALL",
	FamilyPush:           "PUSH rr",
	FamilyALUImmediate:   "ALU A, u8",
	FamilyRST:            "RST",
	FamilyIllegal:        "illegal",
	familyInterrupt:      "interrupt",
}

func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return "unknown"
}

// Classify maps an opcode to its instruction family. It is a
// total function: every opcode belongs to exactly one family.
func Classify(opcode uint8) Family {
	f := Decode(opcode)
	switch f.X {
	case 0:
		return classifyBlock0(f)
	case 1:
		if f.Y == operandHL && f.Z == operandHL {
			return FamilyHalt
		}
		return FamilyLoad8
	case 2:
		return FamilyALU
	default:
		return classifyBlock3(f)
	}
}

func classifyBlock0(f Fields) Family {
	switch f.Z {
	case 0:
		switch f.Y {
		case 0:
			return FamilyNOP
		case 1:
			return FamilyStoreSP
		case 2:
			return FamilyStop
		default:
			return FamilyJumpRelative
		}
	case 1:
		if f.Q == 0 {
			return FamilyLoad16
		}
		return FamilyAddHL
	case 2:
		if f.Q == 0 {
			return FamilyStoreIndirect
		}
		return FamilyLoadIndirect
	case 3:
		return FamilyIncDec16
	case 4:
		return FamilyInc8
	case 5:
		return FamilyDec8
	case 6:
		return FamilyLoad8Immediate
	default:
		return FamilyAccumulator
	}
}

func classifyBlock3(f Fields) Family {
	switch f.Z {
	case 0:
		switch f.Y {
		case 4:
			return FamilyStoreHigh
		case 5:
			return FamilyAddSP
		case 6:
			return FamilyLoadHigh
		case 7:
			return FamilyLoadHLSP
		default:
			return FamilyRetConditional
		}
	case 1:
		if f.Q == 0 {
			return FamilyPop
		}
		return [...]Family{FamilyRet, FamilyReti, FamilyJumpHL, FamilyLoadSPHL}[f.P]
	case 2:
		switch f.Y {
		case 4:
			return FamilyStoreHighC
		case 5:
			return FamilyStoreAbsolute
		case 6:
			return FamilyLoadHighC
		case 7:
			return FamilyLoadAbsolute
		default:
			return FamilyJump
		}
	case 3:
		switch f.Y {
		case 0:
			return FamilyJump
		case 1:
			return FamilyPrefixCB
		case 6:
			return FamilyDI
		case 7:
			return FamilyEI
		default:
			return FamilyIllegal
		}
	case 4:
		if f.Y < 4 {
			return FamilyCall
		}
		return FamilyIllegal
	case 5:
		switch {
		case f.Q == 0:
			return FamilyPush
		case f.P == 0:
			return FamilyCall
		default:
			return FamilyIllegal
		}
	case 6:
		return FamilyALUImmediate
	default:
		return FamilyRST
	}
}

// CBOperation is the kind of a CB-prefixed instruction, taken
// from the x field of the second opcode byte.
type CBOperation uint8

const (
	CBRotate CBOperation = iota // RLC, RRC, RL, RR, SLA, SRA, SWAP, SRL
	CBBit                       // BIT b, r
	CBRes                       // RES b, r
	CBSet                       // SET b, r
)

// isUnconditional reports whether a branch opcode ignores its
// condition code.
func isUnconditional(opcode uint8) bool {
	switch opcode {
	case 0x18, 0xC3, 0xCD:
		return true
	}
	return false
}

// branchCondition returns the condition code of a conditional
// JR, JP, CALL or RET opcode.
func branchCondition(opcode uint8) uint8 {
	if opcode < 0x40 { // JR cc has y = 4-7
		return Decode(opcode).Y - 4
	}
	return Decode(opcode).Y
}
