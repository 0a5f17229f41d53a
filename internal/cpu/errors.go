package cpu

import "fmt"

// UnimplementedError is returned by Cycle when no handler covers the
// current opcode at the current machine cycle. It always indicates a
// defect in the core, never a problem with the running program.
type UnimplementedError struct {
	Opcode   uint8
	CBOpcode uint8 // only meaningful when Family is FamilyPrefixCB
	Family   Family
	Step     uint8
}

func (e *UnimplementedError) Error() string {
	f := Decode(e.Opcode)
	if e.Family == FamilyPrefixCB {
		return fmt.Sprintf("cpu: unimplemented opcode 0xCB 0x%02X at cycle %d", e.CBOpcode, e.Step)
	}
	return fmt.Sprintf("cpu: unimplemented opcode 0x%02X (%s, x:%d y:%d z:%d p:%d q:%d) at cycle %d",
		e.Opcode, e.Family, f.X, f.Y, f.Z, f.P, f.Q, e.Step)
}
