package cartridge

import "github.com/thelolagemann/sm83/internal/types"

// ROMCartridge represents a ROM cartridge. This cartridge type is the
// simplest cartridge type and has no MBC, and at most a single bank
// of external RAM.
type ROMCartridge struct {
	baseCartridge
}

// NewROMCartridge returns a new ROM cartridge.
func NewROMCartridge(rom []byte, header Header) *ROMCartridge {
	return &ROMCartridge{
		baseCartridge: newBaseCartridge(rom, header),
	}
}

// Read returns the value at the given address.
func (r *ROMCartridge) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return r.rom[address]
	case address >= 0xA000 && address < 0xC000 && int(address-0xA000) < len(r.ram):
		return r.ram[address-0xA000]
	}
	return 0xFF
}

// Write writes the value to the external RAM, if present. Writes to
// the ROM are ignored.
func (r *ROMCartridge) Write(address uint16, value uint8) {
	if address >= 0xA000 && address < 0xC000 && int(address-0xA000) < len(r.ram) {
		r.ram[address-0xA000] = value
	}
}

var _ types.Stater = (*ROMCartridge)(nil)

// Load implements the types.Stater interface, restoring the
// external RAM.
func (r *ROMCartridge) Load(s *types.State) {
	s.ReadData(r.ram)
}

// Save implements the types.Stater interface.
func (r *ROMCartridge) Save(s *types.State) {
	s.WriteData(r.ram)
}
