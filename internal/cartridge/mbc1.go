package cartridge

import "github.com/thelolagemann/sm83/internal/types"

// MemoryBankedCartridge1 represents a MBC1 cartridge. This cartridge
// type supports up to 125 usable ROM banks and 4 RAM banks.
//
// The bank number is built from two registers: a 5-bit register
// holding the low bits of the ROM bank, and a 2-bit register
// holding either the upper ROM bank bits or the RAM bank,
// depending on the banking mode.
type MemoryBankedCartridge1 struct {
	baseCartridge

	romBanks int
	bank1    uint8 // 0x2000 - 0x3FFF, never 0
	bank2    uint8 // 0x4000 - 0x5FFF

	ramEnabled bool
	// advanced banking applies bank2 to 0x0000 - 0x3FFF
	// and to the RAM.
	advanced bool
}

// NewMemoryBankedCartridge1 returns a new MemoryBankedCartridge1 cartridge.
func NewMemoryBankedCartridge1(rom []byte, header Header) *MemoryBankedCartridge1 {
	return &MemoryBankedCartridge1{
		baseCartridge: newBaseCartridge(rom, header),
		romBanks:      len(rom) / romBankSize,
		bank1:         1,
	}
}

// Read returns the value from the cartridges ROM or RAM, depending on
// the bank selected.
func (m *MemoryBankedCartridge1) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		var bank int
		if m.advanced {
			bank = int(m.bank2) << 5
		}
		return m.rom[m.romOffset(bank)+int(address)]
	case address < 0x8000:
		bank := int(m.bank2)<<5 | int(m.bank1)
		return m.rom[m.romOffset(bank)+int(address-0x4000)]
	case address >= 0xA000 && address < 0xC000:
		if offset, ok := m.ramOffset(address); ok {
			return m.ram[offset]
		}
	}

	return 0xFF
}

// Write updates the banking registers, or writes to the selected
// RAM bank.
func (m *MemoryBankedCartridge1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.bank1 = value & 0x1F
		if m.bank1 == 0 {
			m.bank1 = 1
		}
	case address < 0x6000:
		m.bank2 = value & 0x03
	case address < 0x8000:
		m.advanced = value&0x01 == 0x01
	case address >= 0xA000 && address < 0xC000:
		if offset, ok := m.ramOffset(address); ok {
			m.ram[offset] = value
		}
	}
}

// romOffset returns the offset of bank, wrapped to the ROM size.
func (m *MemoryBankedCartridge1) romOffset(bank int) int {
	return (bank % m.romBanks) * romBankSize
}

// ramOffset returns the offset into the RAM for address, or false
// when the RAM is disabled or absent.
func (m *MemoryBankedCartridge1) ramOffset(address uint16) (int, bool) {
	if !m.ramEnabled || len(m.ram) == 0 {
		return 0, false
	}
	var bank int
	if m.advanced {
		bank = int(m.bank2)
	}
	return (bank*ramBankSize + int(address-0xA000)) % len(m.ram), true
}

var _ types.Stater = (*MemoryBankedCartridge1)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - bank1, bank2 (uint8)
//   - ramEnabled, advanced (bool)
//   - RAM ([]byte)
func (m *MemoryBankedCartridge1) Load(s *types.State) {
	m.bank1 = s.Read8()
	m.bank2 = s.Read8()
	m.ramEnabled = s.ReadBool()
	m.advanced = s.ReadBool()
	s.ReadData(m.ram)
}

// Save implements the types.Stater interface.
func (m *MemoryBankedCartridge1) Save(s *types.State) {
	s.Write8(m.bank1)
	s.Write8(m.bank2)
	s.WriteBool(m.ramEnabled)
	s.WriteBool(m.advanced)
	s.WriteData(m.ram)
}
