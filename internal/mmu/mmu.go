// Package mmu provides a memory management unit for the Game Boy. The
// MMU is unaware of the other components: peripherals register their
// IO registers on a types.HardwareRegisters table, which the MMU
// routes the IO page through.
package mmu

import (
	"github.com/thelolagemann/sm83/internal/boot"
	"github.com/thelolagemann/sm83/internal/cartridge"
	"github.com/thelolagemann/sm83/internal/ram"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

// ly is reported for LY. There is no pixel pipeline, so the LCD
// always appears to be on the first line of vertical blank.
const ly = 0x90

// region is a contiguous block of the address space, handled by
// the same pair of functions.
type region struct {
	read  func(address uint16) uint8
	write func(address uint16, value uint8)
}

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory. It
// implements the cpu.Bus interface.
type MMU struct {
	// 64kB address space
	raw [0x10000]*region

	// 0x0000 - 0x00FF - BOOT ROM (256B)
	bootROM     *boot.ROM
	bootROMDone bool

	// 0x0000 - 0x7FFF - ROM (32kB)
	// 0xA000 - 0xBFFF - External RAM (8kB)
	Cart cartridge.Cartridge

	// 0x8000 - 0x9FFF - Video RAM (8kB)
	vRAM ram.RAM

	// 0xC000 - 0xDFFF - Work RAM (8kB)
	// 0xE000 - 0xFDFF - Echo RAM (7.5kB)
	wRAM *WRAM

	// 0xFE00 - 0xFE9F - Sprite Attribute Table (160B)
	oam ram.RAM

	// 0xFF00 - 0xFF7F - I/O Registers
	// (0xFFFF) - interrupt enable register
	registers *types.HardwareRegisters
	// I/O registers no component claims (LCD, sound, ...) behave
	// as plain memory.
	unclaimed ram.RAM

	// 0xFF80 - 0xFFFE - Zero Page RAM (127B)
	zRAM ram.RAM

	Log log.Logger
}

// NewMMU returns a new MMU for the given cartridge, routing the IO
// page through registers.
func NewMMU(cart cartridge.Cartridge, registers *types.HardwareRegisters, logger log.Logger) *MMU {
	m := &MMU{
		Cart:      cart,
		vRAM:      ram.NewRAM(0x2000),
		wRAM:      NewWRAM(),
		oam:       ram.NewRAM(0xA0),
		registers: registers,
		unclaimed: ram.NewRAM(0x80),
		zRAM:      ram.NewRAM(0x7F),
		Log:       logger,
	}
	m.init()
	m.Reset()

	return m
}

func (m *MMU) init() {
	// setup registers
	m.registers.RegisterHardware(
		types.LY,
		func(v uint8) {},
		func() uint8 {
			return ly
		},
	)
	m.registers.RegisterHardware(
		types.BDIS,
		func(v uint8) {
			if v != 0 && !m.bootROMDone {
				m.bootROMDone = true
				if m.bootROM != nil {
					m.Log.Debugf("boot rom disabled")
				}
			}
		}, nil)

	// setup raw memory
	regions := []region{
		{read: m.readCart, write: m.Cart.Write},
		{read: offset(m.vRAM.Read, 0x8000), write: offsetWrite(m.vRAM.Write, 0x8000)},
		{read: m.Cart.Read, write: m.Cart.Write},
		{read: m.wRAM.Read, write: m.wRAM.Write},
		{read: offset(m.oam.Read, 0xFE00), write: offsetWrite(m.oam.Write, 0xFE00)},
		{read: func(uint16) uint8 { return 0xFF }, write: func(uint16, uint8) {}},
		{read: m.readIO, write: m.writeIO},
		{read: offset(m.zRAM.Read, 0xFF80), write: offsetWrite(m.zRAM.Write, 0xFF80)},
		{read: m.registers.Read, write: m.registers.Write},
	}
	bounds := []int{0x8000, 0xA000, 0xC000, 0xFE00, 0xFEA0, 0xFF00, 0xFF80, 0xFFFF, 0x10000}

	start := 0
	for i, end := range bounds {
		for addr := start; addr < end; addr++ {
			m.raw[addr] = &regions[i]
		}
		start = end
	}
}

func offset(read func(uint16) uint8, base uint16) func(uint16) uint8 {
	return func(addr uint16) uint8 {
		return read(addr - base)
	}
}

func offsetWrite(write func(uint16, uint8), base uint16) func(uint16, uint8) {
	return func(addr uint16, v uint8) {
		write(addr-base, v)
	}
}

// Reset re-maps the boot ROM and fills unclaimed IO registers
// with 0xFF.
func (m *MMU) Reset() {
	m.bootROMDone = m.bootROM == nil
	for i := uint16(0); i < 0x80; i++ {
		m.unclaimed.Write(i, 0xFF)
	}
}

// SetBootROM maps rom over 0x0000 - 0x00FF until BDIS is written.
func (m *MMU) SetBootROM(rom *boot.ROM) {
	m.bootROM = rom
	m.bootROMDone = rom == nil
}

// BootROMDone returns true once the boot ROM has been unmapped, or
// if there never was one.
func (m *MMU) BootROMDone() bool {
	return m.bootROMDone
}

func (m *MMU) readCart(address uint16) uint8 {
	// handle the boot ROM (if enabled)
	if !m.bootROMDone && address < boot.Size {
		return m.bootROM.Read(address)
	}

	return m.Cart.Read(address)
}

func (m *MMU) readIO(address uint16) uint8 {
	if m.registers.Mapped(address) {
		return m.registers.Read(address)
	}
	return m.unclaimed.Read(address & 0x7F)
}

func (m *MMU) writeIO(address uint16, value uint8) {
	if m.registers.Mapped(address) {
		m.registers.Write(address, value)
		return
	}
	m.unclaimed.Write(address&0x7F, value)
}

// Read returns the value at the given address. It handles all the memory
// banks, mirroring, I/O, etc.
func (m *MMU) Read(address uint16) uint8 {
	return m.raw[address].read(address)
}

func (m *MMU) Write(address uint16, value uint8) {
	m.raw[address].write(address, value)
}

var _ types.Stater = (*MMU)(nil)

// Save implements the types.Stater interface.
//
// The values are saved in the following order:
//   - bootROMDone (bool)
//   - VRAM, WRAM, OAM, unclaimed IO, HRAM ([]byte)
//   - cartridge state
func (m *MMU) Save(s *types.State) {
	s.WriteBool(m.bootROMDone)
	s.WriteData(m.vRAM.Bytes())
	s.WriteData(m.wRAM.raw[:])
	s.WriteData(m.oam.Bytes())
	s.WriteData(m.unclaimed.Bytes())
	s.WriteData(m.zRAM.Bytes())
	m.Cart.Save(s)
}

// Load implements the types.Stater interface.
func (m *MMU) Load(s *types.State) {
	m.bootROMDone = s.ReadBool() || m.bootROM == nil
	s.ReadData(m.vRAM.Bytes())
	s.ReadData(m.wRAM.raw[:])
	s.ReadData(m.oam.Bytes())
	s.ReadData(m.unclaimed.Bytes())
	s.ReadData(m.zRAM.Bytes())
	m.Cart.Load(s)
}
