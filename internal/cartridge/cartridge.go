// Package cartridge provides the Cartridge interface for the DMG.
// The cartridge holds the game ROM and any external RAM, and maps
// them into 0x0000 - 0x7FFF and 0xA000 - 0xBFFF.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/sm83/internal/types"
)

var (
	// ErrUnsupported is returned by New for controller types
	// that are not emulated.
	ErrUnsupported = errors.New("cartridge: unsupported controller")
	// ErrInvalidROM is returned by New for ROMs too short to
	// hold a header, or whose size is not a whole number of banks.
	ErrInvalidROM = errors.New("cartridge: invalid rom")
)

const (
	romBankSize = 0x4000
	ramBankSize = 0x2000
)

// Cartridge represents a game cartridge.
type Cartridge interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)

	Header() Header
	Title() string

	types.Stater
}

// New parses the header of rom and returns the matching
// cartridge implementation.
func New(rom []byte) (Cartridge, error) {
	if len(rom) < 0x8000 || len(rom)%romBankSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidROM, len(rom))
	}
	header := parseHeader(rom[0x100:0x150])

	switch header.CartridgeType {
	case ROM, ROMRAM, ROMRAMBATT:
		return NewROMCartridge(rom, header), nil
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return NewMemoryBankedCartridge1(rom, header), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupported, header.CartridgeType)
}

// baseCartridge holds what every cartridge has in common.
type baseCartridge struct {
	rom    []byte
	ram    []byte
	header Header
}

func newBaseCartridge(rom []byte, header Header) baseCartridge {
	return baseCartridge{
		rom:    rom,
		ram:    make([]byte, header.RAMSize),
		header: header,
	}
}

func (c *baseCartridge) Header() Header {
	return c.header
}

// Title returns the cartridge title, without padding.
func (c *baseCartridge) Title() string {
	return c.header.Title
}
