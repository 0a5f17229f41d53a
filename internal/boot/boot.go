// Package boot provides the boot ROM overlay. Whilst a boot ROM is not
// required to run a cartridge, it can be used to emulate the power-on
// sequence, starting the CPU at 0x0000 with zeroed registers.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
)

// Size is the size of a DMG boot ROM.
const Size = 256

// ErrInvalidSize is returned by LoadBootROM for data that is not
// exactly Size bytes long.
var ErrInvalidSize = errors.New("boot: invalid boot rom length")

// ROM represents a boot ROM. When the DMG first powers on, the boot
// ROM is mapped to memory addresses 0x0000 - 0x00FF.
//
// Once the boot ROM has completed its tasks, it is unmapped from
// memory (by writing to the types.BDIS register), and the cartridge
// is mapped over the boot ROM, thus starting the cartridge execution.
type ROM struct {
	raw      []byte
	checksum string // the MD5 checksum of the boot rom
}

// LoadBootROM loads a boot ROM, calculating its MD5 checksum.
func LoadBootROM(b []byte) (*ROM, error) {
	if len(b) != Size {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, len(b))
	}

	sum := md5.Sum(b)
	return &ROM{
		raw:      b,
		checksum: hex.EncodeToString(sum[:]),
	}, nil
}

// Read returns the byte at the given address.
func (b *ROM) Read(addr uint16) byte {
	return b.raw[addr&(Size-1)]
}

// Checksum returns the MD5 checksum of the boot rom.
func (b *ROM) Checksum() string {
	if b == nil {
		return ""
	}
	return b.checksum
}

// Model returns the model of the boot rom, determined by its
// checksum.
func (b *ROM) Model() string {
	if b == nil {
		return "none"
	}
	if model, ok := knownBootROMChecksums[b.checksum]; ok {
		return model
	}
	return "unknown"
}

// knownBootROMChecksums maps the checksums of known 256 byte boot
// ROMs to the hardware they were dumped from.
var knownBootROMChecksums = map[string]string{
	DMG0:        "Game Boy (DMG-0)",
	DMG:         "Game Boy (DMG-01)",
	MGB:         "Game Boy Pocket",
	SGB:         "Super Game Boy",
	SGB2:        "Super Game Boy 2",
	FORTUNE:     "Fortune/Bitman 3000B",
	MAX_STATION: "Max Station",
}

const (
	// DMG0 is the checksum of the early DMG boot ROM, only found
	// in units sold in Japan.
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	// DMG is the checksum of the DMG-01 boot ROM.
	DMG = "32fbbd84168d3482956eb3c5051637f5"
	// MGB differs from DMG by a single byte, leaving 0xFF in A
	// rather than 0x01.
	MGB = "71a378e71ff30b2d8a1f02bf5c7896aa"
	// SGB hands the cartridge header to the SNES instead of
	// scrolling the logo.
	SGB  = "d574d4f9c12f305074798f54c091a8b4"
	SGB2 = "e0430bca9925fb9882148fd2dc2418c1"
	// FORTUNE and MAX_STATION are found in Game Boy clones.
	FORTUNE     = "92ed4eca17d61fcd53f8a64c3ce84743"
	MAX_STATION = "77a7021db824010a678791f6d062943d"
)
