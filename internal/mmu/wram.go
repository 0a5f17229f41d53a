package mmu

// WRAM is the 8kB work RAM at 0xC000 - 0xDFFF. The echo region
// at 0xE000 - 0xFDFF mirrors it.
type WRAM struct {
	raw [0x2000]uint8
}

func NewWRAM() *WRAM {
	return &WRAM{}
}

func (w *WRAM) Read(addr uint16) uint8 {
	return w.raw[addr&0x1FFF]
}

func (w *WRAM) Write(addr uint16, v uint8) {
	w.raw[addr&0x1FFF] = v
}
