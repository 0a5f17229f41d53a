package types

// HardwareRegisters maps the IO page (0xFF00 - 0xFF7F) and the
// IE register to the components that own them. The table is
// indexed by the address ANDed with 0x007F.
//
// Each peripheral registers its own registers when it is
// attached, so the MMU never needs to know which component
// sits behind an address.
type HardwareRegisters [0x80]*HardwareRegister

// HardwareRegister is a single memory mapped register. Either
// function may be nil, making the register write-only or
// read-only respectively.
type HardwareRegister struct {
	address HardwareAddress
	read    func() uint8
	write   func(v uint8)
}

// RegisterHardware registers a hardware register with the given
// address and read/write functions.
func (h *HardwareRegisters) RegisterHardware(address HardwareAddress, write func(v uint8), read func() uint8) {
	h[index(address)] = &HardwareRegister{
		address: address,
		read:    read,
		write:   write,
	}
}

// Mapped returns true if a component has registered the address.
func (h *HardwareRegisters) Mapped(address uint16) bool {
	if address == 0xFF7F {
		return false
	}
	return h[index(address)] != nil
}

// Read returns the value of the hardware register for the given
// address. Unmapped and write-only registers read 0xFF.
func (h *HardwareRegisters) Read(address uint16) uint8 {
	if !h.Mapped(address) || h[index(address)].read == nil {
		return 0xFF
	}
	return h[index(address)].read()
}

// Write writes the given value to the hardware register for the
// given address. Writes to unmapped and read-only registers are
// dropped.
func (h *HardwareRegisters) Write(address uint16, value uint8) {
	if !h.Mapped(address) || h[index(address)].write == nil {
		return
	}
	h[index(address)].write(value)
}

// index maps an address to its slot. IE (0xFFFF) shares the slot
// of 0xFF7F, which is not a register on the DMG.
func index(address uint16) uint16 {
	return address & 0x007F
}
