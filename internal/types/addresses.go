package types

// HardwareAddress represents the address of a hardware
// register. The hardware registers are mapped to memory
// addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 is the address of the joypad register. Bits 4 and 5
	// select the button group read back in bits 0-3.
	P1 HardwareAddress = 0xFF00
	// SB is the address of the serial transfer data register.
	SB HardwareAddress = 0xFF01
	// SC is the address of the serial transfer control register.
	// Writing 0x81 starts a transfer using the internal clock.
	SC HardwareAddress = 0xFF02
	// DIV is the address of the divider register. Internally
	// it is a 16-bit counter, of which only the upper 8 bits
	// are visible. Any write resets the whole counter.
	DIV HardwareAddress = 0xFF04
	// TIMA is the address of the timer counter, incremented at
	// the rate selected by TAC.
	TIMA HardwareAddress = 0xFF05
	// TMA is the address of the timer modulo, loaded into TIMA
	// when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC is the address of the timer control register.
	//
	//  Bit 2:   Timer enable
	//  Bit 1-0: Clock select (00: 1024, 01: 16, 10: 64, 11: 256)
	TAC HardwareAddress = 0xFF07
	// IF is the address of the interrupt request register.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// LY is the address of the current scanline register. There
	// is no pixel pipeline, so it always reports the first line
	// of vertical blank.
	LY HardwareAddress = 0xFF44
	// BDIS is the address of the boot ROM disable register. Any
	// non-zero write unmaps the boot ROM until the next reset.
	BDIS HardwareAddress = 0xFF50
	// IE is the address of the interrupt enable register, using
	// the same bit layout as IF.
	IE HardwareAddress = 0xFFFF
)
