package types

// Peripheral is a device clocked alongside the CPU, such as the
// timer or the serial port. Tick advances the device by a single
// clock pulse, so it observes the bus between every machine cycle
// of the CPU.
type Peripheral interface {
	Tick()
}
