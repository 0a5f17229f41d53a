package serial

import "io"

// Device is a device that can be attached to the Controller, on the
// other end of the link cable. Bits are exchanged most significant
// bit first.
type Device interface {
	Receive(bool)
	Send() bool
}

// nullDevice is an implementation of Device that
// simply returns true on Send and does nothing on
// Receive. This is most commonly used for when no
// device is attached to the Controller.
type nullDevice struct{}

// Receive does nothing.
func (n nullDevice) Receive(bool) {}

// Send always returns true.
func (n nullDevice) Send() bool { return true }

// WriterDevice captures every byte sent over the link and writes it
// to an io.Writer. Test ROMs use this to print their results. It
// never drives the line, so received bytes read 0xFF.
type WriterDevice struct {
	w     io.Writer
	data  uint8
	count uint8
	err   error
}

// NewWriterDevice returns a WriterDevice writing to w.
func NewWriterDevice(w io.Writer) *WriterDevice {
	return &WriterDevice{w: w}
}

// Receive shifts in a bit, writing out each completed byte.
func (d *WriterDevice) Receive(bit bool) {
	d.data <<= 1
	if bit {
		d.data |= 1
	}
	if d.count++; d.count == 8 {
		if d.err == nil {
			_, d.err = d.w.Write([]byte{d.data})
		}
		d.data, d.count = 0, 0
	}
}

// Send always returns true.
func (d *WriterDevice) Send() bool { return true }

// Err returns the first error returned by the underlying writer.
func (d *WriterDevice) Err() error {
	return d.err
}
