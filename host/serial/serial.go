// Package serial abstracts the serial link to the receiver board.
package serial

import (
	"io"
)

// Port is the byte-level connection to the board. An interface so the
// control loop can be driven by a mock in tests.
type Port interface {
	io.ReadWriteCloser

	// Flush drops any buffered data.
	Flush() error
}

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g. "/dev/ttyUSB0", "/dev/ttyACM0").
	Device string

	// Baud rate. Must match the firmware's code UART (9600).
	Baud int

	// Read timeout in milliseconds (0 = blocking).
	ReadTimeout int
}

// DefaultConfig returns the configuration matching the firmware defaults.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        9600,
		ReadTimeout: 0,
	}
}
