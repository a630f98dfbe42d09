// Package gpio drives the brewer relay output with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Relay drives the brewer relay pin.
type Relay interface {
	// Set drives the relay level: true = HIGH (brewing), false = LOW.
	Set(on bool) error

	// Close drives the relay LOW and releases GPIO resources.
	Close() error
}

// DefaultPin is the BCM pin number wired to the brewer relay.
const DefaultPin = 14
