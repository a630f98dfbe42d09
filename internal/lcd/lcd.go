// Package lcd renders controller frames on a 16x2 character display
// with hardware abstraction. The real implementation drives an HD44780
// module over GPIO via periph.io; the fake records frames for tests.
package lcd

import "github.com/jonarnett90/CoffeeClock/internal/logic"

// Display geometry.
const (
	Columns = 16
	Rows    = 2
)

// Display renders controller output on the character LCD.
type Display interface {
	// Splash clears the display and writes a one-line startup message.
	Splash(text string) error

	// Render clears the display and writes the frame: line 1 at the
	// top, line 2 below. Callers debounce; Render always writes.
	Render(f logic.Frame) error

	// Close releases display resources.
	Close() error
}

// Pins holds the BCM pin numbers of the 4-bit HD44780 bus.
type Pins struct {
	RS, E, D4, D5, D6, D7 int
}

// DefaultPins matches the common 4-bit character LCD wiring on a
// Raspberry Pi header.
var DefaultPins = Pins{RS: 25, E: 24, D4: 23, D5: 17, D6: 21, D7: 22}

// fit truncates a line to the display width.
func fit(s string) string {
	if len(s) > Columns {
		return s[:Columns]
	}
	return s
}

// Nop is a Display that discards all output. Used when the daemon runs
// without an attached LCD.
type Nop struct{}

func (Nop) Splash(string) error { return nil }

func (Nop) Render(logic.Frame) error { return nil }

func (Nop) Close() error { return nil }
