//go:build !linux

package lcd

import (
	"errors"

	"github.com/jonarnett90/CoffeeClock/internal/logic"
)

// RealDisplay is not available on non-Linux platforms.
type RealDisplay struct{}

// NewRealDisplay returns an error on non-Linux platforms.
func NewRealDisplay(p Pins) (*RealDisplay, error) {
	return nil, errors.New("lcd: not supported on this platform (requires Linux)")
}

// Splash is not implemented on non-Linux platforms.
func (d *RealDisplay) Splash(text string) error {
	return errors.New("lcd: not supported")
}

// Render is not implemented on non-Linux platforms.
func (d *RealDisplay) Render(f logic.Frame) error {
	return errors.New("lcd: not supported")
}

// Close is not implemented on non-Linux platforms.
func (d *RealDisplay) Close() error {
	return nil
}
