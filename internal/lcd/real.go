//go:build linux

package lcd

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/devices/v3/hd44780"
	"periph.io/x/host/v3"

	"github.com/jonarnett90/CoffeeClock/internal/logic"
)

// RealDisplay drives an HD44780 character LCD in 4-bit mode over GPIO.
type RealDisplay struct {
	dev *hd44780.Dev
}

// NewRealDisplay initializes the periph host and the LCD on the given
// pins.
func NewRealDisplay(p Pins) (*RealDisplay, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	rs, err := pinByNumber(p.RS)
	if err != nil {
		return nil, err
	}
	e, err := pinByNumber(p.E)
	if err != nil {
		return nil, err
	}
	data := make([]gpio.PinOut, 0, 4)
	for _, n := range []int{p.D4, p.D5, p.D6, p.D7} {
		pin, err := pinByNumber(n)
		if err != nil {
			return nil, err
		}
		data = append(data, pin)
	}

	dev, err := hd44780.New(data, rs, e)
	if err != nil {
		return nil, fmt.Errorf("init hd44780: %w", err)
	}

	return &RealDisplay{dev: dev}, nil
}

// Splash clears the display and writes the startup message on line 1.
func (d *RealDisplay) Splash(text string) error {
	if err := d.dev.Reset(); err != nil {
		return fmt.Errorf("clear display: %w", err)
	}
	if err := d.dev.Print(fit(text)); err != nil {
		return fmt.Errorf("write splash: %w", err)
	}
	return nil
}

// Render clears the display and writes both frame lines.
func (d *RealDisplay) Render(f logic.Frame) error {
	if err := d.dev.Reset(); err != nil {
		return fmt.Errorf("clear display: %w", err)
	}
	if err := d.dev.Print(fit(f.Line1)); err != nil {
		return fmt.Errorf("write line 1: %w", err)
	}
	if err := d.dev.SetCursor(1, 0); err != nil {
		return fmt.Errorf("set cursor: %w", err)
	}
	if err := d.dev.Print(fit(f.Line2)); err != nil {
		return fmt.Errorf("write line 2: %w", err)
	}
	return nil
}

// Close halts the display.
func (d *RealDisplay) Close() error {
	return d.dev.Halt()
}

func pinByNumber(n int) (gpio.PinIO, error) {
	pin := gpioreg.ByName(fmt.Sprintf("GPIO%d", n))
	if pin == nil {
		return nil, fmt.Errorf("gpio pin GPIO%d not found", n)
	}
	return pin, nil
}
