package lcd

import "github.com/jonarnett90/CoffeeClock/internal/logic"

// FakeDisplay is a test double that records everything written to it.
type FakeDisplay struct {
	// Frames contains every frame passed to Render, in order.
	Frames []logic.Frame

	// Splashes contains every splash text, in order.
	Splashes []string

	// RenderError, if set, will be returned by Render.
	RenderError error

	// SplashError, if set, will be returned by Splash.
	SplashError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeDisplay creates an empty FakeDisplay.
func NewFakeDisplay() *FakeDisplay {
	return &FakeDisplay{}
}

// Splash records the splash text.
func (f *FakeDisplay) Splash(text string) error {
	if f.SplashError != nil {
		return f.SplashError
	}
	f.Splashes = append(f.Splashes, text)
	return nil
}

// Render records the frame.
func (f *FakeDisplay) Render(frame logic.Frame) error {
	if f.RenderError != nil {
		return f.RenderError
	}
	f.Frames = append(f.Frames, frame)
	return nil
}

// Last returns the most recently rendered frame, or a zero frame.
func (f *FakeDisplay) Last() logic.Frame {
	if len(f.Frames) == 0 {
		return logic.Frame{}
	}
	return f.Frames[len(f.Frames)-1]
}

// Close marks the display as closed.
func (f *FakeDisplay) Close() error {
	f.Closed = true
	return nil
}
