package gpio

// FakeRelay is a test double that records commanded relay levels.
type FakeRelay struct {
	// Levels contains every level commanded via Set, in order.
	Levels []bool

	// SetError, if set, will be returned by Set.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeRelay creates a FakeRelay, initially LOW with no history.
func NewFakeRelay() *FakeRelay {
	return &FakeRelay{}
}

// Set records the commanded level.
func (f *FakeRelay) Set(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Levels = append(f.Levels, on)
	return nil
}

// On returns the last commanded level (LOW if never commanded).
func (f *FakeRelay) On() bool {
	if len(f.Levels) == 0 {
		return false
	}
	return f.Levels[len(f.Levels)-1]
}

// Close marks the relay as closed.
func (f *FakeRelay) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded levels.
func (f *FakeRelay) Reset() {
	f.Levels = nil
	f.SetError = nil
	f.Closed = false
}
