package remote

import "context"

// FakeSource is a test double that returns scripted directives.
type FakeSource struct {
	// Directives contains scripted answers. Each query consumes the
	// next one; when exhausted the last answer repeats.
	Directives []bool

	// Err, if set, will be returned by both queries.
	Err error

	// BrewCalls and StopCalls count queries per endpoint.
	BrewCalls int
	StopCalls int

	index int
}

// NewFakeSource creates a FakeSource with the given scripted answers.
func NewFakeSource(directives ...bool) *FakeSource {
	return &FakeSource{Directives: directives}
}

// ShouldBrew returns the next scripted directive.
func (f *FakeSource) ShouldBrew(ctx context.Context) (bool, error) {
	f.BrewCalls++
	return f.next()
}

// ShouldStop returns the next scripted directive.
func (f *FakeSource) ShouldStop(ctx context.Context) (bool, error) {
	f.StopCalls++
	return f.next()
}

func (f *FakeSource) next() (bool, error) {
	if f.Err != nil {
		return false, f.Err
	}
	if len(f.Directives) == 0 {
		return false, nil
	}
	d := f.Directives[f.index]
	if f.index < len(f.Directives)-1 {
		f.index++
	}
	return d, nil
}
