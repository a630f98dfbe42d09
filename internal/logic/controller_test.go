package logic

import (
	"testing"
	"time"
)

func TestNewControllerStartsIdle(t *testing.T) {
	c := NewController()
	if c.State() != StateIdle {
		t.Errorf("initial state: got %s, want IDLE", c.State())
	}
}

func TestAffirmativeStartsBrewing(t *testing.T) {
	c := NewController()
	now := time.Date(2026, 3, 9, 7, 30, 0, 0, time.UTC)

	step := c.Tick(true, now)

	if c.State() != StateBrewing {
		t.Errorf("state: got %s, want BREWING", c.State())
	}
	if step.Relay == nil || !step.Relay.On {
		t.Error("expected relay HIGH command")
	}
	if step.Event == nil {
		t.Fatal("expected a transition event")
	}
	if step.Event.Type != EventBrewStart {
		t.Errorf("event: got %s, want BREW_START", step.Event.Type)
	}
	if step.Event.State != StateBrewing {
		t.Errorf("event state: got %s, want BREWING", step.Event.State)
	}
	if step.Frame == nil {
		t.Fatal("expected a display frame")
	}
	if step.Frame.Line2 != "Brewing" {
		t.Errorf("status line: got %q, want Brewing", step.Frame.Line2)
	}
	if step.Frame.Line1 != "Mon Mar 09 07:30" {
		t.Errorf("clock line: got %q, want Mon Mar 09 07:30", step.Frame.Line1)
	}
}

func TestAffirmativeStopsBrewing(t *testing.T) {
	c := NewController()
	now := time.Date(2026, 3, 9, 7, 30, 0, 0, time.UTC)

	c.Tick(true, now) // Idle -> Brewing
	step := c.Tick(true, now.Add(time.Second))

	if c.State() != StateIdle {
		t.Errorf("state: got %s, want IDLE", c.State())
	}
	if step.Relay == nil || step.Relay.On {
		t.Error("expected relay LOW command")
	}
	if step.Event == nil || step.Event.Type != EventBrewStop {
		t.Errorf("expected BREW_STOP event, got %+v", step.Event)
	}
	if step.Frame == nil || step.Frame.Line2 != "Not brewing" {
		t.Errorf("expected Not brewing frame, got %+v", step.Frame)
	}
}

func TestNegativeDirectiveIsIdempotent(t *testing.T) {
	c := NewController()
	now := time.Date(2026, 3, 9, 7, 30, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		step := c.Tick(false, now.Add(time.Duration(i)*time.Second))
		if step.Relay != nil {
			t.Fatalf("cycle %d: unexpected relay command", i)
		}
		if step.Event != nil {
			t.Fatalf("cycle %d: unexpected event", i)
		}
		if c.State() != StateIdle {
			t.Fatalf("cycle %d: state changed to %s", i, c.State())
		}
	}
}

// TestRelayNeverDisagreesWithState drives an arbitrary directive
// sequence and checks the relay level commanded so far always equals
// the level implied by the state.
func TestRelayNeverDisagreesWithState(t *testing.T) {
	c := NewController()
	now := time.Date(2026, 3, 9, 7, 30, 0, 0, time.UTC)

	relayOn := false // relay forced LOW at startup
	directives := []bool{false, true, false, false, true, true, false, true}

	for i, d := range directives {
		step := c.Tick(d, now.Add(time.Duration(i)*time.Second))
		if step.Relay != nil {
			relayOn = step.Relay.On
		}
		if relayOn != c.State().RelayOn() {
			t.Fatalf("cycle %d: relay=%v but state=%s", i, relayOn, c.State())
		}
	}
}

func TestOneRelayCommandPerEdge(t *testing.T) {
	c := NewController()
	now := time.Date(2026, 3, 9, 7, 30, 0, 0, time.UTC)

	commands := 0
	// One start, one stop, the rest negative.
	directives := []bool{true, false, false, true, false}
	for i, d := range directives {
		if step := c.Tick(d, now.Add(time.Duration(i)*time.Second)); step.Relay != nil {
			commands++
		}
	}
	if commands != 2 {
		t.Errorf("relay commands: got %d, want 2", commands)
	}
}

func TestFrameDebounceWithinMinute(t *testing.T) {
	c := NewController()
	now := time.Date(2026, 3, 9, 7, 30, 0, 0, time.UTC)

	step := c.Tick(false, now)
	if step.Frame == nil {
		t.Fatal("first cycle should render")
	}
	c.MarkRendered(*step.Frame)

	// Same minute, no transition: zero display writes.
	for i := 1; i <= 30; i++ {
		step := c.Tick(false, now.Add(time.Duration(i)*time.Second))
		if step.Frame != nil {
			t.Fatalf("cycle %d: unexpected frame %+v", i, step.Frame)
		}
	}
}

func TestFrameOnMinuteBoundary(t *testing.T) {
	c := NewController()
	now := time.Date(2026, 3, 9, 7, 30, 59, 0, time.UTC)

	step := c.Tick(false, now)
	if step.Frame == nil {
		t.Fatal("first cycle should render")
	}
	c.MarkRendered(*step.Frame)

	step = c.Tick(false, now.Add(time.Second)) // 07:31:00
	if step.Frame == nil {
		t.Fatal("minute boundary should render")
	}
	if step.Frame.Line1 != "Mon Mar 09 07:31" {
		t.Errorf("clock line: got %q, want Mon Mar 09 07:31", step.Frame.Line1)
	}
}

func TestUnconfirmedFrameIsReissued(t *testing.T) {
	c := NewController()
	now := time.Date(2026, 3, 9, 7, 30, 0, 0, time.UTC)

	first := c.Tick(false, now)
	if first.Frame == nil {
		t.Fatal("first cycle should render")
	}
	// Display write failed: frame not marked rendered.

	second := c.Tick(false, now.Add(time.Second))
	if second.Frame == nil {
		t.Fatal("expected frame to be re-issued after a failed write")
	}
	if *second.Frame != *first.Frame {
		t.Errorf("re-issued frame differs: got %+v, want %+v", second.Frame, first.Frame)
	}

	c.MarkRendered(*second.Frame)
	third := c.Tick(false, now.Add(2*time.Second))
	if third.Frame != nil {
		t.Error("no frame expected once the write is confirmed")
	}
}

func TestParkForcesIdleFrame(t *testing.T) {
	c := NewController()
	now := time.Date(2026, 3, 9, 7, 30, 0, 0, time.UTC)

	step := c.Tick(true, now) // Idle -> Brewing
	c.MarkRendered(*step.Frame)

	frame := c.Park(now.Add(time.Second))
	if c.State() != StateIdle {
		t.Errorf("state after park: got %s, want IDLE", c.State())
	}
	if frame == nil {
		t.Fatal("expected a parked frame while the display shows Brewing")
	}
	if frame.Line2 != "Not brewing" {
		t.Errorf("status line: got %q, want Not brewing", frame.Line2)
	}
	if frame.Line1 != "Mon Mar 09 07:30" {
		t.Errorf("clock line: got %q, want Mon Mar 09 07:30", frame.Line1)
	}
}

func TestParkSkipsFrameAlreadyShown(t *testing.T) {
	c := NewController()
	now := time.Date(2026, 3, 9, 7, 30, 0, 0, time.UTC)

	step := c.Tick(false, now)
	c.MarkRendered(*step.Frame)

	if frame := c.Park(now.Add(time.Second)); frame != nil {
		t.Errorf("unexpected frame %+v, display already idle", frame)
	}
}

func TestRefreshClockMinuteGranularity(t *testing.T) {
	c := NewController()

	c.refreshClock(time.Date(2026, 3, 9, 7, 30, 0, 0, time.UTC))
	text := c.clockText

	// Same minute, different second: text untouched.
	c.refreshClock(time.Date(2026, 3, 9, 7, 30, 42, 0, time.UTC))
	if c.clockText != text {
		t.Errorf("clock recomputed within the same minute: %q -> %q", text, c.clockText)
	}

	c.refreshClock(time.Date(2026, 3, 9, 7, 31, 0, 0, time.UTC))
	if c.clockText == text {
		t.Error("clock not recomputed on minute change")
	}
}

func TestClockTextFormat(t *testing.T) {
	got := ClockText(time.Date(2026, 8, 27, 7, 5, 33, 0, time.UTC))
	want := "Thu Aug 27 07:05"
	if got != want {
		t.Errorf("ClockText: got %q, want %q", got, want)
	}
	if len(got) != 16 {
		t.Errorf("clock line length: got %d, want 16", len(got))
	}
}

func TestStatusText(t *testing.T) {
	if got := StatusText(StateBrewing); got != "Brewing" {
		t.Errorf("StatusText(BREWING): got %q", got)
	}
	if got := StatusText(StateIdle); got != "Not brewing" {
		t.Errorf("StatusText(IDLE): got %q", got)
	}
}

func TestCounts(t *testing.T) {
	c := NewController()
	now := time.Date(2026, 3, 9, 7, 30, 0, 0, time.UTC)

	c.Tick(true, now)                    // start
	c.Tick(true, now.Add(time.Second))   // stop
	c.Tick(true, now.Add(2*time.Second)) // start
	c.Tick(false, now.Add(3*time.Second))

	counts := c.Counts()
	if counts.BrewStarts != 2 {
		t.Errorf("BrewStarts: got %d, want 2", counts.BrewStarts)
	}
	if counts.BrewStops != 1 {
		t.Errorf("BrewStops: got %d, want 1", counts.BrewStops)
	}
}
