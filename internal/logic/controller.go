package logic

import "time"

// clockLayout is the 16-column clock line:
// weekday, month, day, hour:minute.
const clockLayout = "Mon Jan 02 15:04"

// ClockText formats now for the first display line.
func ClockText(now time.Time) string {
	return now.Format(clockLayout)
}

// Controller owns the brew state machine for the driver loop.
// It decides transitions and display refreshes; the loop executes them.
type Controller struct {
	state      BrewState
	clockText  string
	lastMinute int
	rendered   Frame
	counts     Counts
}

// NewController creates a Controller in the Idle state.
func NewController() *Controller {
	return &Controller{
		state:      StateIdle,
		lastMinute: -1, // force a clock refresh on the first cycle
	}
}

// State returns the current brew state. The driver loop uses it to
// select the remote endpoint for the next poll.
func (c *Controller) State() BrewState {
	return c.state
}

// Counts returns the transition counts since startup.
func (c *Controller) Counts() Counts {
	return c.counts
}

// Tick applies one cycle's directive at the given time and returns the
// side effects to perform. An affirmative directive toggles the state;
// anything else leaves it untouched. The returned frame, if any, must
// be confirmed with MarkRendered once the display write succeeds, so a
// failed write is retried on the next cycle.
func (c *Controller) Tick(affirmative bool, now time.Time) Step {
	var step Step

	if affirmative {
		if c.state == StateIdle {
			c.state = StateBrewing
			c.counts.BrewStarts++
			step.Event = &Event{Timestamp: now, Type: EventBrewStart, State: c.state}
		} else {
			c.state = StateIdle
			c.counts.BrewStops++
			step.Event = &Event{Timestamp: now, Type: EventBrewStop, State: c.state}
		}
		step.Relay = &RelayCommand{On: c.state.RelayOn()}
	}

	c.refreshClock(now)

	frame := Frame{Line1: c.clockText, Line2: StatusText(c.state)}
	if frame != c.rendered {
		step.Frame = &frame
	}

	return step
}

// Park forces the controller idle for shutdown, after the relay has
// been driven LOW, and returns the idle frame to render. Returns nil
// when the display already shows it.
func (c *Controller) Park(now time.Time) *Frame {
	c.state = StateIdle
	c.refreshClock(now)

	frame := Frame{Line1: c.clockText, Line2: StatusText(c.state)}
	if frame == c.rendered {
		return nil
	}
	return &frame
}

// MarkRendered records the frame as the display's current content.
// Called by the loop after a successful display write; unconfirmed
// frames are re-issued by the next Tick.
func (c *Controller) MarkRendered(f Frame) {
	c.rendered = f
}

// refreshClock recomputes the clock line only when the minute-of-hour
// changes, so the display is not rewritten every second.
func (c *Controller) refreshClock(now time.Time) {
	if m := now.Minute(); m != c.lastMinute {
		c.clockText = ClockText(now)
		c.lastMinute = m
	}
}
