// Package status provides a thread-safe status tracker for the
// coffeeclock daemon. It is read by HTTP handlers while the driver
// loop updates it every cycle.
package status

import (
	"sync"
	"time"

	"github.com/jonarnett90/CoffeeClock/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs      int64
	TimeoutMs   int64
	HeartbeatMs int64
	Host        string
	Broker      string
	HTTPAddr    string
	RelayPin    int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	State             logic.BrewState
	Cycles            uint64
	Counts            logic.Counts
	RemoteErrors      uint64
	LastRemoteError   string
	LastRemoteErrorAt time.Time
	StartTime         time.Time
	Now               time.Time
	MQTTConnected     bool
	Config            Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			State:     logic.StateIdle,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Cycle records one completed poll cycle.
// Called from the driver loop on every tick.
func (t *Tracker) Cycle(state logic.BrewState, counts logic.Counts) {
	t.mu.Lock()
	t.snap.State = state
	t.snap.Counts = counts
	t.snap.Cycles++
	t.mu.Unlock()
}

// RemoteError records a failed remote query.
func (t *Tracker) RemoteError(at time.Time, err error) {
	t.mu.Lock()
	t.snap.RemoteErrors++
	t.snap.LastRemoteError = err.Error()
	t.snap.LastRemoteErrorAt = at
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
