package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event           string     `json:"event,omitempty"`
	Reason          string     `json:"reason,omitempty"`
	State           string     `json:"state"`
	UptimeSeconds   int64      `json:"uptime_seconds"`
	StartTime       string     `json:"start_time"`
	Timestamp       string     `json:"timestamp"`
	Cycles          uint64     `json:"cycles"`
	MQTT            MQTTStatus `json:"mqtt"`
	Counts          CountsJSON `json:"transition_counts"`
	RemoteErrors    uint64     `json:"remote_errors"`
	LastRemoteError string     `json:"last_remote_error,omitempty"`
	Config          ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of transition counts.
type CountsJSON struct {
	BrewStarts int `json:"brew_starts"`
	BrewStops  int `json:"brew_stops"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	TimeoutMs   int64  `json:"timeout_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Host        string `json:"host"`
	Broker      string `json:"broker"`
	HTTPAddr    string `json:"http_addr"`
	RelayPin    int    `json:"relay_pin"`
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		State:           string(snap.State),
		UptimeSeconds:   int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:       snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:       snap.Now.UTC().Format(time.RFC3339),
		Cycles:          snap.Cycles,
		MQTT:            MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts:          CountsJSON{BrewStarts: snap.Counts.BrewStarts, BrewStops: snap.Counts.BrewStops},
		RemoteErrors:    snap.RemoteErrors,
		LastRemoteError: snap.LastRemoteError,
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			TimeoutMs:   snap.Config.TimeoutMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Host:        snap.Config.Host,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
			RelayPin:    snap.Config.RelayPin,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
