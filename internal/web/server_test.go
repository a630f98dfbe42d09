package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonarnett90/CoffeeClock/internal/logic"
	"github.com/jonarnett90/CoffeeClock/internal/status"
)

func newTestServer(t *testing.T) (*httptest.Server, *status.Tracker) {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := status.Config{
		PollMs:      1000,
		TimeoutMs:   3000,
		HeartbeatMs: 900000,
		Host:        "ruby-coffee-maker.herokuapp.com",
		Broker:      "tcp://192.168.1.200:1883",
		HTTPAddr:    ":8080",
		RelayPin:    14,
	}
	tr := status.NewTracker(start, cfg)
	srv := New(":0", tr)
	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts, tr
}

func TestJSONEndpoint(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Cycle(logic.StateBrewing, logic.Counts{BrewStarts: 5, BrewStops: 4})
	tr.SetMQTTConnected(true)

	resp, err := http.Get(ts.URL + "/index.json")
	if err != nil {
		t.Fatalf("GET /index.json: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var sj status.StatusJSON
	if err := json.NewDecoder(resp.Body).Decode(&sj); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}

	if sj.Status.State != "BREWING" {
		t.Errorf("State: got %q, want BREWING", sj.Status.State)
	}
	if !sj.Status.MQTT.Connected {
		t.Error("expected MQTT.Connected=true")
	}
	if sj.Status.Counts.BrewStarts != 5 {
		t.Errorf("Counts.BrewStarts: got %d, want 5", sj.Status.Counts.BrewStarts)
	}
	if sj.Status.Counts.BrewStops != 4 {
		t.Errorf("Counts.BrewStops: got %d, want 4", sj.Status.Counts.BrewStops)
	}
	if sj.Status.Config.Host != "ruby-coffee-maker.herokuapp.com" {
		t.Errorf("Config.Host: got %q", sj.Status.Config.Host)
	}
	if sj.Status.Config.RelayPin != 14 {
		t.Errorf("Config.RelayPin: got %d, want 14", sj.Status.Config.RelayPin)
	}
	if sj.Status.Config.HeartbeatMs != 900000 {
		t.Errorf("Config.HeartbeatMs: got %d, want 900000", sj.Status.Config.HeartbeatMs)
	}
}

func TestIndexPage(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Cycle(logic.StateBrewing, logic.Counts{BrewStarts: 1})
	tr.RemoteError(time.Now(), errors.New("remote unavailable: get /should_stop: timeout"))

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type: got %q, want text/html", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	html := string(body)

	for _, want := range []string{"BREWING", "CoffeeClock", "ruby-coffee-maker.herokuapp.com", "should_stop", "900000ms"} {
		if !strings.Contains(html, want) {
			t.Errorf("index page missing %q", want)
		}
	}
}

func TestNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/no-such-page")
	if err != nil {
		t.Fatalf("GET /no-such-page: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", resp.StatusCode)
	}
}
