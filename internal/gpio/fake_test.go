package gpio

import (
	"errors"
	"testing"
)

func TestFakeRelaySet(t *testing.T) {
	f := NewFakeRelay()

	if f.On() {
		t.Error("expected LOW before any command")
	}

	if err := f.Set(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.On() {
		t.Error("expected HIGH after Set(true)")
	}

	if err := f.Set(false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.On() {
		t.Error("expected LOW after Set(false)")
	}

	if len(f.Levels) != 2 {
		t.Errorf("Levels: got %d entries, want 2", len(f.Levels))
	}
}

func TestFakeRelayError(t *testing.T) {
	f := NewFakeRelay()
	f.SetError = errors.New("simulated error")

	if err := f.Set(true); err == nil {
		t.Error("expected error to be returned")
	}
	if len(f.Levels) != 0 {
		t.Error("failed Set should not record a level")
	}
}

func TestFakeRelayClose(t *testing.T) {
	f := NewFakeRelay()

	if f.Closed {
		t.Error("should not be closed initially")
	}
	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}
}
