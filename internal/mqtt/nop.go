package mqtt

import "github.com/jonarnett90/CoffeeClock/internal/logic"

// NopPublisher discards all events. Used when telemetry is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(logic.Event) error { return nil }

func (NopPublisher) PublishSystem(SystemEvent) error { return nil }

func (NopPublisher) Close() error { return nil }

func (NopPublisher) IsConnected() bool { return false }
