// Package remote queries the command service for brew directives.
// The real implementation polls an HTTP endpoint; the fake returns
// scripted directives for tests.
package remote

import (
	"context"
	"errors"
)

// DefaultHost is the command service queried when no host is given.
const DefaultHost = "ruby-coffee-maker.herokuapp.com"

// Endpoint paths. The endpoint is selected by brew state: should_brew
// while idle, should_stop while brewing. Exactly one query per cycle.
const (
	PathShouldBrew = "/should_brew"
	PathShouldStop = "/should_stop"
)

// ErrUnavailable classifies transport-level failures: timeouts, DNS
// failures, refused connections, and non-2xx statuses. The caller must
// treat the cycle as a negative directive and keep looping.
// Use errors.Is to test for it.
var ErrUnavailable = errors.New("remote unavailable")

// Source answers one directive query per cycle.
type Source interface {
	// ShouldBrew asks whether an idle brewer should start.
	ShouldBrew(ctx context.Context) (bool, error)

	// ShouldStop asks whether a brewing brewer should stop.
	ShouldStop(ctx context.Context) (bool, error)
}

// IsAffirmative interprets a response body. The directive is
// affirmative iff the body is exactly the literal "1", not a truthiness
// or numeric parse: "0", "", "true", "11" and "1 " are all negative.
// The service contract is this exact match; do not loosen it.
func IsAffirmative(body []byte) bool {
	return string(body) == "1"
}
