package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// maxBody bounds the response read; the service answers with a single
// character.
const maxBody = 64

// Client polls the command service over HTTP.
type Client struct {
	base string
	http *http.Client
	log  zerolog.Logger
}

// NewClient creates a client for the given host. A bare host gets an
// http:// scheme. The timeout bounds the whole request; without it a
// hung service would stall the controller loop.
func NewClient(host string, timeout time.Duration, log zerolog.Logger) *Client {
	base := host
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// ShouldBrew asks whether an idle brewer should start.
func (c *Client) ShouldBrew(ctx context.Context) (bool, error) {
	return c.get(ctx, PathShouldBrew)
}

// ShouldStop asks whether a brewing brewer should stop.
func (c *Client) ShouldStop(ctx context.Context) (bool, error) {
	return c.get(ctx, PathShouldStop)
}

func (c *Client) get(ctx context.Context, path string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return false, fmt.Errorf("%w: build request %s: %v", ErrUnavailable, path, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: get %s: %v", ErrUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("%w: get %s: status %s", ErrUnavailable, path, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return false, fmt.Errorf("%w: read %s body: %v", ErrUnavailable, path, err)
	}

	affirmative := IsAffirmative(body)
	if !affirmative && string(body) != "0" && len(body) > 0 {
		// Anything other than "1" is a negative directive, but an
		// unexpected body is worth a trace for the operator.
		c.log.Debug().Str("path", path).Str("body", string(body)).Msg("unexpected response body")
	}
	return affirmative, nil
}
