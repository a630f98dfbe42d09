// Command coffeeclock polls a remote service for brew directives,
// actuates the brewer relay, and mirrors state on a 16x2 LCD.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonarnett90/CoffeeClock/internal/gpio"
	"github.com/jonarnett90/CoffeeClock/internal/lcd"
	"github.com/jonarnett90/CoffeeClock/internal/logic"
	"github.com/jonarnett90/CoffeeClock/internal/mqtt"
	"github.com/jonarnett90/CoffeeClock/internal/remote"
	"github.com/jonarnett90/CoffeeClock/internal/status"
	"github.com/jonarnett90/CoffeeClock/internal/web"
)

type options struct {
	pin       int
	host      string
	poll      time.Duration
	timeout   time.Duration
	broker    string
	heartbeat time.Duration
	httpAddr  string
	splash    string
	useLCD    bool
	lcdPins   lcd.Pins
}

func main() {
	var opts options
	flag.IntVar(&opts.pin, "pin", gpio.DefaultPin, "BCM pin number for the brewer relay")
	flag.StringVar(&opts.host, "host", remote.DefaultHost, "Remote command service host")
	flag.DurationVar(&opts.poll, "poll", time.Second, "Polling interval")
	flag.DurationVar(&opts.timeout, "timeout", 3*time.Second, "Remote request timeout")
	flag.StringVar(&opts.broker, "broker", "off", `MQTT broker address ("off" disables telemetry)`)
	flag.DurationVar(&opts.heartbeat, "heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	flag.StringVar(&opts.httpAddr, "http", ":8080", "HTTP status address (empty to disable)")
	flag.StringVar(&opts.splash, "splash", "CoffeeClock 1.1", "Startup splash text")
	flag.BoolVar(&opts.useLCD, "lcd", true, "Drive the character LCD")
	flag.IntVar(&opts.lcdPins.RS, "lcd-rs", lcd.DefaultPins.RS, "BCM pin for LCD register select")
	flag.IntVar(&opts.lcdPins.E, "lcd-e", lcd.DefaultPins.E, "BCM pin for LCD enable")
	flag.IntVar(&opts.lcdPins.D4, "lcd-d4", lcd.DefaultPins.D4, "BCM pin for LCD data 4")
	flag.IntVar(&opts.lcdPins.D5, "lcd-d5", lcd.DefaultPins.D5, "BCM pin for LCD data 5")
	flag.IntVar(&opts.lcdPins.D6, "lcd-d6", lcd.DefaultPins.D6, "BCM pin for LCD data 6")
	flag.IntVar(&opts.lcdPins.D7, "lcd-d7", lcd.DefaultPins.D7, "BCM pin for LCD data 7")
	logLevel := flag.String("log-level", "info", "Log level (trace, debug, info, warn)")

	flag.Parse()

	logger := newLogger(*logLevel)
	if err := run(opts, logger); err != nil {
		logger.Fatal().Err(err).Msg("controller stopped")
	}
}

func newLogger(level string) zerolog.Logger {
	var lvl zerolog.Level
	switch strings.ToLower(level) {
	case "trace":
		lvl = zerolog.TraceLevel
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	default:
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(
		zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339},
	).Level(lvl).With().Timestamp().Logger()
}

func run(opts options, logger zerolog.Logger) error {
	// Initialize the relay first and force it LOW; some relay boards
	// come up HIGH at boot.
	relay, err := gpio.NewRealRelay(opts.pin)
	if err != nil {
		return fmt.Errorf("init relay: %w", err)
	}
	defer relay.Close()
	if err := relay.Set(false); err != nil {
		return fmt.Errorf("force relay LOW: %w", err)
	}

	// The display is cosmetic: if it cannot be initialized the
	// controller still runs, it just runs headless.
	var display lcd.Display = lcd.Nop{}
	if opts.useLCD {
		d, err := lcd.NewRealDisplay(opts.lcdPins)
		if err != nil {
			logger.Error().Err(err).Msg("lcd init failed, running headless")
		} else {
			display = d
			defer d.Close()
		}
	}
	if err := display.Splash(opts.splash); err != nil {
		logger.Error().Err(err).Msg("splash render failed")
	}

	source := remote.NewClient(opts.host, opts.timeout,
		logger.With().Str("component", "remote").Logger())

	var publisher mqtt.Publisher = mqtt.NopPublisher{}
	var mqttStatus mqtt.ConnectionStatus
	if opts.broker != "off" {
		p, err := mqtt.NewRealPublisher(opts.broker,
			logger.With().Str("component", "mqtt").Logger())
		if err != nil {
			// Telemetry must never keep the brewer offline.
			logger.Warn().Err(err).Str("broker", opts.broker).Msg("mqtt connect failed, telemetry disabled")
		} else {
			publisher = p
			mqttStatus = p
		}
	}
	defer publisher.Close()

	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:      opts.poll.Milliseconds(),
		TimeoutMs:   opts.timeout.Milliseconds(),
		HeartbeatMs: opts.heartbeat.Milliseconds(),
		Host:        opts.host,
		Broker:      opts.broker,
		HTTPAddr:    opts.httpAddr,
		RelayPin:    opts.pin,
	})

	// Publish startup event with full status snapshot
	startupEvent := mqtt.SystemEvent{
		Timestamp:  time.Now(),
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(tracker.Snapshot(), "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		logger.Warn().Err(err).Msg("failed to publish startup event")
	}

	// Start HTTP status server
	if opts.httpAddr != "" {
		srv := web.New(opts.httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error().Err(err).Msg("http server error")
			}
		}()
		defer srv.Shutdown(context.Background())
		logger.Info().Str("addr", opts.httpAddr).Msg("http status server listening")
	}

	logger.Info().
		Int("pin", opts.pin).
		Str("host", opts.host).
		Dur("poll", opts.poll).
		Dur("timeout", opts.timeout).
		Msg("started")

	ticker := time.NewTicker(opts.poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	deps := loopDeps{
		source:     source,
		relay:      relay,
		display:    display,
		publisher:  publisher,
		mqttStatus: mqttStatus,
		tracker:    tracker,
		log:        logger,
		timeout:    opts.timeout,
		heartbeat:  opts.heartbeat,
	}
	return runLoop(logic.NewController(), deps, time.Now, ticker.C, sigCh)
}

// loopDeps bundles the collaborators the driver loop actuates.
type loopDeps struct {
	source     remote.Source
	relay      gpio.Relay
	display    lcd.Display
	publisher  mqtt.Publisher
	mqttStatus mqtt.ConnectionStatus
	tracker    *status.Tracker
	log        zerolog.Logger
	timeout    time.Duration
	heartbeat  time.Duration
}

// runLoop is the driver: poll, transition, render, sleep, forever.
// It returns nil on a signal (after parking the relay LOW) and an
// error on an unrecoverable hardware fault.
func runLoop(ctrl *logic.Controller, d loopDeps, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	lastHeartbeat := now()

	for {
		select {
		case s := <-sig:
			t := now()
			name := signalName(s)
			d.log.Info().Str("signal", name).Msg("shutting down")

			// Safety default: never leave the brewer running.
			if err := d.relay.Set(false); err != nil {
				d.log.Error().Err(err).Msg("relay safety-off failed")
			}

			// The display must not keep claiming "Brewing" after the
			// relay was forced off.
			if frame := ctrl.Park(t); frame != nil {
				if err := d.display.Render(*frame); err != nil {
					d.log.Error().Err(err).Msg("display write failed")
				} else {
					ctrl.MarkRendered(*frame)
				}
			}

			event := mqtt.SystemEvent{
				Timestamp: t,
				Event:     "SHUTDOWN",
				Reason:    name,
				Retained:  true,
			}
			if d.mqttStatus != nil {
				d.tracker.SetMQTTConnected(d.mqttStatus.IsConnected())
			}
			event.RawPayload = status.FormatStatusEvent(d.tracker.Snapshot(), "SHUTDOWN", name)
			if err := d.publisher.PublishSystem(event); err != nil {
				d.log.Warn().Err(err).Msg("failed to publish shutdown event")
			}
			return nil

		case <-tick:
			t := now()

			// Exactly one query per cycle, selected by state.
			ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
			var affirmative bool
			var err error
			if ctrl.State() == logic.StateBrewing {
				affirmative, err = d.source.ShouldStop(ctx)
			} else {
				affirmative, err = d.source.ShouldBrew(ctx)
			}
			cancel()
			if err != nil {
				// Treat the cycle as a negative directive; the loop
				// itself is the retry mechanism.
				d.log.Warn().Err(err).Msg("remote query failed")
				d.tracker.RemoteError(t, err)
				affirmative = false
			}

			step := ctrl.Tick(affirmative, t)

			// Relay before display: actuation must never wait on a
			// slow LCD write.
			if step.Relay != nil {
				if err := d.relay.Set(step.Relay.On); err != nil {
					// State and hardware may now disagree. Force LOW
					// and escalate.
					d.log.Error().Err(err).Msg("relay write failed")
					if offErr := d.relay.Set(false); offErr != nil {
						d.log.Error().Err(offErr).Msg("relay safety-off failed")
					}
					return fmt.Errorf("relay write: %w", err)
				}
			}

			if step.Event != nil {
				d.log.Info().
					Str("event", string(step.Event.Type)).
					Str("state", string(step.Event.State)).
					Msg("brew transition")
				if err := d.publisher.Publish(*step.Event); err != nil {
					d.log.Warn().Err(err).Msg("publish error")
					// Don't crash on publish failure
				}
			}

			if step.Frame != nil {
				if err := d.display.Render(*step.Frame); err != nil {
					// Unconfirmed: the controller re-issues the frame
					// next cycle.
					d.log.Error().Err(err).Msg("display write failed")
				} else {
					ctrl.MarkRendered(*step.Frame)
				}
			}

			d.tracker.Cycle(ctrl.State(), ctrl.Counts())
			if d.mqttStatus != nil {
				d.tracker.SetMQTTConnected(d.mqttStatus.IsConnected())
			}

			// Hours can pass with zero transitions; the heartbeat is
			// the liveness signal for an unattended appliance.
			if d.heartbeat > 0 && t.Sub(lastHeartbeat) >= d.heartbeat {
				lastHeartbeat = t
				hbEvent := mqtt.SystemEvent{
					Timestamp:  t,
					Event:      "HEARTBEAT",
					RawPayload: status.FormatStatusEvent(d.tracker.Snapshot(), "HEARTBEAT", ""),
				}
				if err := d.publisher.PublishSystem(hbEvent); err != nil {
					d.log.Warn().Err(err).Msg("heartbeat publish error")
				} else {
					d.log.Debug().Str("state", string(ctrl.State())).Msg("heartbeat published")
				}
			}
		}
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	default:
		return "UNKNOWN"
	}
}
