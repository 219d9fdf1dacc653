// Package stream maintains the long-lived server-push connection that keeps
// the store fresh without polling. A connection attempt is always gated by a
// health probe so a down or half-deployed backend produces quiet backoff
// instead of noisy repeated failures.
package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"gomelclient/pkg/logger"
	"gomelclient/pkg/models"
)

type State string

const (
	StateIdle        State = "idle"
	StateHealthCheck State = "health_check"
	StateConnecting  State = "connecting"
	StateOpen        State = "open"
	StateBackoffWait State = "backoff_wait"
	StateClosed      State = "closed"
)

// Sink receives event deltas while the channel is open. The store
// implements it.
type Sink interface {
	BookingCreated(ctx context.Context, data json.RawMessage)
	PayoutCreated(ctx context.Context, data json.RawMessage)
	PayoutUpdated(ctx context.Context, data json.RawMessage)
}

type Config struct {
	BaseURL       string
	HealthTimeout time.Duration
	BackoffBase   time.Duration
	BackoffMax    time.Duration
}

// Channel is one reconnecting push-notification client. It holds at most
// one open connection; the owner tears the whole channel down by cancelling
// the Run context whenever the identity becomes fully absent.
type Channel struct {
	cfg  Config
	sink Sink
	log  logger.ILogger
	http *http.Client

	mu      sync.Mutex
	state   State
	attempt int
}

func New(cfg Config, sink Sink, log logger.ILogger) *Channel {
	if cfg.HealthTimeout <= 0 {
		cfg.HealthTimeout = 5 * time.Second
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = time.Second
	}
	if cfg.BackoffMax <= 0 {
		cfg.BackoffMax = 30 * time.Second
	}
	return &Channel{
		cfg:   cfg,
		sink:  sink,
		log:   log,
		http:  &http.Client{},
		state: StateIdle,
	}
}

func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Channel) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Backoff returns the wait before retry number attempt (zero-based):
// base doubled per consecutive failure, capped at max. The counter resets
// only on a successful open.
func Backoff(base, max time.Duration, attempt int) time.Duration {
	if attempt > 30 {
		attempt = 30
	}
	d := base << uint(attempt)
	if d > max || d <= 0 {
		return max
	}
	return d
}

// Run drives the state machine until ctx is cancelled. Failures retry
// forever; the channel is expected to reconnect eventually once the backend
// recovers.
func (c *Channel) Run(ctx context.Context) {
	defer c.setState(StateClosed)

	for {
		c.setState(StateHealthCheck)
		if !c.healthy(ctx) {
			if ctx.Err() != nil {
				return
			}
			if !c.wait(ctx) {
				return
			}
			continue
		}

		c.setState(StateConnecting)
		err := c.consume(ctx)
		if ctx.Err() != nil {
			return
		}
		c.log.Debug("stream: connection lost", logger.Error(err))
		if !c.wait(ctx) {
			return
		}
	}
}

// wait sleeps for the current backoff delay; false means ctx was cancelled.
func (c *Channel) wait(ctx context.Context) bool {
	c.setState(StateBackoffWait)

	c.mu.Lock()
	delay := Backoff(c.cfg.BackoffBase, c.cfg.BackoffMax, c.attempt)
	c.attempt++
	c.mu.Unlock()

	c.log.Debug("stream: backing off", logger.Duration("delay", delay))
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (c *Channel) healthy(ctx context.Context) bool {
	hctx, cancel := context.WithTimeout(ctx, c.cfg.HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(hctx, http.MethodGet, c.cfg.BaseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// consume opens the event stream and dispatches events until the stream
// errors or closes. The backoff counter resets to zero once the stream is
// open.
func (c *Channel) consume(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/events", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream: unexpected status %d", resp.StatusCode)
	}

	c.mu.Lock()
	c.state = StateOpen
	c.attempt = 0
	c.mu.Unlock()
	c.log.Info("stream: open")

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var event string
	var data strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			c.dispatch(ctx, event, data.String())
			event = ""
			data.Reset()
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		default:
			// comments and unknown fields are ignored
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return fmt.Errorf("stream: closed by server")
}

// dispatch unwraps the event envelope and hands the delta to the sink.
// Unparseable bodies and envelopes without a data field are discarded; a bad
// event must never take the channel down.
func (c *Channel) dispatch(ctx context.Context, event, raw string) {
	if event == "" || raw == "" {
		return
	}

	var envelope models.EventEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		c.log.Debug("stream: dropping unparseable event", logger.String("event", event), logger.Error(err))
		return
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		c.log.Debug("stream: dropping event without data", logger.String("event", event))
		return
	}

	switch event {
	case models.EventBookingCreated:
		c.sink.BookingCreated(ctx, envelope.Data)
	case models.EventPayoutCreated:
		c.sink.PayoutCreated(ctx, envelope.Data)
	case models.EventPayoutUpdated:
		c.sink.PayoutUpdated(ctx, envelope.Data)
	default:
		c.log.Debug("stream: ignoring unknown event", logger.String("event", event))
	}
}
