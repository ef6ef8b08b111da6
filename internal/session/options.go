package session

import (
	"github.com/danielpatrickdp/unwind/go-controller/internal/patternmem"
	"github.com/danielpatrickdp/unwind/go-controller/internal/timedwait"
	"go.uber.org/zap"
)

// Option configures a Controller.
type Option func(*Controller)

// WithStore sets the explained-pattern store. Defaults to an in-memory store.
func WithStore(s patternmem.Store) Option {
	return func(c *Controller) {
		if s != nil {
			c.store = s
		}
	}
}

// WithWaiter sets the timed-wait provider. Defaults to timedwait.Instant.
func WithWaiter(w timedwait.Provider) Option {
	return func(c *Controller) {
		if w != nil {
			c.waiter = w
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDurations overrides the silence lengths. Zero fields keep defaults.
func WithDurations(d Durations) Option {
	return func(c *Controller) {
		if d.Main > 0 {
			c.durations.Main = d.Main
		}
		if d.Dense > 0 {
			c.durations.Dense = d.Dense
		}
		if d.Spacious > 0 {
			c.durations.Spacious = d.Spacious
		}
		if d.Check > 0 {
			c.durations.Check = d.Check
		}
	}
}

// WithOrientation replaces the onboarding screens. Index 1, when present,
// is the safety gate.
func WithOrientation(screens []string) Option {
	return func(c *Controller) {
		c.screens = append([]string(nil), screens...)
	}
}

// WithInitialState starts the controller somewhere other than entry routing.
func WithInitialState(s State) Option {
	return func(c *Controller) {
		if s >= 0 && s < stateCount {
			c.state = s
		}
	}
}

// WithSessionID fixes the session id instead of generating a UUIDv7.
func WithSessionID(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.id = id
		}
	}
}
