package coordinator

import (
	"log/slog"

	"github.com/dmitrymomot/beast/pkg/validator"
)

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithFocusFirst controls whether the first invalid field receives focus.
// Enabled by default.
func WithFocusFirst(enabled bool) Option {
	return func(c *Coordinator) {
		c.focusFirst = enabled
	}
}

// WithSummary enables the error summary after failed passes.
func WithSummary(enabled bool) Option {
	return func(c *Coordinator) {
		c.summary = enabled
	}
}

// WithOnFail sets the hook called with every failed verdict of a pass.
func WithOnFail(fn func(failed []validator.Verdict)) Option {
	return func(c *Coordinator) {
		c.onFail = fn
	}
}

// WithOnSuccess sets the hook called with the form data after a successful
// full form pass. Subset and step passes never call it.
func WithOnSuccess(fn func(data map[string]any)) Option {
	return func(c *Coordinator) {
		c.onSuccess = fn
	}
}

// WithSubmitter submits the form data after a successful full form pass.
func WithSubmitter(s Submitter) Option {
	return func(c *Coordinator) {
		c.submitter = s
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}
