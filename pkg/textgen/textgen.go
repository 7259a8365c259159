// Package textgen is the seam between the nudge engine and an external
// chat-completion provider.
package textgen

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured is returned by generators that have no provider behind them.
	ErrNotConfigured = errors.New("text generation is not configured")
	// ErrEmptyReply is returned when the provider answers without usable text.
	ErrEmptyReply = errors.New("text generation returned an empty reply")
)

// Prompt is a single-turn request: a system persona plus the user message.
type Prompt struct {
	System string
	User   string
}

// Generator produces a reply for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// Noop is the generator used when no provider is configured.
type Noop struct{}

// Generate always fails with ErrNotConfigured.
func (Noop) Generate(context.Context, Prompt) (string, error) {
	return "", ErrNotConfigured
}
