// Package llm defines the streaming text-generation contract used for
// profile inference and the fold that reassembles a streamed reply.
package llm

import (
	"context"
	"iter"
	"strings"

	"jobx-backend/internal/shared/apperr"
)

// Streamer sends one single-turn prompt and yields the reply as an ordered
// sequence of text fragments. A non-nil error ends the sequence.
type Streamer interface {
	Stream(ctx context.Context, prompt string) iter.Seq2[string, error]
}

// Collect folds a fragment sequence into one string. Empty fragments are
// skipped; order is preserved and nothing is deduplicated.
func Collect(seq iter.Seq2[string, error]) (string, error) {
	var b strings.Builder
	for chunk, err := range seq {
		if err != nil {
			return b.String(), err
		}
		if chunk == "" {
			continue
		}
		b.WriteString(chunk)
	}
	return b.String(), nil
}

// ErrNotConfigured is returned when no provider credentials are available.
var ErrNotConfigured = apperr.Configuration(
	"llm_not_configured",
	"Gemini AI not configured. Please set GEMINI_API_KEY in environment variables.",
)

// PlaceholderClient stands in for a provider that could not be built. Every
// call fails with Err, or ErrNotConfigured when Err is nil, before any
// network access.
type PlaceholderClient struct {
	Err error
}

// Stream yields the configuration error.
func (p PlaceholderClient) Stream(ctx context.Context, prompt string) iter.Seq2[string, error] {
	_ = ctx
	_ = prompt
	err := p.Err
	if err == nil {
		err = ErrNotConfigured
	}
	return func(yield func(string, error) bool) {
		yield("", err)
	}
}

// Fragments returns a Streamer replaying fixed fragments. Used by tests and
// the offline CLI mode.
type Fragments []string

func (f Fragments) Stream(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, chunk := range f {
			if err := ctx.Err(); err != nil {
				yield("", err)
				return
			}
			if !yield(chunk, nil) {
				return
			}
		}
	}
}
