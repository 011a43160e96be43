// Package browser opens pages for the user on the local machine. It never
// fills or submits anything.
package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnavailable is returned when no browser can be driven.
var ErrUnavailable = errors.New("browser unavailable")

// Opener opens url in a browser visible to the user.
type Opener interface {
	Open(ctx context.Context, url string) error
	Close() error
}

// Options configures New.
type Options struct {
	Mode       string // chromedp, system or none
	ChromePath string
	Timeout    time.Duration
}

// New returns the opener for the configured mode.
func New(opts Options) (Opener, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Mode)) {
	case "chromedp":
		return NewChrome(opts.ChromePath, opts.Timeout), nil
	case "", "system":
		return NewSystem(opts.Timeout), nil
	case "none":
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("unknown browser mode %q", opts.Mode)
	}
}

// Disabled reports ErrUnavailable for every open.
type Disabled struct{}

func (Disabled) Open(ctx context.Context, url string) error {
	return fmt.Errorf("%w: browser automation is disabled", ErrUnavailable)
}

func (Disabled) Close() error { return nil }
