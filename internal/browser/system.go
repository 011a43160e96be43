package browser

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"time"
)

// System opens URLs with the desktop's default browser.
type System struct {
	timeout time.Duration
	goos    string
	run     func(ctx context.Context, name string, args ...string) error
}

// NewSystem builds a System opener for the running OS.
func NewSystem(timeout time.Duration) *System {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &System{timeout: timeout, goos: runtime.GOOS, run: runCommand}
}

func (s *System) Open(ctx context.Context, url string) error {
	name, args := command(s.goos, url)
	if name == "" {
		return fmt.Errorf("%w: no opener for %s", ErrUnavailable, s.goos)
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.run(ctx, name, args...); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

func (s *System) Close() error { return nil }

func command(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}
	default:
		return "", nil
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}
