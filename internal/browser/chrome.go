package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"jobx-backend/internal/shared/telemetry"
)

const defaultTimeout = 30 * time.Second

// Chrome drives one visible Chrome window with chromedp and opens every URL
// in a new tab. The browser starts on first use and lives until Close.
type Chrome struct {
	execPath string
	timeout  time.Duration

	mu          sync.Mutex
	browserCtx  context.Context
	cancelAlloc context.CancelFunc
	cancelBrows context.CancelFunc
	tabCancels  []context.CancelFunc
}

// NewChrome builds a Chrome opener. execPath overrides the Chrome binary.
func NewChrome(execPath string, timeout time.Duration) *Chrome {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Chrome{execPath: execPath, timeout: timeout}
}

func (c *Chrome) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", false),
		chromedp.Flag("disable-gpu", false),
		chromedp.Flag("start-maximized", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
	)
	if c.execPath != "" {
		opts = append(opts, chromedp.ExecPath(c.execPath))
	}
	return opts
}

// start launches the browser if it is not running. Callers hold c.mu.
func (c *Chrome) start() error {
	if c.browserCtx != nil && c.browserCtx.Err() == nil {
		return nil
	}
	c.release()

	// The browser outlives any single request.
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), c.allocatorOptions()...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return fmt.Errorf("%w: start chrome: %v", ErrUnavailable, err)
	}
	c.browserCtx = browserCtx
	c.cancelAlloc = cancelAlloc
	c.cancelBrows = cancelBrowser
	telemetry.Info("browser.started", map[string]any{"exec_path": c.execPath})
	return nil
}

// Open navigates a new tab to url. The tab stays open for the user.
func (c *Chrome) Open(ctx context.Context, url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.start(); err != nil {
		return err
	}

	tabCtx, cancelTab := chromedp.NewContext(c.browserCtx)
	// The first Run binds the new target to tabCtx; cancelling tabCtx closes it.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		return fmt.Errorf("open tab: %w", err)
	}
	c.tabCancels = append(c.tabCancels, cancelTab)

	navCtx, cancelNav := context.WithTimeout(tabCtx, c.timeout)
	defer cancelNav()
	stop := context.AfterFunc(ctx, cancelNav)
	defer stop()

	if err := chromedp.Run(navCtx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// Close shuts down every tab and the browser.
func (c *Chrome) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.release()
	return nil
}

func (c *Chrome) release() {
	for _, cancel := range c.tabCancels {
		cancel()
	}
	c.tabCancels = nil
	if c.cancelBrows != nil {
		c.cancelBrows()
		c.cancelBrows = nil
	}
	if c.cancelAlloc != nil {
		c.cancelAlloc()
		c.cancelAlloc = nil
	}
	c.browserCtx = nil
}
