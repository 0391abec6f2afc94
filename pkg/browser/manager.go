package browser

import (
	"fmt"
	"io"
	"time"

	"github.com/playwright-community/playwright-go"
)

// LaunchOptions configures one browser run.
type LaunchOptions struct {
	// Headless controls whether the browser shows a window.
	Headless bool

	// StatePath, when set, restores the persisted storage state into the
	// new browser context.
	StatePath string

	// Viewport dimensions for the context.
	ViewportWidth  int
	ViewportHeight int

	// DefaultTimeout applies to element operations on the page.
	DefaultTimeout time.Duration
}

// Runtime is one live browser: a launched browser, a context (optionally
// restored from persisted state) and a single page. Exactly one Runtime
// exists per invocation.
type Runtime interface {
	// Page returns the workflow-facing view of the runtime's page.
	Page() Page

	// Goto navigates the page to url.
	Goto(url string) error

	// WaitSettled blocks until network activity settles.
	WaitSettled() error

	// SaveState writes the context's current storage state to path, in the
	// driver's own format.
	SaveState(path string) error

	// Close tears the page, context and browser down. Errors during
	// teardown are discarded; Close is safe on every exit path.
	Close()
}

// Manager owns the Playwright driver process for one invocation.
type Manager struct {
	pw      *playwright.Playwright
	started bool
}

// NewManager creates an unstarted manager.
func NewManager() *Manager {
	return &Manager{}
}

// Start installs (if needed) and starts the Playwright driver. A failure here
// means the automation capability is missing; callers report it before any
// browser is touched.
func (m *Manager) Start() error {
	if m.started {
		return nil
	}

	// Discard driver output so it cannot contaminate the JSON result stream.
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("playwright driver unavailable: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	m.pw = pw
	m.started = true
	return nil
}

// Launch starts a Chromium browser with a fresh context and page.
func (m *Manager) Launch(opts LaunchOptions) (Runtime, error) {
	if !m.started {
		return nil, fmt.Errorf("browser manager not started")
	}

	if opts.ViewportWidth == 0 {
		opts.ViewportWidth = 1280
	}
	if opts.ViewportHeight == 0 {
		opts.ViewportHeight = 720
	}
	if opts.DefaultTimeout == 0 {
		opts.DefaultTimeout = 30 * time.Second
	}

	b, err := m.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.ViewportWidth,
			Height: opts.ViewportHeight,
		},
	}
	if opts.StatePath != "" {
		contextOpts.StorageStatePath = playwright.String(opts.StatePath)
	}

	context, err := b.NewContext(contextOpts)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		b.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(float64(opts.DefaultTimeout.Milliseconds()))

	return &runtime{
		browser: b,
		context: context,
		page:    page,
	}, nil
}

// Stop shuts the Playwright driver down.
func (m *Manager) Stop() error {
	if !m.started || m.pw == nil {
		return nil
	}
	m.started = false
	if err := m.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return nil
}

type runtime struct {
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
}

func (r *runtime) Page() Page {
	return AdaptPage(r.page)
}

func (r *runtime) Goto(url string) error {
	if _, err := r.page.Goto(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

func (r *runtime) WaitSettled() error {
	return r.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
}

func (r *runtime) SaveState(path string) error {
	if _, err := r.context.StorageState(path); err != nil {
		return fmt.Errorf("failed to capture storage state: %w", err)
	}
	return nil
}

func (r *runtime) Close() {
	_ = r.page.Close()    // Ignore errors, continue cleanup
	_ = r.context.Close() // Ignore errors, continue cleanup
	_ = r.browser.Close() // Ignore errors, continue cleanup
}
