package session

import (
	"fmt"

	"github.com/entrhq/notebridge/pkg/browser"
)

// Phase is the acquirer's position in its state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseBrowserLaunched
	PhaseAwaitingManualConfirmation
	PhaseStateCaptured
	PhaseClosed
)

// Launcher starts one browser runtime. Satisfied by browser.Manager;
// tests substitute stubs.
type Launcher interface {
	Launch(opts browser.LaunchOptions) (browser.Runtime, error)
}

// AuthResult is the structured outcome of one interactive authentication.
type AuthResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	StatePath string `json:"state_path,omitempty"`
}

// Acquirer runs the interactive login flow: launch a headed browser at the
// app root, block until the operator confirms they have logged in, then
// capture and persist the session state.
//
// The confirmation wait is indefinite by design; there is no timeout and no
// cancellation beyond the operator abandoning the prompt. Capture happens
// unconditionally on confirmation: a premature confirmation silently yields
// an unauthenticated state file, which Check detects afterwards.
type Acquirer struct {
	store    *Store
	launcher Launcher
	appURL   string
	phase    Phase

	// Confirm blocks until the operator signals that login is complete.
	// It must write nothing to stdout.
	Confirm func() error
}

// NewAcquirer creates an acquirer persisting through store.
func NewAcquirer(store *Store, launcher Launcher, appURL string) *Acquirer {
	return &Acquirer{
		store:    store,
		launcher: launcher,
		appURL:   appURL,
		phase:    PhaseIdle,
		Confirm:  func() error { return nil },
	}
}

// Phase returns the acquirer's current state-machine phase.
func (a *Acquirer) Phase() Phase {
	return a.phase
}

// Run executes the acquisition flow. The browser is torn down on every exit
// path, including capture failure.
func (a *Acquirer) Run() AuthResult {
	// Always headed: the operator has to see the login page.
	rt, err := a.launcher.Launch(browser.LaunchOptions{Headless: false})
	if err != nil {
		return AuthResult{Success: false, Error: fmt.Sprintf("failed to launch browser: %v", err)}
	}
	defer func() {
		rt.Close()
		a.phase = PhaseClosed
	}()
	a.phase = PhaseBrowserLaunched

	if err := rt.Goto(a.appURL); err != nil {
		return AuthResult{Success: false, Error: err.Error()}
	}

	a.phase = PhaseAwaitingManualConfirmation
	if err := a.Confirm(); err != nil {
		return AuthResult{Success: false, Error: fmt.Sprintf("authentication aborted: %v", err)}
	}

	if err := a.store.Lock(); err != nil {
		return AuthResult{Success: false, Error: err.Error()}
	}
	defer a.store.Unlock()

	if err := rt.SaveState(a.store.Path()); err != nil {
		return AuthResult{Success: false, Error: err.Error()}
	}
	a.phase = PhaseStateCaptured

	return AuthResult{
		Success:   true,
		Message:   fmt.Sprintf("Authentication state saved to %s", a.store.Path()),
		StatePath: a.store.Path(),
	}
}
