package session

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/notebridge/pkg/browser"
)

// fakeRuntime records driver calls and writes a canned state file on capture.
type fakeRuntime struct {
	gotoURL    string
	savedPath  string
	closed     bool
	gotoErr    error
	saveErr    error
	savedState string
}

func (r *fakeRuntime) Page() browser.Page { return nil }

func (r *fakeRuntime) Goto(url string) error {
	r.gotoURL = url
	return r.gotoErr
}

func (r *fakeRuntime) WaitSettled() error { return nil }

func (r *fakeRuntime) SaveState(path string) error {
	r.savedPath = path
	if r.saveErr != nil {
		return r.saveErr
	}
	return writeFile(path, r.savedState)
}

func (r *fakeRuntime) Close() { r.closed = true }

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0600)
}

type fakeLauncher struct {
	runtime   *fakeRuntime
	launchErr error
	opts      browser.LaunchOptions
	calls     int
}

func (l *fakeLauncher) Launch(opts browser.LaunchOptions) (browser.Runtime, error) {
	l.calls++
	l.opts = opts
	if l.launchErr != nil {
		return nil, l.launchErr
	}
	return l.runtime, nil
}

func TestAcquirer_Run(t *testing.T) {
	t.Run("captures state after confirmation", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "state.json"), "google")
		rt := &fakeRuntime{savedState: `{"cookies":[{"name":"SID","value":"x","domain":".google.com"}]}`}
		launcher := &fakeLauncher{runtime: rt}
		acquirer := NewAcquirer(store, launcher, "https://notebooklm.google.com/")

		var phaseAtConfirm Phase
		acquirer.Confirm = func() error {
			phaseAtConfirm = acquirer.Phase()
			return nil
		}

		result := acquirer.Run()
		require.True(t, result.Success, result.Error)

		// Headed launch, navigation to the app root, confirmation blocked in
		// the right state, then capture at the store path.
		assert.False(t, launcher.opts.Headless)
		assert.Equal(t, "https://notebooklm.google.com/", rt.gotoURL)
		assert.Equal(t, PhaseAwaitingManualConfirmation, phaseAtConfirm)
		assert.Equal(t, store.Path(), rt.savedPath)
		assert.Equal(t, store.Path(), result.StatePath)
		assert.Contains(t, result.Message, "Authentication state saved")

		assert.True(t, rt.closed)
		assert.Equal(t, PhaseClosed, acquirer.Phase())
		assert.True(t, store.Check().Authenticated)
	})

	t.Run("premature confirmation still captures", func(t *testing.T) {
		// The acquirer does not re-validate login; an unauthenticated capture
		// succeeds here and is only caught later by Check.
		store := NewStore(filepath.Join(t.TempDir(), "state.json"), "google")
		rt := &fakeRuntime{savedState: `{"cookies":[]}`}
		acquirer := NewAcquirer(store, &fakeLauncher{runtime: rt}, "https://notebooklm.google.com/")

		result := acquirer.Run()
		require.True(t, result.Success)
		assert.False(t, store.Check().Authenticated)
	})

	t.Run("launch failure reports error without capture", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "state.json"), "google")
		launcher := &fakeLauncher{launchErr: fmt.Errorf("no driver")}
		acquirer := NewAcquirer(store, launcher, "https://notebooklm.google.com/")

		result := acquirer.Run()
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "failed to launch browser")
		assert.False(t, store.Exists())
	})

	t.Run("aborted confirmation closes browser without capture", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "state.json"), "google")
		rt := &fakeRuntime{}
		acquirer := NewAcquirer(store, &fakeLauncher{runtime: rt}, "https://notebooklm.google.com/")
		acquirer.Confirm = func() error { return fmt.Errorf("operator quit") }

		result := acquirer.Run()
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "authentication aborted")
		assert.Empty(t, rt.savedPath)
		assert.True(t, rt.closed)
		assert.False(t, store.Exists())
	})

	t.Run("capture failure still closes browser", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "state.json"), "google")
		rt := &fakeRuntime{saveErr: fmt.Errorf("disk full")}
		acquirer := NewAcquirer(store, &fakeLauncher{runtime: rt}, "https://notebooklm.google.com/")

		result := acquirer.Run()
		assert.False(t, result.Success)
		assert.True(t, rt.closed)
		assert.Equal(t, PhaseClosed, acquirer.Phase())
	})
}
