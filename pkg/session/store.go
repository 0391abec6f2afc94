package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// lockStaleAge is how old a leftover lock file must be before a new
// invocation reclaims it. Covers crashed runs without wedging the store.
const lockStaleAge = 10 * time.Minute

// CheckResult is the structured answer to "is there a usable session?".
type CheckResult struct {
	Authenticated bool   `json:"authenticated"`
	Message       string `json:"message"`
	CookieCount   int    `json:"cookie_count,omitempty"`
}

// Store reads and writes the persisted session-state file. It is the only
// component that knows the file's location; everything else receives the
// store as an explicit dependency.
type Store struct {
	path   string
	marker string
}

// NewStore creates a store for the state file at path. marker is the
// substring a cookie domain must contain for the state to count as
// authenticated.
func NewStore(path, marker string) *Store {
	return &Store{path: path, marker: marker}
}

// Path returns the state file location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a state file is present at all.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Check inspects the persisted state and reports whether it holds an
// authenticated session. Every failure path maps to a structured
// not-authenticated result; Check never returns an error.
func (s *Store) Check() CheckResult {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return CheckResult{
				Authenticated: false,
				Message:       "No authentication state found. Run authentication first.",
			}
		}
		return CheckResult{
			Authenticated: false,
			Message:       fmt.Sprintf("Error reading state: %v", err),
		}
	}

	state, err := ParseState(data)
	if err != nil {
		return CheckResult{
			Authenticated: false,
			Message:       fmt.Sprintf("Error reading state: %v", err),
		}
	}

	matched := state.IdentityCookies(s.marker)
	if len(matched) == 0 {
		return CheckResult{
			Authenticated: false,
			Message:       "No identity cookies found in state. Re-authenticate.",
		}
	}

	return CheckResult{
		Authenticated: true,
		Message:       "Authentication state found.",
		CookieCount:   len(matched),
	}
}

// Load reads and parses the persisted state.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	state, err := ParseState(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return state, nil
}

// Persist overwrites the state file with an atomic temp-and-rename write.
// Single-writer: cross-process exclusion is only the advisory Lock below.
func (s *Store) Persist(state *State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tempPath := s.path + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(state); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp state file: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp state file: %w", err)
	}
	return nil
}

// Lock takes a best-effort advisory lock on the state file so two
// overlapping invocations fail fast instead of racing on the final
// overwrite. A lock older than lockStaleAge is treated as abandoned and
// reclaimed. Callers must Unlock on every exit path.
func (s *Store) Lock() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	lockPath := s.lockPath()
	for attempt := 0; attempt < 2; attempt++ {
		file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			fmt.Fprintf(file, "%d\n", os.Getpid())
			file.Close()
			return nil
		}
		if !os.IsExist(err) {
			return fmt.Errorf("failed to create lock file: %w", err)
		}

		info, statErr := os.Stat(lockPath)
		if statErr == nil && time.Since(info.ModTime()) > lockStaleAge {
			// Abandoned by a crashed run; reclaim and retry once.
			os.Remove(lockPath)
			continue
		}
		return fmt.Errorf("state file is locked by another invocation (remove %s if stale)", lockPath)
	}
	return fmt.Errorf("state file is locked by another invocation")
}

// Unlock releases the advisory lock.
func (s *Store) Unlock() {
	os.Remove(s.lockPath())
}

func (s *Store) lockPath() string {
	return s.path + ".lock"
}
