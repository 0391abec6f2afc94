// Package session owns the persisted browser session state: checking it,
// loading and persisting the state file, and acquiring fresh state through
// an interactive login.
package session

import (
	"encoding/json"
	"strings"
)

// State is the storage-state bundle the automation driver produces and
// consumes: cookies plus per-origin browser storage. The file format is the
// driver's own; unknown fields are preserved only when the driver itself
// rewrites the file, so State is used for inspection and programmatic
// writes, never as the source of truth for round-tripping driver output.
type State struct {
	Cookies []Cookie `json:"cookies"`
	Origins []Origin `json:"origins,omitempty"`
}

// Cookie is one browser cookie within the session state.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path,omitempty"`
	Expires  float64 `json:"expires,omitempty"`
	HTTPOnly bool    `json:"httpOnly,omitempty"`
	Secure   bool    `json:"secure,omitempty"`
	SameSite string  `json:"sameSite,omitempty"`
}

// Origin holds the stored key/value pairs for one origin.
type Origin struct {
	Origin       string      `json:"origin"`
	LocalStorage []StorageKV `json:"localStorage,omitempty"`
}

// StorageKV is one localStorage entry.
type StorageKV struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ParseState decodes raw storage-state JSON.
func ParseState(data []byte) (*State, error) {
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// IdentityCookies returns the cookies whose domain contains the marker.
// At least one such cookie is what makes the state "authenticated".
func (s *State) IdentityCookies(marker string) []Cookie {
	var matched []Cookie
	for _, c := range s.Cookies {
		if strings.Contains(c.Domain, marker) {
			matched = append(matched, c)
		}
	}
	return matched
}
