package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "https://notebooklm.google.com/", cfg.AppURL)
	assert.Equal(t, "google", cfg.IdentityMarker)
	assert.NotEmpty(t, cfg.StatePath)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 10*time.Second, cfg.Timing.NotebookListWait)
	assert.NotEmpty(t, cfg.Selectors.AddSource)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default().AppURL, cfg.AppURL)
	})

	t.Run("file overlays defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
app_url: https://notebooks.example.com/
state_path: /tmp/custom-state.json
browser:
  headless: false
selectors:
  add_source:
    - 'button#add'
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "https://notebooks.example.com/", cfg.AppURL)
		assert.Equal(t, "/tmp/custom-state.json", cfg.StatePath)
		assert.False(t, cfg.Browser.Headless)
		assert.Equal(t, []string{"button#add"}, cfg.Selectors.AddSource)
		// Untouched sections keep their defaults.
		assert.Equal(t, "google", cfg.IdentityMarker)
		assert.Equal(t, 10*time.Second, cfg.Timing.NotebookListWait)
	})

	t.Run("missing explicit file errors", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("app_url: [unclosed"), 0600))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty app url", func(c *Config) { c.AppURL = "" }},
		{"relative app url", func(c *Config) { c.AppURL = "notebooklm" }},
		{"empty identity marker", func(c *Config) { c.IdentityMarker = "" }},
		{"empty state path", func(c *Config) { c.StatePath = "" }},
		{"no notebook card selector", func(c *Config) { c.Selectors.NotebookCard = nil }},
		{"bad allow pattern", func(c *Config) { c.Upload.AllowedPatterns = []string{"[unterminated"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
