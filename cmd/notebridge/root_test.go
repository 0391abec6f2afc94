package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/notebridge/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	reset := func() {
		configPath = ""
		statePath = ""
		headed = false
	}

	t.Run("defaults without flags", func(t *testing.T) {
		reset()
		t.Cleanup(reset)

		cfg, err := loadConfig()
		require.NoError(t, err)
		assert.Equal(t, config.Default().AppURL, cfg.AppURL)
		assert.True(t, cfg.Browser.Headless)
	})

	t.Run("state flag overrides the config path", func(t *testing.T) {
		reset()
		statePath = "/tmp/elsewhere/state.json"
		t.Cleanup(reset)

		cfg, err := loadConfig()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/elsewhere/state.json", cfg.StatePath)
	})

	t.Run("headed flag forces a visible browser", func(t *testing.T) {
		reset()
		headed = true
		t.Cleanup(reset)

		cfg, err := loadConfig()
		require.NoError(t, err)
		assert.False(t, cfg.Browser.Headless)
	})

	t.Run("missing explicit config file is an error", func(t *testing.T) {
		reset()
		configPath = "/tmp/does-not-exist/notebridge.yaml"
		t.Cleanup(reset)

		_, err := loadConfig()
		assert.Error(t, err)
	})
}
