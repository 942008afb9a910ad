// File: internal/config/config_test.go
package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Constructor and Defaults Tests --

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger().Level)
	assert.Equal(t, "webpilot", cfg.Logger().ServiceName)
	assert.Equal(t, "chrome", cfg.Browser().Kind)
	assert.True(t, cfg.Browser().Incognito)
	assert.True(t, cfg.Browser().Maximize)
	assert.Equal(t, 10*time.Second, cfg.Browser().ImplicitWait)
	assert.Equal(t, 3, cfg.Browser().LaunchAttempts)
	assert.Equal(t, 30*time.Second, cfg.Waits().Explicit)
	assert.Equal(t, 40*time.Second, cfg.Waits().PageContains)
	assert.Equal(t, 10*time.Second, cfg.Waits().ClickProbe)
	assert.Equal(t, 500*time.Millisecond, cfg.Waits().PollInterval)
}

// -- Validation Logic Tests --

func TestConfigValidation(t *testing.T) {
	t.Run("Valid defaults", func(t *testing.T) {
		cfg := NewDefaultConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Unknown browser kind", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.SetBrowserKind("safari")
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "kind must be one of chrome, edge, firefox")
	})

	t.Run("Blank browser kind is allowed", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.SetBrowserKind("")
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Launch attempts", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.BrowserCfg.LaunchAttempts = 0
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "launch_attempts must be a positive integer")
	})

	t.Run("Wait budgets", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.WaitsCfg.ClickProbe = 0
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive durations")

		cfg = NewDefaultConfig()
		cfg.WaitsCfg.PollInterval = -time.Second
		err = cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "poll_interval must be a positive duration")
	})
}

// -- Viper Integration Tests --

func TestNewConfigFromViper(t *testing.T) {
	t.Run("YAML overrides defaults", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.SetConfigType("yaml")
		yaml := []byte(`
browser:
  kind: firefox
  incognito: false
  remote_url: http://grid:4444/wd/hub
waits:
  explicit: 5s
screenshots:
  root: /tmp/project
`)
		require.NoError(t, v.ReadConfig(bytes.NewBuffer(yaml)))

		cfg, err := NewConfigFromViper(v)
		require.NoError(t, err)
		assert.Equal(t, "firefox", cfg.Browser().Kind)
		assert.False(t, cfg.Browser().Incognito)
		assert.Equal(t, "http://grid:4444/wd/hub", cfg.Browser().RemoteURL)
		assert.Equal(t, 5*time.Second, cfg.Waits().Explicit)
		assert.Equal(t, 40*time.Second, cfg.Waits().PageContains, "untouched keys keep their defaults")
		assert.Equal(t, "/tmp/project", cfg.Screenshots().Root)
	})

	t.Run("Browser parameter from environment", func(t *testing.T) {
		t.Setenv("WEBPILOT_BROWSER", "edge")
		v := viper.New()
		SetDefaults(v)

		cfg, err := NewConfigFromViper(v)
		require.NoError(t, err)
		assert.Equal(t, "edge", cfg.Browser().Kind)
	})

	t.Run("Screenshot root defaults to working directory", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		v := viper.New()
		SetDefaults(v)

		cfg, err := NewConfigFromViper(v)
		require.NoError(t, err)
		assert.Equal(t, dir, cfg.Screenshots().Root)
	})

	t.Run("Invalid config is rejected", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.Set("browser.kind", "opera")

		_, err := NewConfigFromViper(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}
