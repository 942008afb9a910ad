// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Browser() BrowserConfig
	Waits() WaitsConfig
	Screenshots() ScreenshotsConfig

	// Browser Setters
	SetBrowserKind(string)
	SetBrowserIncognito(bool)
	SetBrowserRemoteURL(string)
}

// Config holds the entire application configuration.
// Sections are exported for viper but callers should go through the Interface getters.
type Config struct {
	LoggerCfg      LoggerConfig      `mapstructure:"logger" yaml:"logger"`
	BrowserCfg     BrowserConfig     `mapstructure:"browser" yaml:"browser"`
	WaitsCfg       WaitsConfig       `mapstructure:"waits" yaml:"waits"`
	ScreenshotsCfg ScreenshotsConfig `mapstructure:"screenshots" yaml:"screenshots"`
}

var _ Interface = (*Config)(nil)

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig           { return c.LoggerCfg }
func (c *Config) Browser() BrowserConfig         { return c.BrowserCfg }
func (c *Config) Waits() WaitsConfig             { return c.WaitsCfg }
func (c *Config) Screenshots() ScreenshotsConfig { return c.ScreenshotsCfg }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetBrowserKind(k string)      { c.BrowserCfg.Kind = k }
func (c *Config) SetBrowserIncognito(b bool)   { c.BrowserCfg.Incognito = b }
func (c *Config) SetBrowserRemoteURL(u string) { c.BrowserCfg.RemoteURL = u }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// BrowserConfig controls how sessions are launched.
type BrowserConfig struct {
	// Kind is one of chrome, edge or firefox. Blank means chrome.
	Kind string `mapstructure:"kind" yaml:"kind"`
	// Incognito adds the private-browsing argument for the selected kind.
	Incognito      bool          `mapstructure:"incognito" yaml:"incognito"`
	RemoteURL      string        `mapstructure:"remote_url" yaml:"remote_url"`
	LaunchAttempts int           `mapstructure:"launch_attempts" yaml:"launch_attempts"`
	ImplicitWait   time.Duration `mapstructure:"implicit_wait" yaml:"implicit_wait"`
	Maximize       bool          `mapstructure:"maximize" yaml:"maximize"`
}

// WaitsConfig holds the explicit wait budgets used by the action facade.
type WaitsConfig struct {
	Explicit     time.Duration `mapstructure:"explicit" yaml:"explicit"`
	PageContains time.Duration `mapstructure:"page_contains" yaml:"page_contains"`
	ClickProbe   time.Duration `mapstructure:"click_probe" yaml:"click_probe"`
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
}

// ScreenshotsConfig locates the project root under which the screenshot
// directory is created. Empty means the working directory at capture time.
type ScreenshotsConfig struct {
	Root string `mapstructure:"root" yaml:"root"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "webpilot")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")

	// -- Browser --
	v.SetDefault("browser.kind", "chrome")
	v.SetDefault("browser.incognito", true)
	v.SetDefault("browser.remote_url", "http://127.0.0.1:4444/wd/hub")
	v.SetDefault("browser.launch_attempts", 3)
	v.SetDefault("browser.implicit_wait", "10s")
	v.SetDefault("browser.maximize", true)

	// -- Waits --
	v.SetDefault("waits.explicit", "30s")
	v.SetDefault("waits.page_contains", "40s")
	v.SetDefault("waits.click_probe", "10s")
	v.SetDefault("waits.poll_interval", "500ms")

	// -- Screenshots --
	v.SetDefault("screenshots.root", "")
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	// The browser parameter keeps its historical unprefixed name.
	_ = v.BindEnv("browser.kind", "WEBPILOT_BROWSER", "browser")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.ScreenshotsCfg.Root == "" {
		if wd, err := os.Getwd(); err == nil {
			cfg.ScreenshotsCfg.Root = wd
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if err := c.BrowserCfg.Validate(); err != nil {
		return fmt.Errorf("browser configuration invalid: %w", err)
	}
	if err := c.WaitsCfg.Validate(); err != nil {
		return fmt.Errorf("waits configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the browser section.
func (b *BrowserConfig) Validate() error {
	switch strings.ToLower(strings.TrimSpace(b.Kind)) {
	case "", "chrome", "edge", "firefox":
	default:
		return fmt.Errorf("kind must be one of chrome, edge, firefox (got %q)", b.Kind)
	}
	if b.LaunchAttempts <= 0 {
		return fmt.Errorf("launch_attempts must be a positive integer")
	}
	if b.ImplicitWait < 0 {
		return fmt.Errorf("implicit_wait must not be negative")
	}
	return nil
}

// Validate checks the wait budgets.
func (w *WaitsConfig) Validate() error {
	if w.Explicit <= 0 || w.PageContains <= 0 || w.ClickProbe <= 0 {
		return fmt.Errorf("explicit, page_contains and click_probe must be positive durations")
	}
	if w.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be a positive duration")
	}
	return nil
}
