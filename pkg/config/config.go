// Package config defines the explicit configuration value shared by every
// notebridge component. There is no process-global state: callers load a
// Config once (defaults, optionally overlaid with a YAML file) and pass it
// into constructors.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Config is the full notebridge configuration.
type Config struct {
	// AppURL is the root URL of the target notebook application.
	AppURL string `yaml:"app_url"`

	// IdentityMarker is the substring a cookie domain must contain for the
	// session state to count as authenticated.
	IdentityMarker string `yaml:"identity_marker"`

	// StatePath is where the persisted browser session state lives.
	StatePath string `yaml:"state_path"`

	// Browser configures the automation driver.
	Browser BrowserConfig `yaml:"browser"`

	// Timing holds the wait and settle tunables for UI choreography.
	Timing TimingConfig `yaml:"timing"`

	// Selectors holds the ordered selector strategies per logical UI target.
	Selectors SelectorConfig `yaml:"selectors"`

	// Upload configures source upload policy.
	Upload UploadConfig `yaml:"upload"`
}

// BrowserConfig configures the automation driver.
type BrowserConfig struct {
	// Headless controls whether automated runs show a browser window.
	// The interactive authentication flow is always headed regardless.
	Headless bool `yaml:"headless"`

	// Viewport dimensions for new browser contexts.
	ViewportWidth  int `yaml:"viewport_width"`
	ViewportHeight int `yaml:"viewport_height"`

	// DefaultTimeout is the driver-level default for element operations.
	DefaultTimeout time.Duration `yaml:"default_timeout"`
}

// TimingConfig names every wait used by the UI workflows. The settle delays
// are policy, not protocol: best-effort pauses for an uninstrumented UI, kept
// as tunables rather than magic literals.
type TimingConfig struct {
	// NotebookListWait bounds the wait for the notebook card pattern to
	// render. Expiry is treated as "zero notebooks", not as an error.
	NotebookListWait time.Duration `yaml:"notebook_list_wait"`

	// SettleGrace is the pause after the network settles on the app root.
	SettleGrace time.Duration `yaml:"settle_grace"`

	// OpenSettle follows clicking into an existing notebook.
	OpenSettle time.Duration `yaml:"open_settle"`

	// CreateSettle follows clicking the notebook creation control.
	CreateSettle time.Duration `yaml:"create_settle"`

	// NameSettle follows submitting the notebook name prompt.
	NameSettle time.Duration `yaml:"name_settle"`

	// PanelSettle follows opening the add-source panel.
	PanelSettle time.Duration `yaml:"panel_settle"`

	// OptionSettle follows selecting a source-type option.
	OptionSettle time.Duration `yaml:"option_settle"`

	// WebsiteIngest is the post-submit pause for a website source.
	WebsiteIngest time.Duration `yaml:"website_ingest"`

	// FileIngest is the post-submit pause for a file source.
	FileIngest time.Duration `yaml:"file_ingest"`

	// SourcePacing separates consecutive source uploads regardless of outcome.
	SourcePacing time.Duration `yaml:"source_pacing"`
}

// SelectorConfig lists the ordered selector strategies for each logical UI
// target. The target UI is unversioned; each list is tried in order and the
// first match wins, so new strategies can be added here without touching
// control flow.
type SelectorConfig struct {
	NotebookCard      []string `yaml:"notebook_card"`
	NotebookTitle     []string `yaml:"notebook_title"`
	CreateNotebook    []string `yaml:"create_notebook"`
	NotebookNameInput []string `yaml:"notebook_name_input"`
	AddSource         []string `yaml:"add_source"`
	WebsiteOption     []string `yaml:"website_option"`
	URLInput          []string `yaml:"url_input"`
	UploadOption      []string `yaml:"upload_option"`
	FileInput         []string `yaml:"file_input"`
}

// UploadConfig configures source upload policy.
type UploadConfig struct {
	// AllowedPatterns are glob patterns (matched against the lowercased
	// file base name) a file source must match to be uploaded.
	AllowedPatterns []string `yaml:"allowed_patterns"`

	// ValidatePDF runs a structural check on .pdf sources before any UI
	// interaction so corrupt files fail fast.
	ValidatePDF bool `yaml:"validate_pdf"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		AppURL:         "https://notebooklm.google.com/",
		IdentityMarker: "google",
		StatePath:      defaultStatePath(),
		Browser: BrowserConfig{
			Headless:       true,
			ViewportWidth:  1280,
			ViewportHeight: 720,
			DefaultTimeout: 30 * time.Second,
		},
		Timing: TimingConfig{
			NotebookListWait: 10 * time.Second,
			SettleGrace:      2 * time.Second,
			OpenSettle:       2 * time.Second,
			CreateSettle:     2 * time.Second,
			NameSettle:       time.Second,
			PanelSettle:      time.Second,
			OptionSettle:     500 * time.Millisecond,
			WebsiteIngest:    3 * time.Second,
			FileIngest:       5 * time.Second,
			SourcePacing:     time.Second,
		},
		Selectors: SelectorConfig{
			NotebookCard:      []string{`[data-test-id="notebook-card"]`},
			NotebookTitle:     []string{`[data-test-id="notebook-title"]`},
			CreateNotebook:    []string{`button:has-text("Create new")`, `[data-test-id="create-notebook-button"]`},
			NotebookNameInput: []string{`input[placeholder*="name"]`},
			AddSource:         []string{`button:has-text("Add source")`, `[data-test-id="add-source-button"]`},
			WebsiteOption:     []string{`button:has-text("Website")`, `[data-test-id="source-type-website"]`},
			URLInput:          []string{`input[type="url"], input[placeholder*="URL"]`, `[data-test-id="website-url-input"]`},
			UploadOption:      []string{`button:has-text("Upload")`, `[data-test-id="source-type-upload"]`},
			FileInput:         []string{`input[type="file"]`},
		},
		Upload: UploadConfig{
			AllowedPatterns: []string{"*.pdf", "*.txt", "*.md", "*.docx", "*.csv"},
			ValidatePDF:     true,
		},
	}
}

// Load returns the default configuration overlaid with the YAML file at path.
// An empty path loads pure defaults. A missing file at the default location
// is not an error; an explicitly named file must exist.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the workflows cannot run with.
func (c *Config) Validate() error {
	if c.AppURL == "" {
		return fmt.Errorf("app_url must not be empty")
	}
	if u, err := url.Parse(c.AppURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("app_url %q is not an absolute URL", c.AppURL)
	}
	if c.IdentityMarker == "" {
		return fmt.Errorf("identity_marker must not be empty")
	}
	if c.StatePath == "" {
		return fmt.Errorf("state_path must not be empty")
	}
	if len(c.Selectors.NotebookCard) == 0 {
		return fmt.Errorf("selectors.notebook_card must list at least one strategy")
	}
	for _, pattern := range c.Upload.AllowedPatterns {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("invalid allowed_patterns entry %q: %w", pattern, err)
		}
	}
	return nil
}

// defaultStatePath places the session state under the user's notebridge dir.
// Falls back to the working directory when the home dir cannot be resolved.
func defaultStatePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "state.json"
	}
	return filepath.Join(homeDir, ".notebridge", "state.json")
}
