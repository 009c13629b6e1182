// Package config reads and writes notionmcp configuration.
// Supports global ($XDG_CONFIG_HOME/notionmcp/config.yaml) and local
// (.notionmcp/config.yaml) files. Reading uses local if it exists,
// otherwise global. Environment variables override file values at runtime.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
	// ErrNoToken is returned when no API token is configured.
	ErrNoToken = errors.New("NOTION_TOKEN is not set")
)

// Environment variables that override file values.
const (
	EnvToken      = "NOTION_TOKEN"
	EnvBaseURL    = "NOTION_BASE_URL"
	EnvVersion    = "NOTION_VERSION"
	EnvLogLevel   = "LOG_LEVEL"
	EnvScriptsDir = "NOTION_SCRIPTS_DIR"
)

// Defaults applied when neither env nor file sets a value.
const (
	DefaultBaseURL  = "https://api.notion.com/v1"
	DefaultVersion  = "2022-06-28"
	DefaultTimeout  = 30
	DefaultLogLevel = "info"

	MinTimeout = 1
	MaxTimeout = 600
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config (default).
	ScopeGlobal Scope = iota
	// ScopeLocal is directory-specific config in .notionmcp/config.yaml.
	ScopeLocal
)

// Notion holds API connection settings.
type Notion struct {
	Token   string `yaml:"token,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	Version string `yaml:"version,omitempty"`
	Timeout *int   `yaml:"timeout,omitempty"`
}

// Log holds process logging settings.
type Log struct {
	Level string `yaml:"level,omitempty"`
}

// Scripts holds script file settings.
type Scripts struct {
	Dir string `yaml:"dir,omitempty"`
}

// Config contains configuration for notionmcp.
type Config struct {
	Notion  Notion  `yaml:"notion,omitempty"`
	Log     Log     `yaml:"log,omitempty"`
	Scripts Scripts `yaml:"scripts,omitempty"`

	path  string
	scope Scope
}

// Validate checks that configured values are usable. Unset values pass.
func (c *Config) Validate() error {
	if c.Log.Level != "" {
		if _, err := ParseLevel(c.Log.Level); err != nil {
			return err
		}
	}
	if c.Notion.Timeout != nil {
		v := *c.Notion.Timeout
		if v < MinTimeout || v > MaxTimeout {
			return fmt.Errorf("%w: notion.timeout must be between %d and %d, got %d",
				ErrInvalidValue, MinTimeout, MaxTimeout, v)
		}
	}
	if c.Notion.BaseURL != "" {
		if err := validateURL(c.Notion.BaseURL); err != nil {
			return err
		}
	}
	return nil
}

// Token returns the API token: NOTION_TOKEN, then notion.token.
func (c *Config) Token() string {
	if v := strings.TrimSpace(os.Getenv(EnvToken)); v != "" {
		return v
	}
	return c.Notion.Token
}

// RequireToken returns the token or ErrNoToken with setup instructions.
func (c *Config) RequireToken() (string, error) {
	if t := c.Token(); t != "" {
		return t, nil
	}
	return "", fmt.Errorf("%w\n\nCreate an integration at https://www.notion.so/my-integrations, then either:\n  export NOTION_TOKEN=<token>\n  notionmcp config notion.token <token>", ErrNoToken)
}

// BaseURL returns the API root URL.
func (c *Config) BaseURL() string {
	return firstSet(os.Getenv(EnvBaseURL), c.Notion.BaseURL, DefaultBaseURL)
}

// APIVersion returns the Notion-Version header value.
func (c *Config) APIVersion() string {
	return firstSet(os.Getenv(EnvVersion), c.Notion.Version, DefaultVersion)
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	if c.Notion.Timeout == nil {
		return DefaultTimeout * time.Second
	}
	return time.Duration(*c.Notion.Timeout) * time.Second
}

// LogLevel returns the configured level name.
func (c *Config) LogLevel() string {
	return strings.ToLower(firstSet(os.Getenv(EnvLogLevel), c.Log.Level, DefaultLogLevel))
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	return ParseLevel(c.LogLevel())
}

// ScriptsDir returns the directory holding script files.
func (c *Config) ScriptsDir() string {
	return firstSet(os.Getenv(EnvScriptsDir), c.Scripts.Dir, DefaultScriptsDir())
}

// DefaultScriptsDir is $XDG_DATA_HOME/notionmcp/scripts.
func DefaultScriptsDir() string {
	return filepath.Join(xdg.DataHome, "notionmcp", "scripts")
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: log level must be debug, info, warn or error, got %q", ErrInvalidValue, s)
}

func validateURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: notion.base_url must be an http(s) URL, got %q", ErrInvalidValue, s)
	}
	return nil
}

func firstSet(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// LocalPath returns the path to the local config file.
func LocalPath() string {
	return filepath.Join(".notionmcp", "config.yaml")
}

// GlobalPath returns the path to the global config file.
func GlobalPath() string {
	return filepath.Join(xdg.ConfigHome, "notionmcp", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Path returns the file this config reads from and saves to.
func (c *Config) Path() string {
	if c.path == "" {
		return pathForScope(c.scope)
	}
	return c.path
}

// Save writes the configuration to its original location. The file is
// created 0600 because it may hold the API token.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
