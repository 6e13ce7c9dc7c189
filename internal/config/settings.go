package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/crateview/internal/keybinds"
	"github.com/studiowebux/crateview/internal/logging"
)

const (
	MaxPageSize = 100 // crates.io per_page limit
	MaxTickRate = 120.0
)

// Config is the user configuration. It is loaded once at startup and not
// changed afterwards.
type Config struct {
	// TickRate is render ticks per second
	TickRate float64 `yaml:"tick_rate"`
	// ChordTimeout is how long a partial chord waits for its next key
	ChordTimeout time.Duration `yaml:"chord_timeout"`
	PageSize     int           `yaml:"page_size"`
	LogLevel     string        `yaml:"log_level"`

	Registry  RegistryConfig  `yaml:"registry"`
	Templates TemplatesConfig `yaml:"templates"`
	History   HistoryConfig   `yaml:"history"`

	// KeyBindings maps context -> chord -> action, applied over the defaults
	KeyBindings keybinds.Config `yaml:"key_bindings,omitempty"`
}

type RegistryConfig struct {
	BaseURL           string        `yaml:"base_url"`
	UserAgent         string        `yaml:"user_agent"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Timeout           time.Duration `yaml:"timeout"`
	CacheTTL          time.Duration `yaml:"cache_ttl"`
}

// TemplatesConfig expand {name} and {version} for the selected crate
type TemplatesConfig struct {
	CopyCommand string `yaml:"copy_command"`
	DocsURL     string `yaml:"docs_url"`
	RegistryURL string `yaml:"registry_url"`
}

type HistoryConfig struct {
	Enabled    bool `yaml:"enabled"`
	MaxEntries int  `yaml:"max_entries"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		TickRate:     4,
		ChordTimeout: time.Second,
		PageSize:     25,
		LogLevel:     "info",
		Registry: RegistryConfig{
			BaseURL:           "https://crates.io/api/v1",
			UserAgent:         AppName + " (https://github.com/studiowebux/crateview)",
			RequestsPerSecond: 1,
			Timeout:           10 * time.Second,
			CacheTTL:          5 * time.Minute,
		},
		Templates: TemplatesConfig{
			CopyCommand: "cargo add {name}",
			DocsURL:     "https://docs.rs/{name}/latest/{name}/",
			RegistryURL: "https://crates.io/crates/{name}",
		},
		History: HistoryConfig{
			Enabled:    true,
			MaxEntries: 500,
		},
	}
}

// Load reads path over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := Decode(data, filepath.Ext(path), &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses data into cfg by extension. JSON and JSONC are normalized
// to plain JSON first; JSON is valid YAML so one decoder serves all three.
func Decode(data []byte, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml", "":
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	default:
		return fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, .json or .jsonc)", ext)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}

// Validate checks every field and the key binding overrides
func (c Config) Validate() error {
	if c.TickRate <= 0 || c.TickRate > MaxTickRate {
		return fmt.Errorf("tick_rate must be in (0, %g], got %g", MaxTickRate, c.TickRate)
	}
	if c.ChordTimeout <= 0 {
		return fmt.Errorf("chord_timeout must be positive, got %s", c.ChordTimeout)
	}
	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d, got %d", MaxPageSize, c.PageSize)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	u, err := url.Parse(c.Registry.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("registry.base_url must be an absolute URL, got %q", c.Registry.BaseURL)
	}
	if c.Registry.RequestsPerSecond <= 0 {
		return fmt.Errorf("registry.requests_per_second must be positive, got %g", c.Registry.RequestsPerSecond)
	}
	if c.Registry.Timeout <= 0 {
		return fmt.Errorf("registry.timeout must be positive, got %s", c.Registry.Timeout)
	}
	if c.Registry.CacheTTL < 0 {
		return fmt.Errorf("registry.cache_ttl must not be negative, got %s", c.Registry.CacheTTL)
	}

	for name, tmpl := range map[string]string{
		"templates.copy_command": c.Templates.CopyCommand,
		"templates.docs_url":     c.Templates.DocsURL,
		"templates.registry_url": c.Templates.RegistryURL,
	} {
		if !strings.Contains(tmpl, "{name}") {
			return fmt.Errorf("%s must contain {name}, got %q", name, tmpl)
		}
	}

	if c.History.MaxEntries < 0 {
		return fmt.Errorf("history.max_entries must not be negative, got %d", c.History.MaxEntries)
	}

	result := keybinds.NewValidator().ValidateConfig(c.KeyBindings)
	if result.HasErrors() {
		return fmt.Errorf("key_bindings: %w", &result.Errors[0])
	}
	return nil
}

// KeyRegistry builds the binding table from the defaults and the overrides.
// Validator warnings are returned for logging.
func (c Config) KeyRegistry() (*keybinds.Registry, []keybinds.ValidationError, error) {
	registry, err := keybinds.LoadOrDefault(c.KeyBindings)
	if err != nil {
		return nil, nil, err
	}
	result := keybinds.NewValidator().ValidateRegistry(registry)
	if result.HasErrors() {
		return nil, nil, fmt.Errorf("key_bindings: %w", &result.Errors[0])
	}
	return registry, result.Warnings, nil
}

// Marshal encodes c as YAML. With withBindings the full default key table
// is included so it can be edited.
func Marshal(c Config, withBindings bool) ([]byte, error) {
	if withBindings && len(c.KeyBindings) == 0 {
		c.KeyBindings = keybinds.ExportDefaults()
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return buf.Bytes(), nil
}
