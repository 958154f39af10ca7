package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	ccerrors "github.com/Aman-CERP/compcheck/internal/errors"
	"github.com/Aman-CERP/compcheck/internal/probe"
)

// Output formats accepted by output.format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the operational configuration of compcheck.
// Thresholds and the criterion set are policy and are not configurable.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Probes  ProbesConfig  `yaml:"probes" json:"probes"`
	Lock    LockConfig    `yaml:"lock" json:"lock"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ProbesConfig bounds the external queries.
type ProbesConfig struct {
	// CommandTimeout bounds every external command.
	CommandTimeout time.Duration `yaml:"command_timeout" json:"command_timeout"`

	// ArtifactPolls and ArtifactPollInterval bound the wait for files that
	// tools write asynchronously (the dxdiag report).
	ArtifactPolls        int           `yaml:"artifact_polls" json:"artifact_polls"`
	ArtifactPollInterval time.Duration `yaml:"artifact_poll_interval" json:"artifact_poll_interval"`

	// TempDir holds the per-probe workspaces. Empty means the OS temp dir.
	TempDir string `yaml:"temp_dir" json:"temp_dir"`
}

// LockConfig configures the cross-process run lock.
type LockConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	// Dir holds run.lock. Empty means the data directory.
	Dir string `yaml:"dir" json:"dir"`
}

// OutputConfig configures terminal output.
type OutputConfig struct {
	Format  string `yaml:"format" json:"format"`
	NoColor bool   `yaml:"no_color" json:"no_color"`
	Plain   bool   `yaml:"plain" json:"plain"`
}

// LoggingConfig configures file logging.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// NewConfig creates a new Config with defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Probes: ProbesConfig{
			CommandTimeout:       30 * time.Second,
			ArtifactPolls:        5,
			ArtifactPollInterval: time.Second,
		},
		Lock: LockConfig{
			Enabled: true,
			Timeout: 30 * time.Second,
		},
		Output: OutputConfig{
			Format: FormatText,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DataDir returns ~/.compcheck, where logs and the run lock live.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".compcheck")
	}
	return filepath.Join(home, ".compcheck")
}

// LockDir returns the directory of the run lock.
func (c *Config) LockDir() string {
	if c.Lock.Dir != "" {
		return c.Lock.Dir
	}
	return DataDir()
}

// ProbeOptions maps the probe settings onto the host options.
func (c *Config) ProbeOptions(logger *slog.Logger) probe.Options {
	return probe.Options{
		CommandTimeout:       c.Probes.CommandTimeout,
		ArtifactPolls:        c.Probes.ArtifactPolls,
		ArtifactPollInterval: c.Probes.ArtifactPollInterval,
		TempDir:              c.Probes.TempDir,
		Logger:               logger,
	}
}

// GetUserConfigPath returns the path to the user configuration file.
// It follows the XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/compcheck/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/compcheck/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "compcheck", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "compcheck", "config.yaml")
	}
	return filepath.Join(home, ".config", "compcheck", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// Load builds the effective configuration, in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User config (~/.config/compcheck/config.yaml)
//  3. Environment variables (COMPCHECK_*)
func Load() (*Config, error) {
	return LoadFile(GetUserConfigPath())
}

// LoadFile is Load with an explicit config file. A missing file is not an
// error.
func LoadFile(path string) (*Config, error) {
	cfg := NewConfig()

	if path != "" && fileExists(path) {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, ccerrors.New(ccerrors.ErrCodeConfigInvalid, "invalid configuration", err).
			WithDetail("path", path)
	}
	return cfg, nil
}

// loadYAML decodes path over c; keys absent from the file keep their value.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		code := ccerrors.ErrCodeConfigNotFound
		if os.IsPermission(err) {
			code = ccerrors.ErrCodeConfigPermission
		}
		return ccerrors.New(code, "failed to read config file", err).WithDetail("path", path)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return ccerrors.New(ccerrors.ErrCodeConfigInvalid, "failed to parse config file", err).
			WithDetail("path", path).
			WithSuggestion("Run 'compcheck config init --force' to rewrite it")
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("COMPCHECK_COMMAND_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Probes.CommandTimeout = d
		}
	}
	if v := os.Getenv("COMPCHECK_ARTIFACT_POLLS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Probes.ArtifactPolls = n
		}
	}
	if v := os.Getenv("COMPCHECK_ARTIFACT_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Probes.ArtifactPollInterval = d
		}
	}
	if v := os.Getenv("COMPCHECK_TEMP_DIR"); v != "" {
		c.Probes.TempDir = v
	}

	if v := os.Getenv("COMPCHECK_LOCK_ENABLED"); v != "" {
		c.Lock.Enabled = parseBool(v)
	}
	if v := os.Getenv("COMPCHECK_LOCK_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			c.Lock.Timeout = d
		}
	}

	if v := os.Getenv("COMPCHECK_OUTPUT_FORMAT"); v != "" {
		c.Output.Format = strings.ToLower(v)
	}
	// NO_COLOR is the cross-tool convention (https://no-color.org).
	if os.Getenv("NO_COLOR") != "" {
		c.Output.NoColor = true
	}
	if v := os.Getenv("COMPCHECK_NO_COLOR"); v != "" {
		c.Output.NoColor = parseBool(v)
	}
	if v := os.Getenv("COMPCHECK_PLAIN"); v != "" {
		c.Output.Plain = parseBool(v)
	}

	if v := os.Getenv("COMPCHECK_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes"
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Probes.CommandTimeout <= 0 {
		return fmt.Errorf("probes.command_timeout must be positive, got %s", c.Probes.CommandTimeout)
	}
	if c.Probes.ArtifactPolls < 1 {
		return fmt.Errorf("probes.artifact_polls must be at least 1, got %d", c.Probes.ArtifactPolls)
	}
	if c.Probes.ArtifactPollInterval <= 0 {
		return fmt.Errorf("probes.artifact_poll_interval must be positive, got %s", c.Probes.ArtifactPollInterval)
	}
	if c.Lock.Timeout < 0 {
		return fmt.Errorf("lock.timeout must be non-negative, got %s", c.Lock.Timeout)
	}

	switch strings.ToLower(c.Output.Format) {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("output.format must be 'text' or 'json', got %s", c.Output.Format)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level)
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := c.YAML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// YAML renders the configuration as YAML.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
