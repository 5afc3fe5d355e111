package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Shared defaults consumed by both the local and CI review entry points.
const (
	DefaultModel          = "claude-opus-4-5-20250514"
	DefaultMaxDiffSize    = 100_000
	DefaultMaxTokens      = 8192
	DefaultAPITimeout     = 120 * time.Second
	DefaultGitTimeout     = 60 * time.Second
	DefaultCommentTimeout = 30 * time.Second
	DefaultPack           = "python-azure-ai-agent"
	DefaultBaseRef        = "main"
	DefaultGitHubAPIURL   = "https://api.github.com"

	// CommentMarker prefixes every review posted to a pull request.
	CommentMarker = "## 🤖 AI Code Review"
)

const envPrefix = "REVIEWPACK"

// Config represents the reviewpack configuration.
type Config struct {
	Model          string        `mapstructure:"model" yaml:"model"`
	MaxDiffSize    int           `mapstructure:"max_diff_size" yaml:"max_diff_size"`
	MaxTokens      int           `mapstructure:"max_tokens" yaml:"max_tokens"`
	APITimeout     time.Duration `mapstructure:"api_timeout" yaml:"api_timeout"`
	GitTimeout     time.Duration `mapstructure:"git_timeout" yaml:"git_timeout"`
	CommentTimeout time.Duration `mapstructure:"comment_timeout" yaml:"comment_timeout"`
	PacksDir       string        `mapstructure:"packs_dir" yaml:"packs_dir,omitempty"`
	Format         string        `mapstructure:"format" yaml:"format"`
	RedactSecrets  bool          `mapstructure:"redact_secrets" yaml:"redact_secrets"`
	LogLevel       string        `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Model:          DefaultModel,
		MaxDiffSize:    DefaultMaxDiffSize,
		MaxTokens:      DefaultMaxTokens,
		APITimeout:     DefaultAPITimeout,
		GitTimeout:     DefaultGitTimeout,
		CommentTimeout: DefaultCommentTimeout,
		Format:         "markdown",
		LogLevel:       "warn",
	}
}

func defaults() map[string]any {
	d := Default()
	return map[string]any{
		"model":           d.Model,
		"max_diff_size":   d.MaxDiffSize,
		"max_tokens":      d.MaxTokens,
		"api_timeout":     d.APITimeout,
		"git_timeout":     d.GitTimeout,
		"comment_timeout": d.CommentTimeout,
		"packs_dir":       d.PacksDir,
		"format":          d.Format,
		"redact_secrets":  d.RedactSecrets,
		"log_level":       d.LogLevel,
	}
}

// Keys returns the recognized configuration keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaults()))
	for k := range defaults() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ConfigDir returns the platform-appropriate config directory for reviewpack.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "reviewpack"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "reviewpack"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "reviewpack"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "reviewpack"), nil
	default:
		return filepath.Join(home, ".config", "reviewpack"), nil
	}
}

// ConfigPath returns the full path to the default config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	for k, val := range defaults() {
		v.SetDefault(k, val)
	}
	v.SetConfigType("yaml")
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	v.SetConfigFile(path)
	return v, nil
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// path selects the config file; empty means [ConfigPath]. A missing file is not
// an error. The overrides map comes from CLI flags (only non-zero values should be set).
func Load(path string, overrides map[string]string) (Config, error) {
	v, err := newViper(path)
	if err != nil {
		return Config{}, err
	}
	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for k, val := range overrides {
		if val != "" {
			v.Set(k, val)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the review pipeline cannot run with.
func (c Config) Validate() error {
	if c.Model == "" {
		return errors.New("model must not be empty")
	}
	if c.MaxDiffSize <= 0 {
		return fmt.Errorf("max_diff_size must be positive, got %d", c.MaxDiffSize)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.APITimeout <= 0 || c.GitTimeout <= 0 || c.CommentTimeout <= 0 {
		return errors.New("timeouts must be positive durations")
	}
	switch c.Format {
	case "markdown", "json":
	default:
		return fmt.Errorf("unsupported format %q (want markdown or json)", c.Format)
	}
	return nil
}

// Init writes the default configuration to path. It refuses to overwrite an
// existing file.
func Init(path string) (string, error) {
	v, err := newViper(path)
	if err != nil {
		return "", err
	}
	target := v.ConfigFileUsed()
	if _, err := os.Stat(target); err == nil {
		return target, fmt.Errorf("config file already exists at %s", target)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return target, fmt.Errorf("creating config directory: %w", err)
	}
	if err := v.WriteConfigAs(target); err != nil {
		return target, fmt.Errorf("writing config: %w", err)
	}
	return target, nil
}

// Set updates a single key in the config file at path, creating the file when
// needed. The key must be one of [Keys].
func Set(path, key, value string) (string, error) {
	if _, ok := defaults()[key]; !ok {
		return "", fmt.Errorf("unknown config key: %s", key)
	}
	v, err := newViper(path)
	if err != nil {
		return "", err
	}
	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return "", fmt.Errorf("reading config file: %w", err)
	}
	v.Set(key, value)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return "", fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	target := v.ConfigFileUsed()
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return target, fmt.Errorf("creating config directory: %w", err)
	}
	if err := v.WriteConfigAs(target); err != nil {
		return target, fmt.Errorf("writing config: %w", err)
	}
	return target, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}
