package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/noelruault/lazyops/internal/auth"
	"github.com/noelruault/lazyops/internal/export"
	"github.com/noelruault/lazyops/internal/i18n"
)

const (
	DefaultBaseURL  = "http://127.0.0.1:8000"
	DefaultLocale   = "zh"
	DefaultLogLevel = "info"
	DirName         = ".lazyops"
	FileName        = "config.yaml"
	LogFileName     = "lazyops.log"
)

// Config holds the application configuration
type Config struct {
	BaseURL      string          `yaml:"base_url"`
	WebURL       string          `yaml:"web_url"`
	Token        string          `yaml:"token"`
	CSRFToken    string          `yaml:"csrf_token"`
	Tenant       string          `yaml:"tenant"`
	Capabilities []string        `yaml:"capabilities"`
	Locale       string          `yaml:"locale"`
	Log          LogConfig       `yaml:"log"`
	API          APIConfig       `yaml:"api"`
	Export       export.Settings `yaml:"export"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// APIConfig tunes the request helper. A zero timeout means none.
type APIConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// Dir returns ~/.lazyops.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// DefaultPath returns the config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// LoadConfig loads the configuration from the default location
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Load reads path, applies environment overrides and fills defaults. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.BaseURL, "LAZYOPS_BASE_URL")
	setString(&c.WebURL, "LAZYOPS_WEB_URL")
	setString(&c.Token, "LAZYOPS_TOKEN")
	setString(&c.CSRFToken, "LAZYOPS_CSRF_TOKEN")
	setString(&c.Tenant, "LAZYOPS_TENANT")
	setString(&c.Locale, "LAZYOPS_LOCALE")
	setString(&c.Log.Level, "LAZYOPS_LOG_LEVEL")
	setString(&c.Log.Format, "LAZYOPS_LOG_FORMAT")
	setString(&c.Export.Bucket, "LAZYOPS_EXPORT_BUCKET")
	setString(&c.Export.Prefix, "LAZYOPS_EXPORT_PREFIX")
	if v, ok := os.LookupEnv("LAZYOPS_CAPABILITIES"); ok {
		c.Capabilities = splitList(v)
	}
	if c.Export.Region == "" {
		if _, ok := os.LookupEnv("AWS_REGION"); ok {
			c.Export.Region = GetDefaultRegion()
		} else if _, ok := os.LookupEnv("AWS_DEFAULT_REGION"); ok {
			c.Export.Region = GetDefaultRegion()
		}
	}
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.WebURL == "" {
		c.WebURL = c.BaseURL
	}
	c.WebURL = strings.TrimRight(c.WebURL, "/")
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.API.Timeout < 0 {
		c.API.Timeout = 0
	}
}

// Auth builds the immutable auth context.
func (c *Config) Auth() auth.Context {
	return auth.New(c.Token, c.CSRFToken, c.Tenant, c.Capabilities...)
}

// Language resolves the configured locale.
func (c *Config) Language() i18n.Locale {
	return i18n.Resolve(c.Locale)
}

// LogPath returns the TUI log file, defaulting to ~/.lazyops/lazyops.log.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogFileName), nil
}

// GetDefaultRegion returns the default AWS region
func GetDefaultRegion() string {
	if region, ok := os.LookupEnv("AWS_REGION"); ok {
		return region
	}
	if region, ok := os.LookupEnv("AWS_DEFAULT_REGION"); ok {
		return region
	}
	return "us-east-1"
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = strings.TrimSpace(v)
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
