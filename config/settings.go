// Package config provides configuration structures for the sketchy server.
// Settings are read from a YAML file; ${VAR} and ${VAR:-default} references
// are expanded from the environment before parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds the complete server configuration.
type Settings struct {
	Env      string          `yaml:"env"` // local, dev, prod
	HTTP     HTTPSettings    `yaml:"http"`
	Database DatabaseSetting `yaml:"database"`
	Media    MediaSettings   `yaml:"media"`
	Logging  LoggingSettings `yaml:"logging"`
}

// HTTPSettings holds HTTP server settings.
type HTTPSettings struct {
	Port            int   `yaml:"port"`
	ReadTimeoutSec  int   `yaml:"read_timeout_sec"`
	WriteTimeoutSec int   `yaml:"write_timeout_sec"`
	ShutdownSec     int   `yaml:"shutdown_timeout_sec"`
	MaxBodyBytes    int64 `yaml:"max_body_bytes"`

	// Form submissions allowed per second and burst, per client address.
	WriteRatePerSec float64 `yaml:"write_rate_per_sec"`
	WriteBurst      int     `yaml:"write_burst"`
}

// DatabaseSetting holds the sqlite database location. An empty path opens an in-memory database.
type DatabaseSetting struct {
	Path string `yaml:"path"`
}

// MediaSettings describes where preview images live and how long their listing is cached.
type MediaSettings struct {
	Dir             string `yaml:"dir"`
	URLPrefix       string `yaml:"url_prefix"`
	PreviewPrefix   string `yaml:"preview_prefix"`
	PreviewCacheSec int    `yaml:"preview_cache_sec"`
}

// LoggingSettings holds logging settings.
type LoggingSettings struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// Default returns settings with every default applied.
func Default() Settings {
	var s Settings
	s.ApplyDefaults()
	return s
}

// Load reads settings from a YAML file. An empty path yields the defaults.
func Load(path string) (Settings, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML settings, applies defaults and validates the result.
func Parse(data []byte) (Settings, error) {
	data = expandEnvVars(data)

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse config: %w", err)
	}

	s.ApplyDefaults()

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}

	return s, nil
}

// ApplyDefaults fills empty fields with default values.
func (s *Settings) ApplyDefaults() {
	if s.Env == "" {
		s.Env = "local"
	}
	if s.HTTP.Port == 0 {
		s.HTTP.Port = 8080
	}
	if s.HTTP.ReadTimeoutSec <= 0 {
		s.HTTP.ReadTimeoutSec = 10
	}
	if s.HTTP.WriteTimeoutSec <= 0 {
		s.HTTP.WriteTimeoutSec = 10
	}
	if s.HTTP.ShutdownSec <= 0 {
		s.HTTP.ShutdownSec = 10
	}
	if s.HTTP.MaxBodyBytes <= 0 {
		s.HTTP.MaxBodyBytes = 10 << 20
	}
	if s.HTTP.WriteRatePerSec <= 0 {
		s.HTTP.WriteRatePerSec = 2
	}
	if s.HTTP.WriteBurst <= 0 {
		s.HTTP.WriteBurst = 10
	}
	if s.Media.Dir == "" {
		s.Media.Dir = "./static/img"
	}
	if s.Media.URLPrefix == "" {
		s.Media.URLPrefix = "/static/img"
	}
	if s.Media.PreviewPrefix == "" {
		s.Media.PreviewPrefix = "preview-sketch"
	}
	if s.Media.PreviewCacheSec <= 0 {
		s.Media.PreviewCacheSec = 60
	}
}

// Validate checks the settings for correctness.
func (s *Settings) Validate() error {
	switch s.Env {
	case "local", "dev", "prod":
	default:
		return fmt.Errorf("env must be one of local, dev, prod, got %q", s.Env)
	}
	if s.HTTP.Port <= 0 || s.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", s.HTTP.Port)
	}
	switch s.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", s.Logging.Level)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (s *Settings) Addr() string {
	return fmt.Sprintf(":%d", s.HTTP.Port)
}

// PreviewCacheTTL returns the preview listing cache lifetime.
func (s *Settings) PreviewCacheTTL() time.Duration {
	return time.Duration(s.Media.PreviewCacheSec) * time.Second
}

// envVarRegex matches ${VAR} and ${VAR:-default}.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
