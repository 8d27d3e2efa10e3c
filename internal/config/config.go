// Package config loads the installer shell configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the installer shell.
type Config struct {
	Backend   BackendConfig   `mapstructure:"backend" yaml:"backend"`
	Readiness ReadinessConfig `mapstructure:"readiness" yaml:"readiness"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
}

// BackendConfig locates the backend HTTP surface.
type BackendConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// URL returns the backend base URL.
func (c BackendConfig) URL() string {
	return fmt.Sprintf("http://%s:%d", c.Host, c.Port)
}

// ReadinessConfig bounds the startup readiness poll.
type ReadinessConfig struct {
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
	InitialDelay time.Duration `mapstructure:"initial_delay" yaml:"initial_delay"`
	MaxDelay     time.Duration `mapstructure:"max_delay" yaml:"max_delay"`
}

// LogConfig configures the shell logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

// setDefaults registers defaults for every configuration key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.host", "127.0.0.1")
	v.SetDefault("backend.port", 8000)

	v.SetDefault("readiness.timeout", 30*time.Second)
	v.SetDefault("readiness.initial_delay", 100*time.Millisecond)
	v.SetDefault("readiness.max_delay", 2*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
}

// Load reads configuration with precedence ENV > file > defaults.
// A missing file is fine; a malformed one is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TK_INSTALLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return nil, err
		}
		v.SetConfigFile(expanded)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("parse config %s: %w", expanded, err)
			}
			if !os.IsNotExist(err) {
				if _, pathErr := os.Stat(expanded); pathErr == nil {
					return nil, fmt.Errorf("read config %s: %w", expanded, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// EnsureDefaultConfig writes a default config file if none exists, so
// users have something to edit. Returns the loaded configuration.
func EnsureDefaultConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		defaults := map[string]any{
			"backend": map[string]any{
				"host": "127.0.0.1",
				"port": 8000,
			},
			"readiness": map[string]any{
				"timeout":       "30s",
				"initial_delay": "100ms",
				"max_delay":     "2s",
			},
			"log": map[string]any{
				"level":  "info",
				"format": "console",
				"file":   "",
			},
		}
		data, marshalErr := yaml.Marshal(defaults)
		if marshalErr != nil {
			return nil, fmt.Errorf("marshal default config: %w", marshalErr)
		}
		if writeErr := os.WriteFile(path, data, 0644); writeErr != nil {
			return nil, fmt.Errorf("write default config: %w", writeErr)
		}
	}
	return Load(path)
}
