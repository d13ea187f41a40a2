// Package config provides configuration management for Archlens.
//
// Configuration is loaded from multiple sources, later ones overriding
// earlier ones:
//  1. Default values (hardcoded)
//  2. Configuration files (./config.yaml, ./configs/config.yaml,
//     ~/.archlens/config.yaml, /etc/archlens/config.yaml)
//  3. .env files
//  4. Environment variables (AL_ prefix)
//
// Use AL_ and underscores for nested keys, e.g. AL_SERVER_PORT=8095 or
// AL_MODEL_DIR=./model.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration structure for Archlens.
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig `mapstructure:"server"`

	// Model contains model and registry file locations
	Model ModelConfig `mapstructure:"model"`

	// Validation contains validation behavior settings
	Validation ValidationConfig `mapstructure:"validation"`

	// Logging contains logging settings
	Logging LoggingConfig `mapstructure:"logging"`

	// Security contains rate limiting and CORS settings
	Security SecurityConfig `mapstructure:"security"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Host is the server bind address
	Host string `mapstructure:"host"`

	// Port is the server listen port
	Port int `mapstructure:"port"`

	// ReadTimeout is the maximum duration for reading requests
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// WriteTimeout is the maximum duration for writing responses
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// ShutdownTimeout is the maximum duration for graceful shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// Debug enables debug logging
	Debug bool `mapstructure:"debug"`
}

// ModelConfig locates the model directory and registry files.
type ModelConfig struct {
	// Dir is the directory of YAML layer files
	Dir string `mapstructure:"dir"`

	// LinkRegistry is the path to the link type registry JSON file
	LinkRegistry string `mapstructure:"link_registry"`

	// RelationshipRegistry is the path to the relationship predicate registry
	RelationshipRegistry string `mapstructure:"relationship_registry"`

	// Watch enables live reload of the model directory in server mode
	Watch bool `mapstructure:"watch"`
}

// ValidationConfig controls validation behavior.
type ValidationConfig struct {
	// Strict promotes warning-class issues to errors
	Strict bool `mapstructure:"strict"`

	// MaxHops is the traversal ceiling for path queries
	MaxHops int `mapstructure:"max_hops"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error)
	Level string `mapstructure:"level"`

	// Format is the log format (json, text)
	Format string `mapstructure:"format"`
}

// SecurityConfig contains rate limiting and CORS settings.
type SecurityConfig struct {
	// RateLimit is the maximum requests per second per client
	RateLimit int `mapstructure:"rate_limit"`

	// AllowedOrigins are the CORS allowed origins
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from a file and environment variables.
// If cfgFile is empty, it searches for config.yaml in standard locations.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.archlens")
		v.AddConfigPath("/etc/archlens")
	}

	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" {
			if !isFileNotFoundError(err) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		} else {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.MergeInConfig() // Ignore error if .env file doesn't exist

	v.SetEnvPrefix("AL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8095)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.debug", false)

	v.SetDefault("model.dir", "./model")
	v.SetDefault("model.link_registry", "./registries/link-types.json")
	v.SetDefault("model.relationship_registry", "./registries/relationship-types.json")
	v.SetDefault("model.watch", true)

	v.SetDefault("validation.strict", false)
	v.SetDefault("validation.max_hops", 5)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("security.rate_limit", 100)
	v.SetDefault("security.allowed_origins", []string{"*"})
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	if cfg.Model.Dir == "" {
		return fmt.Errorf("model dir is required")
	}

	if cfg.Model.LinkRegistry == "" {
		return fmt.Errorf("link registry path is required")
	}

	if cfg.Validation.MaxHops < 1 {
		return fmt.Errorf("invalid max hops: %d", cfg.Validation.MaxHops)
	}

	return nil
}

// isFileNotFoundError checks if an error is a file not found error.
func isFileNotFoundError(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return errors.Is(pathErr, os.ErrNotExist)
	}
	return false
}
