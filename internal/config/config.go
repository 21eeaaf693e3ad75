// Package config provides configuration management for nodework.
//
// Config file locations (priority order):
//  1. $NODEWORK_CONFIG
//  2. ./nodework.yaml
//  3. $XDG_CONFIG_HOME/nodework/config.yaml
//  4. ~/.config/nodework/config.yaml
//  5. /etc/nodework/config.yaml
//
// Missing files are not an error: defaults cover every setting.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"nodework/internal/geometry"
	"nodework/internal/library"
	"nodework/internal/viewport"
)

var validate = validator.New()

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = Duration(10 * time.Second)
	}
	if c.Database.Path == "" {
		c.Database.Path = "./nodework.db"
	}
	if c.Storage.Key == "" {
		c.Storage.Key = "nodework"
	}
	if c.Viewport.ZoomMin == 0 {
		c.Viewport.ZoomMin = viewport.DefaultZoomMin
	}
	if c.Viewport.ZoomMax == 0 {
		c.Viewport.ZoomMax = viewport.DefaultZoomMax
	}
	if c.Viewport.ZoomStep == 0 {
		c.Viewport.ZoomStep = viewport.DefaultZoomStep
	}
	if c.Viewport.PanLimit == 0 {
		c.Viewport.PanLimit = viewport.DefaultPanLimit
	}
	if c.Viewport.WindowWidth == 0 {
		c.Viewport.WindowWidth = 1280
	}
	if c.Viewport.WindowHeight == 0 {
		c.Viewport.WindowHeight = 720
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks struct tags and the cross-field rules tags cannot express
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	for _, k := range c.Library.Constants {
		if (k.Int == nil) == (k.String == nil) {
			return fmt.Errorf("constant %s: exactly one of int or string must be set", k.Key)
		}
	}
	return nil
}

// Limits returns the viewport limits
func (c *Config) Limits() viewport.Limits {
	return viewport.Limits{
		ZoomMin:  c.Viewport.ZoomMin,
		ZoomMax:  c.Viewport.ZoomMax,
		ZoomStep: c.Viewport.ZoomStep,
		PanLimit: c.Viewport.PanLimit,
	}
}

// Window returns the initial window size
func (c *Config) Window() geometry.Vector {
	return geometry.New(c.Viewport.WindowWidth, c.Viewport.WindowHeight)
}

// BuildLibrary returns the builtin library extended with the configured
// constants
func (c *Config) BuildLibrary() (*library.Library, error) {
	lib := library.Builtin()
	for _, k := range c.Library.Constants {
		value := library.NoOutput
		switch {
		case k.Int != nil:
			value = library.Int(*k.Int)
		case k.String != nil:
			value = library.String(*k.String)
		}
		err := lib.RegisterConstant(library.Constant{Key: k.Key, Label: k.Label, Value: value})
		if err != nil {
			return nil, fmt.Errorf("register constant: %w", err)
		}
	}
	return lib, nil
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Server: %s, Database: %s, Storage key: %s (autosave %t)\n",
		c.Server.Addr, c.Database.Path, c.Storage.Key, c.Storage.Autosave)
	summary += fmt.Sprintf("Zoom: %.1f-%.1f step %.2f, Pan limit: %d\n",
		c.Viewport.ZoomMin, c.Viewport.ZoomMax, c.Viewport.ZoomStep, c.Viewport.PanLimit)
	summary += fmt.Sprintf("Constants (%d):", len(c.Library.Constants))
	for _, k := range c.Library.Constants {
		summary += fmt.Sprintf(" %s", k.Key)
	}
	return summary
}

func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "gt", "gte":
		return fmt.Sprintf("%s must be %s %s", field, e.Tag(), e.Param())
	case "gtefield":
		return fmt.Sprintf("%s must not be less than %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
