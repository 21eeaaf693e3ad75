package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version  int            `yaml:"version"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Viewport ViewportConfig `yaml:"viewport"`
	Log      LogConfig      `yaml:"log"`
	Library  LibraryConfig  `yaml:"library"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Addr            string   `yaml:"addr" validate:"required"`
	AllowedOrigins  []string `yaml:"allowed_origins,omitempty"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	Path string `yaml:"path" validate:"required"`
}

// StorageConfig controls where the editor state is saved
type StorageConfig struct {
	Key      string `yaml:"key" validate:"required"`
	Autosave bool   `yaml:"autosave"`
}

// ViewportConfig bounds zoom and pan and sets the initial window size
type ViewportConfig struct {
	ZoomMin      float64 `yaml:"zoom_min" validate:"gt=0"`
	ZoomMax      float64 `yaml:"zoom_max" validate:"gtefield=ZoomMin"`
	ZoomStep     float64 `yaml:"zoom_step" validate:"gt=0"`
	PanLimit     int     `yaml:"pan_limit" validate:"gte=0"`
	WindowWidth  int     `yaml:"window_width" validate:"gt=0"`
	WindowHeight int     `yaml:"window_height" validate:"gt=0"`
}

// LogConfig selects the logger
type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// LibraryConfig extends the builtin node library
type LibraryConfig struct {
	Constants []ConstantConfig `yaml:"constants,omitempty" validate:"dive"`
}

// ConstantConfig declares a zero-input node. Exactly one of Int and String
// must be set, matching the key's namespace.
type ConstantConfig struct {
	Key    string  `yaml:"key" validate:"required"`
	Label  string  `yaml:"label" validate:"required"`
	Int    *int    `yaml:"int,omitempty"`
	String *string `yaml:"string,omitempty"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
