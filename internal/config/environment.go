package config

import (
	"os"
	"strconv"
	"strings"
)

// EnvOverride maps an environment variable onto a config field
type EnvOverride struct {
	Name  string
	Apply func(c *Config, value string) bool
}

// EnvOverrides are applied after the file is loaded, in this order.
// Apply returns false when the value cannot be parsed; the field is then left
// untouched.
var EnvOverrides = []EnvOverride{
	{"NODEWORK_ADDR", func(c *Config, v string) bool { c.Server.Addr = v; return true }},
	{"NODEWORK_ALLOWED_ORIGINS", func(c *Config, v string) bool {
		c.Server.AllowedOrigins = splitList(v)
		return true
	}},
	{"NODEWORK_DB", func(c *Config, v string) bool { c.Database.Path = v; return true }},
	{"NODEWORK_STORAGE_KEY", func(c *Config, v string) bool { c.Storage.Key = v; return true }},
	{"NODEWORK_AUTOSAVE", func(c *Config, v string) bool {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false
		}
		c.Storage.Autosave = b
		return true
	}},
	{"NODEWORK_LOG_LEVEL", func(c *Config, v string) bool { c.Log.Level = strings.ToLower(v); return true }},
	{"NODEWORK_LOG_DEVELOPMENT", func(c *Config, v string) bool {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false
		}
		c.Log.Development = b
		return true
	}},
}

// ApplyEnv applies every set override and returns the names of the
// variables that were set but could not be parsed.
func (c *Config) ApplyEnv() []string {
	var rejected []string
	for _, o := range EnvOverrides {
		v, ok := os.LookupEnv(o.Name)
		if !ok || v == "" {
			continue
		}
		if !o.Apply(c, v) {
			rejected = append(rejected, o.Name)
		}
	}
	return rejected
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
