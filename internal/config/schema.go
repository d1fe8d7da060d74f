package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version  int            `yaml:"version"`
	Identity IdentityConfig `yaml:"identity"`
	Resolver ResolverConfig `yaml:"resolver"`
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// IdentityConfig holds the optional inputs to identity resolution
type IdentityConfig struct {
	Hostname string `yaml:"hostname,omitempty"` // overrides the OS hostname
	Address  string `yaml:"address,omitempty"`  // skips interface enumeration
	// Candidates replaces interface enumeration with a fixed address list
	Candidates []string `yaml:"candidates,omitempty"`
}

// Resolver modes
const (
	ResolverSystem = "system" // hosts file + system DNS
	ResolverDNS    = "dns"    // explicit PTR queries
)

// ResolverConfig selects how hostnames are looked up
type ResolverConfig struct {
	Mode    string   `yaml:"mode"`
	Servers []string `yaml:"servers,omitempty"` // dns mode only; empty = resolv.conf
	Timeout Duration `yaml:"timeout"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"`
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
