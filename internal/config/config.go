// Package config provides configuration management for hostident.
//
// Config file locations (priority order):
//  1. $HOSTIDENT_CONFIG
//  2. ./hostident.yaml
//  3. $XDG_CONFIG_HOME/hostident/config.yaml
//  4. ~/.config/hostident/config.yaml
//  5. /etc/hostident/config.yaml
//
// Every setting is optional. With no file at all the identity is resolved from
// the OS hostname and the local interfaces.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"hostident/internal/machine"
)

// ErrInvalid is wrapped by every validation error
var ErrInvalid = errors.New("invalid config")

const (
	defaultServerAddr      = "127.0.0.1:7070"
	defaultResolverTimeout = 5 * time.Second
)

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
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureDir(path); err != nil {
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
	if c.Resolver.Mode == "" {
		c.Resolver.Mode = ResolverSystem
	}
	if c.Resolver.Timeout == 0 {
		c.Resolver.Timeout = Duration(defaultResolverTimeout)
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath()
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaultServerAddr
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if c.Identity.Address != "" {
		if _, err := netip.ParseAddr(c.Identity.Address); err != nil {
			return fmt.Errorf("%w: identity.address: %w", ErrInvalid, err)
		}
	}

	switch c.Resolver.Mode {
	case ResolverSystem, ResolverDNS:
	default:
		return fmt.Errorf("%w: resolver.mode %q (want %s or %s)",
			ErrInvalid, c.Resolver.Mode, ResolverSystem, ResolverDNS)
	}

	if c.Resolver.Timeout < 0 {
		return fmt.Errorf("%w: resolver.timeout must not be negative", ErrInvalid)
	}

	return nil
}

// Address returns the explicit identity address, or the zero Addr when none
// is configured. IPv4-mapped IPv6 input is returned as plain IPv4.
func (c *Config) Address() netip.Addr {
	addr, err := netip.ParseAddr(c.Identity.Address)
	if err != nil {
		return netip.Addr{}
	}
	return addr.Unmap()
}

// IdentityOptions converts the identity section to registry options
func (c *Config) IdentityOptions() machine.Options {
	return machine.Options{
		Hostname: c.Identity.Hostname,
		Address:  c.Address(),
	}
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Resolver: %s (timeout %s)", c.Resolver.Mode, c.Resolver.Timeout.Duration())
	if c.Identity.Address != "" {
		summary += fmt.Sprintf(", explicit address %s", c.Identity.Address)
	}
	if c.Identity.Hostname != "" {
		summary += fmt.Sprintf(", hostname override %s", c.Identity.Hostname)
	}
	if len(c.Identity.Candidates) > 0 {
		summary += fmt.Sprintf(", %d static candidates", len(c.Identity.Candidates))
	}
	return summary
}
