package config

import (
	"errors"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/var/lib/test-state")
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Resolver.Mode != ResolverSystem {
		t.Errorf("Resolver.Mode = %s, want %s", cfg.Resolver.Mode, ResolverSystem)
	}
	if cfg.Resolver.Timeout.Duration() != 5*time.Second {
		t.Errorf("Resolver.Timeout = %s, want 5s", cfg.Resolver.Timeout.Duration())
	}
	if cfg.Database.Path != "/var/lib/test-state/hostident/snapshots.db" {
		t.Errorf("Database.Path = %s", cfg.Database.Path)
	}
	if cfg.Server.Addr == "" {
		t.Error("Server.Addr should have a default")
	}
	if cfg.Address().IsValid() {
		t.Error("default config should not carry an explicit address")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Identity.Hostname = "edge-7"
	cfg.Identity.Address = "2001:db8::7"
	cfg.Resolver.Mode = ResolverDNS
	cfg.Resolver.Servers = []string{"192.0.2.53"}
	cfg.Resolver.Timeout = Duration(1500 * time.Millisecond)

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, path, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}

	if loaded.Identity.Hostname != "edge-7" {
		t.Errorf("Identity.Hostname = %s, want edge-7", loaded.Identity.Hostname)
	}
	if loaded.Address() != netip.MustParseAddr("2001:db8::7") {
		t.Errorf("Address() = %s, want 2001:db8::7", loaded.Address())
	}
	if loaded.Resolver.Mode != ResolverDNS {
		t.Errorf("Resolver.Mode = %s, want dns", loaded.Resolver.Mode)
	}
	if len(loaded.Resolver.Servers) != 1 || loaded.Resolver.Servers[0] != "192.0.2.53" {
		t.Errorf("Resolver.Servers = %v", loaded.Resolver.Servers)
	}
	if loaded.Resolver.Timeout.Duration() != 1500*time.Millisecond {
		t.Errorf("Resolver.Timeout = %s, want 1.5s", loaded.Resolver.Timeout.Duration())
	}
}

func TestLoadFromPathPartialFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	data := "identity:\n  address: \"::ffff:203.0.113.7\"\n"
	if err := os.WriteFile(configPath, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Resolver.Mode != ResolverSystem {
		t.Errorf("Resolver.Mode = %s, want default", cfg.Resolver.Mode)
	}
	if got := cfg.Address(); got != netip.MustParseAddr("203.0.113.7") {
		t.Errorf("Address() = %s, want unmapped 203.0.113.7", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad address", func(c *Config) { c.Identity.Address = "300.1.1.1" }, "identity.address"},
		{"bad mode", func(c *Config) { c.Resolver.Mode = "carrier-pigeon" }, "resolver.mode"},
		{"negative timeout", func(c *Config) { c.Resolver.Timeout = Duration(-time.Second) }, "resolver.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v should wrap ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromPathRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("resolver:\n  mode: nis\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := LoadFromPath(configPath); !errors.Is(err, ErrInvalid) {
		t.Errorf("LoadFromPath() error = %v, want ErrInvalid", err)
	}
}

func TestFindConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	t.Chdir(tmpDir)

	found := FindConfigPath()
	if found == "" {
		t.Error("FindConfigPath() should find config in working directory")
	}

	// Explicit path doesn't exist, should fall back
	t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	found = FindConfigPath()
	if found == "" {
		t.Error("FindConfigPath() should fall back when env path doesn't exist")
	}

	explicit := filepath.Join(tmpDir, "explicit.yaml")
	if err := cfg.Save(explicit); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	t.Setenv(EnvConfigPath, explicit)
	if found := FindConfigPath(); found != explicit {
		t.Errorf("FindConfigPath() = %s, want %s", found, explicit)
	}
}

func TestSearchPathsOrder(t *testing.T) {
	t.Setenv(EnvConfigPath, "/srv/hostident.yaml")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	t.Setenv("HOME", "/home/op")

	want := []string{
		"/srv/hostident.yaml",
		ConfigFileName,
		"/xdg/hostident/config.yaml",
		"/home/op/.config/hostident/config.yaml",
		"/etc/hostident/config.yaml",
	}
	got := SearchPaths()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("SearchPaths() = %v, want %v", got, want)
	}

	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", "")
	if got := SearchPaths(); got[0] != ConfigFileName || len(got) != 3 {
		t.Errorf("SearchPaths() without env = %v", got)
	}
}

func TestFindConfigPathPrefersXDGOverHome(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv(EnvConfigPath, "")
	xdg := filepath.Join(tmpDir, "xdg")
	home := filepath.Join(tmpDir, "home")
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", home)

	cfg := DefaultConfig()
	homePath := filepath.Join(home, ".config", ConfigDirName, "config.yaml")
	if err := cfg.Save(homePath); err != nil {
		t.Fatal(err)
	}
	if found := FindConfigPath(); found != homePath {
		t.Errorf("FindConfigPath() = %s, want %s", found, homePath)
	}

	xdgPath := filepath.Join(xdg, ConfigDirName, "config.yaml")
	if err := cfg.Save(xdgPath); err != nil {
		t.Fatal(err)
	}
	if found := FindConfigPath(); found != xdgPath {
		t.Errorf("FindConfigPath() = %s, want %s", found, xdgPath)
	}
}

func TestDuration(t *testing.T) {
	d := Duration(5 * time.Minute)

	if d.Duration() != 5*time.Minute {
		t.Errorf("Duration() = %s, want 5m", d.Duration())
	}

	marshaled, err := d.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML() error: %v", err)
	}
	if marshaled != "5m0s" {
		t.Errorf("MarshalYAML() = %v, want 5m0s", marshaled)
	}
}

func TestSummary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Identity.Address = "192.0.2.1"

	s := cfg.Summary()
	if !strings.Contains(s, "explicit address 192.0.2.1") {
		t.Errorf("Summary() = %q", s)
	}
}

func TestIdentityOptions(t *testing.T) {
	cfg := DefaultConfig()
	if opts := cfg.IdentityOptions(); opts.Address.IsValid() || opts.Hostname != "" {
		t.Errorf("IdentityOptions() = %+v, want zero", opts)
	}

	cfg.Identity.Hostname = "alpha"
	cfg.Identity.Address = "::ffff:192.0.2.1"
	opts := cfg.IdentityOptions()
	if opts.Hostname != "alpha" {
		t.Errorf("Hostname = %q, want alpha", opts.Hostname)
	}
	if opts.Address != netip.MustParseAddr("192.0.2.1") {
		t.Errorf("Address = %v, want unmapped 192.0.2.1", opts.Address)
	}
}
