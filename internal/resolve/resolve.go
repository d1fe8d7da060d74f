// Package resolve looks up hostnames for the machine identity.
//
// System uses the operating system's resolver (hosts file, then DNS), which is
// what getnameinfo-based tools report. DNS sends PTR queries to an explicit
// server list and ignores the hosts file.
package resolve

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"hostident/internal/config"
)

// ErrNotFound means the lookup succeeded but produced no name
var ErrNotFound = errors.New("no hostname found")

// New builds the resolver selected by cfg.Mode
func New(cfg config.ResolverConfig) (Resolver, error) {
	switch cfg.Mode {
	case "", config.ResolverSystem:
		return NewSystem(cfg.Timeout.Duration()), nil
	case config.ResolverDNS:
		return NewDNS(cfg.Servers, cfg.Timeout.Duration())
	default:
		return nil, fmt.Errorf("unknown resolver mode %q", cfg.Mode)
	}
}

// osHostname is the forward lookup shared by every resolver
func osHostname() (string, error) {
	name, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("gethostname: %w", err)
	}
	return name, nil
}

func trimRoot(name string) string {
	return strings.TrimSuffix(name, ".")
}

func withDefaultTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 5 * time.Second
	}
	return d
}
