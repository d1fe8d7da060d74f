package resolve

import (
	"context"
	"net"
	"net/netip"
	"time"
)

// System resolves through net.Resolver
type System struct {
	resolver *net.Resolver
	timeout  time.Duration
	hostname func() (string, error)
}

// NewSystem returns a resolver backed by net.DefaultResolver
func NewSystem(timeout time.Duration) *System {
	return &System{
		resolver: net.DefaultResolver,
		timeout:  withDefaultTimeout(timeout),
		hostname: osHostname,
	}
}

// LocalHostname returns the kernel's hostname
func (s *System) LocalHostname(context.Context) (string, error) {
	return s.hostname()
}

// HostnameFor returns the first name the system maps addr to
func (s *System) HostnameFor(ctx context.Context, addr netip.Addr) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	names, err := s.resolver.LookupAddr(ctx, addr.String())
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", ErrNotFound
	}
	return trimRoot(names[0]), nil
}
