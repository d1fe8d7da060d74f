package resolve

import (
	"context"
	"net/netip"
)

// Resolver is implemented by System and DNS. It satisfies
// machine.HostnameResolver.
type Resolver interface {
	LocalHostname(ctx context.Context) (string, error)
	HostnameFor(ctx context.Context, addr netip.Addr) (string, error)
}
