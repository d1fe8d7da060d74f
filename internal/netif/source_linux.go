//go:build linux

package netif

import (
	"context"
	"fmt"

	"github.com/vishvananda/netlink"

	"hostident/internal/machine"
)

// Source enumerates addresses with a single RTM_GETADDR dump
type Source struct{}

// New returns the netlink-backed source
func New() *Source {
	return &Source{}
}

// Candidates returns every address of every link in kernel dump order
func (s *Source) Candidates(ctx context.Context) ([]machine.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	addrs, err := netlink.AddrList(nil, netlink.FAMILY_ALL)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}

	// Names are informational; a failed link dump only loses them.
	names := map[int]string{}
	if links, err := netlink.LinkList(); err == nil {
		for _, l := range links {
			names[l.Attrs().Index] = l.Attrs().Name
		}
	}

	out := make([]machine.Candidate, 0, len(addrs))
	for _, a := range addrs {
		c := machine.Candidate{Interface: names[a.LinkIndex]}
		if a.IPNet != nil {
			c.Addr = addrFromIP(a.IP)
		}
		out = append(out, c)
	}
	return out, nil
}
