//go:build !linux

package netif

import (
	"context"
	"fmt"
	"net"

	"hostident/internal/machine"
)

// Source enumerates addresses through the net package's interface table
type Source struct {
	interfaces func() ([]net.Interface, error)
}

// New returns the interface-table source
func New() *Source {
	return &Source{interfaces: net.Interfaces}
}

// Candidates returns every address of every interface in table order
func (s *Source) Candidates(ctx context.Context) ([]machine.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ifaces, err := s.interfaces()
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}

	var out []machine.Candidate
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			return nil, fmt.Errorf("list addresses of %s: %w", iface.Name, err)
		}
		for _, a := range addrs {
			out = append(out, candidateFromNetAddr(iface.Name, a))
		}
	}
	return out, nil
}
