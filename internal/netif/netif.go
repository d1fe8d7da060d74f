package netif

import (
	"context"
	"net"
	"net/netip"

	"hostident/internal/machine"
)

// Static is a fixed candidate list
type Static []machine.Candidate

// Candidates returns a copy of the list
func (s Static) Candidates(context.Context) ([]machine.Candidate, error) {
	out := make([]machine.Candidate, len(s))
	copy(out, s)
	return out, nil
}

// ParseStatic builds a Static source from address strings. Invalid entries
// become non-address candidates rather than errors, matching what raw
// enumeration produces for non-IP interface entries.
func ParseStatic(addrs []string) Static {
	out := make(Static, 0, len(addrs))
	for _, s := range addrs {
		addr, _ := netip.ParseAddr(s)
		out = append(out, machine.Candidate{Interface: "static", Addr: addr.Unmap()})
	}
	return out
}

// candidateFromNetAddr converts an address reported by the net package. Types
// other than *net.IPNet and *net.IPAddr yield a candidate with no address.
func candidateFromNetAddr(iface string, a net.Addr) machine.Candidate {
	var ip net.IP
	switch v := a.(type) {
	case *net.IPNet:
		ip = v.IP
	case *net.IPAddr:
		ip = v.IP
	}
	return machine.Candidate{Interface: iface, Addr: addrFromIP(ip)}
}

func addrFromIP(ip net.IP) netip.Addr {
	addr, ok := netip.AddrFromSlice(ip)
	if !ok {
		return netip.Addr{}
	}
	return addr.Unmap()
}
