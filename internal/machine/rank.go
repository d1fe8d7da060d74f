package machine

import (
	"fmt"
	"net/netip"
)

// Rank orders addresses by how well they identify the host. Comparison is by
// ordinal, so the declaration order below is load-bearing.
type Rank int

const (
	RankNotAnAddress Rank = iota
	RankLoopback
	RankNonRoutable
	RankMulticast
	RankGlobal
)

var rankNames = [...]string{
	RankNotAnAddress: "not-an-address",
	RankLoopback:     "loopback",
	RankNonRoutable:  "non-routable",
	RankMulticast:    "multicast",
	RankGlobal:       "global",
}

// String returns the rank name
func (r Rank) String() string {
	if r < RankNotAnAddress || r > RankGlobal {
		return "unknown"
	}
	return rankNames[r]
}

// Classify returns the rank of addr. The zero netip.Addr is how non-IP
// interface entries arrive here and classifies as RankNotAnAddress.
func Classify(addr netip.Addr) Rank {
	if !addr.IsValid() {
		return RankNotAnAddress
	}
	addr = addr.Unmap()

	switch {
	case addr.IsLoopback():
		return RankLoopback
	case isNonRoutable(addr):
		return RankNonRoutable
	case addr.IsMulticast():
		return RankMulticast
	default:
		return RankGlobal
	}
}

// isNonRoutable covers RFC 1918, IPv6 ULA and link-local unicast.
func isNonRoutable(addr netip.Addr) bool {
	return addr.IsPrivate() || addr.IsLinkLocalUnicast()
}

// MarshalText implements encoding.TextMarshaler
func (r Rank) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Rank) UnmarshalText(text []byte) error {
	for i, name := range rankNames {
		if name == string(text) {
			*r = Rank(i)
			return nil
		}
	}
	return fmt.Errorf("unknown address rank %q", text)
}
