package machine

import (
	"log/slog"
	"net/netip"
	"time"

	"hostident/internal/addrtext"
)

// How an identity's addresses were obtained
const (
	SourceExplicit   = "explicit"
	SourceInterfaces = "interfaces"
)

// Identity is the immutable snapshot of who this host is. Hostname is empty
// when it could not be resolved. Unset addresses are the zero netip.Addr;
// Primary is always a copy of IPv4 or IPv6.
type Identity struct {
	Hostname       string     `json:"hostname" yaml:"hostname"`
	Primary        netip.Addr `json:"primary" yaml:"primary"`
	IPv4           netip.Addr `json:"ipv4" yaml:"ipv4"`
	IPv4Rank       Rank       `json:"ipv4_rank" yaml:"ipv4_rank"`
	IPv6           netip.Addr `json:"ipv6" yaml:"ipv6"`
	IPv6Rank       Rank       `json:"ipv6_rank" yaml:"ipv6_rank"`
	AddressText    string     `json:"address_text" yaml:"address_text"`
	AddressHexText string     `json:"address_hex" yaml:"address_hex"`
	Source         string     `json:"source" yaml:"source"`
	ResolvedAt     time.Time  `json:"resolved_at" yaml:"resolved_at"`
}

func newIdentity(hostname string, sel Selection, source string, now time.Time) Identity {
	return Identity{
		Hostname:       hostname,
		Primary:        sel.Primary,
		IPv4:           sel.IPv4,
		IPv4Rank:       sel.IPv4Rank,
		IPv6:           sel.IPv6,
		IPv6Rank:       sel.IPv6Rank,
		AddressText:    addrtext.Canonical(sel.Primary),
		AddressHexText: addrtext.Hex(sel.Primary),
		Source:         source,
		ResolvedAt:     now.UTC(),
	}
}

// HasAddress reports whether any address was found
func (id Identity) HasAddress() bool { return id.Primary.IsValid() }

// HasIPv4 reports whether an IPv4 address was found
func (id Identity) HasIPv4() bool { return id.IPv4.IsValid() }

// HasIPv6 reports whether an IPv6 address was found
func (id Identity) HasIPv6() bool { return id.IPv6.IsValid() }

// PrimaryRank returns the rank of the primary address
func (id Identity) PrimaryRank() Rank {
	if id.Primary == id.IPv4 {
		return id.IPv4Rank
	}
	return id.IPv6Rank
}

// LogValue implements slog.LogValuer
func (id Identity) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("hostname", id.Hostname),
		slog.String("address", id.AddressText),
		slog.String("address_hex", id.AddressHexText),
		slog.String("ipv4", addrtext.Canonical(id.IPv4)),
		slog.String("ipv6", ipv6Text(id.IPv6)),
		slog.String("source", id.Source),
	)
}

func ipv6Text(addr netip.Addr) string {
	if !addr.IsValid() {
		return "::"
	}
	return addr.String()
}
