package domain

import (
	"net/netip"
	"time"

	"hostident/internal/machine"
)

// Snapshot is a recorded machine identity, one per process start
type Snapshot struct {
	ID         string     `json:"id" yaml:"id"`
	Hostname   string     `json:"hostname" yaml:"hostname"`
	Primary    netip.Addr `json:"primary" yaml:"primary"`
	IPv4       netip.Addr `json:"ipv4" yaml:"ipv4"`
	IPv6       netip.Addr `json:"ipv6" yaml:"ipv6"`
	AddressHex string     `json:"address_hex" yaml:"address_hex"`
	Source     string     `json:"source" yaml:"source"`
	RecordedAt time.Time  `json:"recorded_at" yaml:"recorded_at"`
}

// NewSnapshot captures id. The ID is assigned by the repository.
func NewSnapshot(id machine.Identity) Snapshot {
	recorded := id.ResolvedAt
	if recorded.IsZero() {
		recorded = time.Now().UTC()
	}
	return Snapshot{
		Hostname:   id.Hostname,
		Primary:    id.Primary,
		IPv4:       id.IPv4,
		IPv6:       id.IPv6,
		AddressHex: id.AddressHexText,
		Source:     id.Source,
		RecordedAt: recorded,
	}
}

// Drift describes one field that changed between two snapshots
type Drift struct {
	Field    string `json:"field"`
	Previous string `json:"previous"`
	Current  string `json:"current"`
}

// DriftFrom lists the identity fields of s that differ from prev. An empty
// result means the host came back with the same identity.
func (s Snapshot) DriftFrom(prev Snapshot) []Drift {
	var drift []Drift
	add := func(field, before, after string) {
		if before != after {
			drift = append(drift, Drift{Field: field, Previous: before, Current: after})
		}
	}

	add("hostname", prev.Hostname, s.Hostname)
	add("primary", addrString(prev.Primary), addrString(s.Primary))
	add("ipv4", addrString(prev.IPv4), addrString(s.IPv4))
	add("ipv6", addrString(prev.IPv6), addrString(s.IPv6))
	return drift
}

func addrString(a netip.Addr) string {
	if !a.IsValid() {
		return ""
	}
	return a.String()
}
