package machine

import "net/netip"

// Family is the address family of a candidate
type Family int

const (
	FamilyNone Family = iota
	FamilyIPv4
	FamilyIPv6
)

// String returns the family name
func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "ipv4"
	case FamilyIPv6:
		return "ipv6"
	default:
		return "none"
	}
}

// Candidate is a single address observed while enumerating interfaces.
// Interface is informational only and may be empty.
type Candidate struct {
	Interface string
	Addr      netip.Addr
}

// Family reports the candidate's address family. IPv4-mapped IPv6 addresses
// count as IPv4.
func (c Candidate) Family() Family {
	return familyOf(c.Addr)
}

func familyOf(addr netip.Addr) Family {
	switch {
	case !addr.IsValid():
		return FamilyNone
	case addr.Unmap().Is4():
		return FamilyIPv4
	default:
		return FamilyIPv6
	}
}

// Selection is the outcome of one selection pass. Unset addresses are the
// zero netip.Addr with RankNotAnAddress.
type Selection struct {
	IPv4     netip.Addr
	IPv4Rank Rank
	IPv6     netip.Addr
	IPv6Rank Rank
	Primary  netip.Addr
}

// Select picks the best IPv4 and IPv6 address from candidates and derives the
// primary address.
//
// A candidate replaces the current best for its family only when its rank is
// strictly higher, so among equal ranks the first one enumerated wins. The
// primary is the IPv4 best unless the IPv6 best ranks strictly higher.
func Select(candidates []Candidate) Selection {
	var sel Selection

	for _, c := range candidates {
		rank := Classify(c.Addr)
		if rank == RankNotAnAddress {
			continue
		}

		addr := c.Addr.Unmap()
		switch familyOf(addr) {
		case FamilyIPv4:
			if rank > sel.IPv4Rank {
				sel.IPv4, sel.IPv4Rank = addr, rank
			}
		case FamilyIPv6:
			if rank > sel.IPv6Rank {
				sel.IPv6, sel.IPv6Rank = addr, rank
			}
		}
	}

	sel.Primary = sel.primary()
	return sel
}

func (s Selection) primary() netip.Addr {
	if s.IPv4Rank >= s.IPv6Rank {
		return s.IPv4
	}
	return s.IPv6
}

// explicitSelection places a single supplied address in the slot matching its
// family without ranking it.
func explicitSelection(addr netip.Addr) Selection {
	addr = addr.Unmap()
	sel := Selection{Primary: addr}
	switch familyOf(addr) {
	case FamilyIPv4:
		sel.IPv4, sel.IPv4Rank = addr, Classify(addr)
	case FamilyIPv6:
		sel.IPv6, sel.IPv6Rank = addr, Classify(addr)
	}
	return sel
}
