// Package addrtext renders addresses for logs and compact identifiers.
package addrtext

import (
	"encoding/hex"
	"net/netip"
)

// unset is how an absent address renders: as the empty IPv4 slot it came from.
var unset = netip.IPv4Unspecified()

// Canonical returns the canonical text form of addr (RFC 5952 for IPv6).
// An IPv6 zone is kept. The zero Addr renders as "0.0.0.0".
func Canonical(addr netip.Addr) string {
	if !addr.IsValid() {
		addr = unset
	}
	return addr.Unmap().String()
}

// Hex returns the address bytes in network order as fixed width lowercase
// hex: 8 characters for IPv4 and 32 for IPv6. Zones are dropped. The zero
// Addr renders as "00000000".
func Hex(addr netip.Addr) string {
	if !addr.IsValid() {
		addr = unset
	}
	b, _ := addr.Unmap().WithZone("").MarshalBinary()
	return hex.EncodeToString(b)
}

// ParseHex is the inverse of Hex.
func ParseHex(s string) (netip.Addr, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return netip.Addr{}, err
	}
	var addr netip.Addr
	if err := addr.UnmarshalBinary(b); err != nil {
		return netip.Addr{}, err
	}
	return addr, nil
}
