package addrtext

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		in   netip.Addr
		want string
	}{
		{netip.MustParseAddr("203.0.113.7"), "203.0.113.7"},
		{netip.MustParseAddr("2001:0db8:0000:0000:0000:0000:0000:0001"), "2001:db8::1"},
		{netip.MustParseAddr("::ffff:10.0.0.5"), "10.0.0.5"},
		{netip.MustParseAddr("fe80::1%eth0"), "fe80::1%eth0"},
		{netip.Addr{}, "0.0.0.0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Canonical(tt.in), "Canonical(%v)", tt.in)
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   netip.Addr
		want string
	}{
		{netip.MustParseAddr("203.0.113.7"), "cb007107"},
		{netip.MustParseAddr("10.0.0.5"), "0a000005"},
		{netip.MustParseAddr("2001:db8::1"), "20010db8000000000000000000000001"},
		{netip.MustParseAddr("fe80::1%eth0"), "fe800000000000000000000000000001"},
		{netip.Addr{}, "00000000"},
	}

	for _, tt := range tests {
		got := Hex(tt.in)
		assert.Equal(t, tt.want, got, "Hex(%v)", tt.in)
	}
}

func TestHexFixedWidth(t *testing.T) {
	assert.Len(t, Hex(netip.MustParseAddr("0.0.0.1")), 8)
	assert.Len(t, Hex(netip.MustParseAddr("::1")), 32)
	assert.Len(t, Hex(netip.MustParseAddr("fe80::1%enp0s31f6")), 32)
}

func TestParseHexZonedAddress(t *testing.T) {
	got, err := ParseHex(Hex(netip.MustParseAddr("fe80::1%eth0")))
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("fe80::1"), got)
}

func TestParseHex(t *testing.T) {
	for _, s := range []string{"192.0.2.1", "fe80::1"} {
		addr := netip.MustParseAddr(s)
		got, err := ParseHex(Hex(addr))
		require.NoError(t, err)
		assert.Equal(t, addr, got)
	}

	_, err := ParseHex("zz")
	assert.Error(t, err)

	_, err = ParseHex("0102")
	assert.Error(t, err)
}
