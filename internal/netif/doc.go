// Package netif enumerates the addresses configured on local network
// interfaces.
//
// Each platform has exactly one adapter, chosen at build time: netlink on
// Linux and the net package's interface table elsewhere. Ranking and
// selection are not done here; see package machine.
package netif
