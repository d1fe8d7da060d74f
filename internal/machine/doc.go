// Package machine resolves the identity of the local host.
//
// The identity (hostname plus best IPv4, IPv6 and primary address) is computed
// once at startup by a Registry and may be read concurrently afterwards.
//
// # Address Ranking
//
// Every candidate address is classified into a Rank. Higher ranks are more
// useful for identifying the host to others:
//
//	RankNotAnAddress < RankLoopback < RankNonRoutable < RankMulticast < RankGlobal
//
// Select keeps the first candidate seen at the highest rank for each family and
// prefers IPv4 as the primary address when both families rank equally.
//
// # Lifecycle
//
// A Registry is initialized exactly once. Calling Init twice, or Instance
// before Init, is a startup-ordering bug and panics.
package machine
