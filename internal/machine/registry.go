package machine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"sync/atomic"
	"time"

	"hostident/internal/addrtext"
)

var (
	// ErrAlreadyInitialized is the panic value of a second Init
	ErrAlreadyInitialized = errors.New("machine identity initialized twice")
	// ErrNotInitialized is the panic value of Instance before Init
	ErrNotInitialized = errors.New("machine identity accessed before initialization")
	// ErrNoHostname means neither an override nor the OS supplied a hostname
	ErrNoHostname = errors.New("unable to determine local hostname")
)

// InterfaceSource enumerates the addresses configured on local interfaces
type InterfaceSource interface {
	Candidates(ctx context.Context) ([]Candidate, error)
}

// HostnameResolver performs forward lookups of the local host and reverse
// lookups of addresses
type HostnameResolver interface {
	LocalHostname(ctx context.Context) (string, error)
	HostnameFor(ctx context.Context, addr netip.Addr) (string, error)
}

// Options are the optional inputs to Init
type Options struct {
	// Hostname overrides the OS hostname. Ignored when Address is set.
	Hostname string
	// Address skips interface enumeration when valid. IPv4-mapped IPv6
	// addresses are normalized to plain IPv4.
	Address netip.Addr
}

// Registry holds the one identity of this process. Init must complete before
// any call to Instance; after that Instance may be called concurrently.
type Registry struct {
	source   InterfaceSource
	resolver HostnameResolver
	logger   *slog.Logger
	now      func() time.Time

	identity atomic.Pointer[Identity]
}

// NewRegistry creates an uninitialized registry
func NewRegistry(source InterfaceSource, resolver HostnameResolver, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		source:   source,
		resolver: resolver,
		logger:   logger.With("component", "machine"),
		now:      time.Now,
	}
}

// Init resolves and stores the identity. It panics with
// ErrAlreadyInitialized if an identity is already stored. The only error it
// returns wraps ErrNoHostname, in which case the registry stays
// uninitialized.
func (r *Registry) Init(ctx context.Context, opts Options) (Identity, error) {
	if r.identity.Load() != nil {
		panic(ErrAlreadyInitialized)
	}

	var id Identity
	if opts.Address.IsValid() {
		id = r.fromAddress(ctx, opts.Address)
	} else {
		var err error
		if id, err = r.fromInterfaces(ctx, opts.Hostname); err != nil {
			return Identity{}, err
		}
	}

	if !r.identity.CompareAndSwap(nil, &id) {
		panic(ErrAlreadyInitialized)
	}

	r.logger.Info("machine identity resolved", "identity", id)
	return id, nil
}

func (r *Registry) fromAddress(ctx context.Context, addr netip.Addr) Identity {
	addr = addr.Unmap()
	hostname, err := r.resolver.HostnameFor(ctx, addr)
	if err != nil {
		r.logger.Warn("failed to find hostname for address",
			"address", addrtext.Canonical(addr), "err", err)
		hostname = ""
	}
	return newIdentity(hostname, explicitSelection(addr), SourceExplicit, r.now())
}

func (r *Registry) fromInterfaces(ctx context.Context, hostname string) (Identity, error) {
	if hostname == "" {
		var err error
		hostname, err = r.resolver.LocalHostname(ctx)
		if err != nil {
			return Identity{}, fmt.Errorf("%w: %w", ErrNoHostname, err)
		}
		if hostname == "" {
			return Identity{}, ErrNoHostname
		}
	}

	candidates, err := r.source.Candidates(ctx)
	if err != nil {
		r.logger.Warn("unable to determine local host address information",
			"hostname", hostname, "err", err)
		candidates = nil
	}
	r.logger.Debug("enumerated interface addresses", "count", len(candidates))

	return newIdentity(hostname, Select(candidates), SourceInterfaces, r.now()), nil
}

// Instance returns the stored identity. It panics with ErrNotInitialized
// before a successful Init.
func (r *Registry) Instance() Identity {
	id := r.identity.Load()
	if id == nil {
		panic(ErrNotInitialized)
	}
	return *id
}

// Initialized reports whether Init has completed
func (r *Registry) Initialized() bool {
	return r.identity.Load() != nil
}
