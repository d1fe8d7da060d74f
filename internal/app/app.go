// Package app assembles hostident's components.
//
// Resolve is the one-shot path used by commands that only need the identity.
// New builds the long-running service as an fx application: it resolves the
// identity during construction, records a snapshot, publishes metrics and
// serves the HTTP API until stopped.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"hostident/internal/config"
	"hostident/internal/machine"
	"hostident/internal/netif"
	"hostident/internal/resolve"
)

// NewSource returns the static candidate list when one is configured and the
// platform interface source otherwise.
func NewSource(cfg *config.Config) machine.InterfaceSource {
	if len(cfg.Identity.Candidates) > 0 {
		return netif.ParseStatic(cfg.Identity.Candidates)
	}
	return netif.New()
}

// NewResolver returns the hostname resolver selected by the config
func NewResolver(cfg *config.Config) (machine.HostnameResolver, error) {
	r, err := resolve.New(cfg.Resolver)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// NewRegistry creates the process identity registry
func NewRegistry(src machine.InterfaceSource, res machine.HostnameResolver) *machine.Registry {
	return machine.NewRegistry(src, res, slog.Default())
}

// Resolve builds a registry from cfg and initializes it
func Resolve(ctx context.Context, cfg *config.Config) (*machine.Registry, machine.Identity, error) {
	res, err := NewResolver(cfg)
	if err != nil {
		return nil, machine.Identity{}, fmt.Errorf("resolver: %w", err)
	}

	reg := NewRegistry(NewSource(cfg), res)
	id, err := reg.Init(ctx, cfg.IdentityOptions())
	if err != nil {
		return nil, machine.Identity{}, err
	}
	return reg, id, nil
}
