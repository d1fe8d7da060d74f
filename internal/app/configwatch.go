package app

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.uber.org/fx"

	"hostident/internal/config"
	"hostident/internal/logging"
	"hostident/internal/watcher"
)

// WatchConfig warns when settings that affect the identity change in the
// config file at path. The running identity is never replaced; a restart is
// needed to apply them. Reloads are compared with the file as it was at
// start, so command line overrides are not reported.
func WatchConfig(path string) fx.Option {
	return fx.Invoke(func(lc fx.Lifecycle) {
		logger := logging.Component("config")
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})

		var (
			mu       sync.Mutex
			baseline *config.Config
		)
		w := watcher.New(path, func() {
			mu.Lock()
			defer mu.Unlock()

			next, _, err := config.LoadFromPath(path)
			if err != nil {
				logger.Warn("config reload failed", "path", path, "err", err)
				return
			}
			if changed := changedIdentitySettings(baseline, next); len(changed) > 0 {
				logger.Warn("identity settings changed; restart to apply", "path", path, "settings", changed)
			}
			baseline = next
		}, logger)

		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				cfg, _, err := config.LoadFromPath(path)
				if err != nil {
					return err
				}
				baseline = cfg

				go func() {
					defer close(done)
					if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
						logger.Warn("config watch stopped", "path", path, "err", err)
					}
				}()
				return nil
			},
			OnStop: func(stopCtx context.Context) error {
				cancel()
				select {
				case <-done:
					return nil
				case <-stopCtx.Done():
					return stopCtx.Err()
				}
			},
		})
	})
}

// changedIdentitySettings lists the keys that differ between the running and
// the reloaded config
func changedIdentitySettings(running, next *config.Config) []string {
	var changed []string
	if running.Identity.Hostname != next.Identity.Hostname {
		changed = append(changed, "identity.hostname")
	}
	if running.Address() != next.Address() {
		changed = append(changed, "identity.address")
	}
	if !slices.Equal(running.Identity.Candidates, next.Identity.Candidates) {
		changed = append(changed, "identity.candidates")
	}
	if running.Resolver.Mode != next.Resolver.Mode {
		changed = append(changed, "resolver.mode")
	}
	if !slices.Equal(running.Resolver.Servers, next.Resolver.Servers) {
		changed = append(changed, "resolver.servers")
	}
	return changed
}
