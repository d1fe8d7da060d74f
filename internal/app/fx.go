package app

import (
	"context"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"hostident/internal/config"
	"hostident/internal/handler"
	"hostident/internal/logging"
	"hostident/internal/machine"
	"hostident/internal/metrics"
	"hostident/internal/repository"
	"hostident/internal/repository/sqlite"
	"hostident/internal/service"
)

// Module provides every service component. It expects a *config.Config in
// the graph.
var Module = fx.Module("hostident",
	fx.Provide(
		NewSource,
		NewResolver,
		NewRegistry,
		provideIdentity,
		provideRepository,
		provideSnapshotService,
		metrics.New,
		provideHandler,
		provideServer,
	),
	fx.Invoke(
		recordSnapshot,
		observeMetrics,
		startServer,
	),
)

// New builds the service application for cfg. Extra options are appended,
// which tests use to populate components.
func New(cfg *config.Config, debug bool, opts ...fx.Option) *fx.App {
	return fx.New(
		fx.Supply(cfg),
		Module,
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logging.FxLogger(debug)}
		}),
		fx.Options(opts...),
	)
}

// Run starts the service and blocks until ctx is done
func Run(ctx context.Context, cfg *config.Config, debug bool, opts ...fx.Option) error {
	app := New(cfg, debug, opts...)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	<-ctx.Done()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancelStop()
	return app.Stop(stopCtx)
}

// provideIdentity resolves the identity while the graph is built, so a
// missing hostname aborts startup before anything listens.
func provideIdentity(reg *machine.Registry, cfg *config.Config) (machine.Identity, error) {
	return reg.Init(context.Background(), cfg.IdentityOptions())
}

func provideRepository(lc fx.Lifecycle, cfg *config.Config) (repository.SnapshotRepository, error) {
	path := cfg.Database.Path
	if path != ":memory:" {
		if err := config.EnsureDir(path); err != nil {
			return nil, err
		}
	}

	repo, err := sqlite.New(path)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(repo.Close))
	return repo, nil
}

func provideSnapshotService(repo repository.SnapshotRepository) *service.SnapshotService {
	return service.NewSnapshotService(repo, logging.Component("app"))
}

func provideHandler(reg *machine.Registry, snaps *service.SnapshotService, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()
	handler.NewMachineHandler(reg, snaps).Register(mux)
	mux.Handle("GET /metrics", m.Handler())

	return handler.Chain(mux,
		handler.Recover,
		handler.WithIdentity(reg),
		handler.Logger,
	)
}

func provideServer(cfg *config.Config, h http.Handler) *Server {
	return NewServer(cfg.Server.Addr, h)
}

// recordSnapshot keeps serving when the store fails; history is best effort.
func recordSnapshot(id machine.Identity, snaps *service.SnapshotService) {
	if _, _, err := snaps.Record(context.Background(), id); err != nil {
		logging.Component("app").Warn("failed to record identity snapshot", "err", err)
	}
}

func observeMetrics(id machine.Identity, m *metrics.Metrics) {
	m.Observe(id)
}

func startServer(lc fx.Lifecycle, srv *Server) {
	lc.Append(fx.Hook{
		OnStart: srv.Start,
		OnStop:  srv.Stop,
	})
}
