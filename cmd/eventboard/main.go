package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/eventboard/internal/adapters/http/api"
	"github.com/okian/eventboard/internal/adapters/http/site"
	"github.com/okian/eventboard/internal/adapters/http/swagger"
	"github.com/okian/eventboard/internal/adapters/repository"
	service "github.com/okian/eventboard/internal/app"
	"github.com/okian/eventboard/internal/config"
	"github.com/okian/eventboard/pkg/logger"
	"github.com/okian/eventboard/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	systemMetricsInterval  = 10 * time.Second
	serviceMetricsInterval = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	if err := logger.InitWithOptions(logger.Options{Format: cfg.LogFormat}); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}
	log := logger.Get()

	// A broken events file must stop startup rather than serve stale pages.
	store, err := repository.Load(cfg.EventsFile, repository.WithLocation(cfg.Location()))
	if err != nil {
		log.Error(ctx, "failed to load events", logger.String("file", cfg.EventsFile), logger.Error(err))
		return err
	}

	svc := newService(cfg, store)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return err
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err, ok := <-serveErr:
		if ok {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			return err
		}
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
	return nil
}

func newService(cfg *config.Config, store repository.Store) *service.Service {
	return service.New(store,
		service.WithLogger(logger.Named("service")),
		service.WithLocation(cfg.Location()),
		service.WithLocale(cfg.LocaleTag()),
		service.WithMembershipURL(cfg.MembershipURL),
		service.WithRefreshSchedule(cfg.RefreshCron),
	)
}

// newMux wires docs, the JSON API and the site. The site owns "/".
func newMux(ctx context.Context, svc *service.Service) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)
	site.Register(ctx, mux, svc)
	return mux
}

// startSystemMetricsUpdater updates process metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater refreshes service gauges until ctx is done.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}

func updateServiceMetrics(svc *service.Service) {
	stats := svc.GetStats()

	if events, ok := stats["events"].(int); ok {
		metrics.UpdateEventsLoaded(events)
	}

	upcoming, okUp := stats["upcoming"].(int)
	past, okPast := stats["past"].(int)
	if okUp && okPast {
		metrics.UpdatePartitionSizes(upcoming, past)
	}
}
