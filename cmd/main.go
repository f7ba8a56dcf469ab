package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tashifkhan/faculty-appraisal-system/internal/adapters/http/api"
	"github.com/tashifkhan/faculty-appraisal-system/internal/adapters/mq/queue"
	"github.com/tashifkhan/faculty-appraisal-system/internal/adapters/mq/worker"
	repository "github.com/tashifkhan/faculty-appraisal-system/internal/adapters/repository"
	service "github.com/tashifkhan/faculty-appraisal-system/internal/app"
	"github.com/tashifkhan/faculty-appraisal-system/internal/config"
	"github.com/tashifkhan/faculty-appraisal-system/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeoutSlack = 5 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "server failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := logger.Init(logger.WithFormat(logger.Format(cfg.LogFormat))); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log := logger.Get()
	applyLogLevel(ctx, log, cfg.LogLevel)

	a, err := newApplication(ctx, cfg, log)
	if err != nil {
		return err
	}

	if path := os.Getenv(config.FileEnv); path != "" {
		err := config.Watch(ctx, path,
			func(next *config.Config) { applyLogLevel(ctx, log, next.LogLevel) },
			func(err error) { log.Warn(ctx, "config reload failed", logger.Error(err)) },
		)
		if err != nil {
			log.Warn(ctx, "config watch disabled", logger.String("path", path), logger.Error(err))
		}
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           a.handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      cfg.RequestTimeout() + writeTimeoutSlack,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("storage_driver", cfg.StorageDriver),
			logger.Int("workers", a.pool.Size()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info(ctx, "shutting down server...")
	case err := <-serveErr:
		runErr = fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	a.close(shutdownCtx)

	log.Info(ctx, "server stopped")
	return runErr
}

func applyLogLevel(ctx context.Context, log logger.Logger, level string) {
	if err := logger.SetLevelString(level); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", level), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
}

// application owns every long-lived component of the server.
type application struct {
	store   repository.Store
	queue   *queue.InMemoryQueue
	pool    *worker.Pool
	handler http.Handler
	log     logger.Logger
}

func newApplication(ctx context.Context, cfg *config.Config, log logger.Logger) (*application, error) {
	store, err := repository.Open(ctx, cfg.StorageDriver, cfg.StorageDSN)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StorageDriver, err)
	}

	svc := service.New(store, service.WithLogger(log.Named("service")))

	q := queue.NewInMemoryQueue(queue.WithCapacity(cfg.QueueSize))
	pool := worker.NewPool(cfg.WorkerCount, q, svc)
	pool.Start(context.WithoutCancel(ctx))

	stats := &serverStats{
		driver:  cfg.StorageDriver,
		store:   store,
		queue:   q,
		workers: pool.Size(),
		started: time.Now(),
	}
	apiServer := api.NewServer(svc,
		api.WithAuthenticator(api.NewAuthenticator(cfg.AuthSecret)),
		api.WithCORSOrigins(cfg.CORSOrigins),
		api.WithRequestTimeout(cfg.RequestTimeout()),
		api.WithFormQueue(q),
		api.WithStatsProvider(stats),
	)

	return &application{
		store:   store,
		queue:   q,
		pool:    pool,
		handler: apiServer.Handler(),
		log:     log,
	}, nil
}

// close drains the worker pool and releases the store.
func (a *application) close(ctx context.Context) {
	_ = a.queue.Close()
	if err := a.pool.Shutdown(ctx); err != nil {
		a.log.Error(ctx, "worker pool shutdown failed", logger.Error(err))
	}
	if closer, ok := a.store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			a.log.Error(ctx, "store close failed", logger.Error(err))
		}
	}
}

// serverStats backs GET /stats.
type serverStats struct {
	driver  string
	store   repository.Store
	queue   *queue.InMemoryQueue
	workers int
	started time.Time
}

func (s *serverStats) GetStats() map[string]any {
	stats := map[string]any{
		"storage_driver": s.driver,
		"queue_length":   s.queue.Len(),
		"workers":        s.workers,
		"uptime_seconds": time.Since(s.started).Seconds(),
	}
	if counter, ok := s.store.(interface{ Count() int }); ok {
		stats["documents"] = counter.Count()
	}
	return stats
}
