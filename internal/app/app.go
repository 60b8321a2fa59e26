package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"taskNotes/internal/config"
	"taskNotes/internal/handlers"
	"taskNotes/internal/logger"
	"taskNotes/internal/middleware"
	"taskNotes/internal/render"
	"taskNotes/internal/repository/task/inmemory"
	"taskNotes/internal/repository/task/postgres"
	"taskNotes/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const defaultShutdownTimeout = 15 * time.Second

type App struct {
	config    *config.Config
	server    *http.Server
	shutdowns []func() // run in reverse order on shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.shutdowns = append(a.shutdowns, logger.Sync)

	repo, err := a.initRepository(ctx)
	if err != nil {
		return err
	}

	svc := service.NewTaskService(repo, nil)

	renderer, err := render.New()
	if err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}

	handler := handlers.NewTaskHandler(&svc, renderer)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Recovery)
	r.Use(middleware.RateLimit(300))
	r.Mount("/", handler.Routes())

	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return nil
}

func (a *App) initRepository(ctx context.Context) (service.TaskRepository, error) {
	switch a.config.Repository.Type {
	case "postgres":
		storage, err := postgres.New(ctx, a.config.Database.URL, postgres.PoolConfig{
			MaxConns:    a.config.Database.MaxConnections,
			MinConns:    a.config.Database.MinConnections,
			IdleTimeout: a.config.Database.IdleTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("init postgres repository: %w", err)
		}
		if err := storage.Migrate(ctx); err != nil {
			storage.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		a.shutdowns = append(a.shutdowns, storage.Close)
		return storage, nil

	case "inmemory":
		return inmemory.NewTaskStorage(), nil
	}

	return nil, fmt.Errorf("unknown repository type %q", a.config.Repository.Type)
}

// Run serves until ctx is cancelled, then drains in-flight requests and runs
// the registered shutdown hooks.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("Server started", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.runShutdowns()
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	timeout := a.config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("Server shutting down")
	err := a.server.Shutdown(shutdownCtx)
	a.runShutdowns()
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (a *App) runShutdowns() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
