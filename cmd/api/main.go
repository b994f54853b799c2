// @title virtual-pet API
// @version 1.0
// @description Mascota virtual: stats que decaen por tick y se reponen con acciones.
// @BasePath /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"virtual-pet/internal/adapters/storage"
	"virtual-pet/internal/domain/pets"
	"virtual-pet/internal/platform/config"
	"virtual-pet/internal/platform/logger"
	"virtual-pet/internal/platform/scheduler"
	"virtual-pet/internal/router"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		// todavía no hay logger configurado
		logger.NewFromEnv().Error("load config", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	repo, closeRepo, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeRepo(); err != nil {
			log.Warn("close storage", map[string]any{"err": err.Error()})
		}
	}()
	log.Info("storage ready", map[string]any{"driver": cfg.Storage.Driver})

	petsSvc := pets.NewService(repo, cfg.Decay.Rules, log)

	// Inicialización explícita antes de aceptar tráfico.
	if err := petsSvc.Bootstrap(ctx); err != nil {
		return err
	}

	go scheduler.Every(ctx, cfg.Decay.Interval, "decay", log, func(ctx context.Context) error {
		_, err := petsSvc.DecayAll(ctx)
		return err
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router.NewRouter(router.Options{Logger: log, Pets: petsSvc}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.HTTP.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
