package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dropDatabas3/wizauth/internal/config"
	"github.com/dropDatabas3/wizauth/internal/observability/logger"
)

// Run levanta el servidor y bloquea hasta que ctx se cancele; entonces
// hace shutdown ordenado con cfg.Server.ShutdownTimeout.
func Run(ctx context.Context, cfg *config.Config) error {
	log := logger.L().With(logger.Component("server"))

	handler, _, cleanup, err := BuildHandler(ctx, cfg)
	defer func() {
		if cerr := cleanup(); cerr != nil {
			log.Warn("cleanup error", logger.Err(cerr))
		}
	}()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening",
			logger.String("addr", cfg.Server.Addr),
			logger.String("prefix", cfg.Server.APIPrefix),
			logger.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", logger.String("timeout", cfg.Server.ShutdownTimeout.String()))
	sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
