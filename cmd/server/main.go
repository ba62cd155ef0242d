package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/exp/slog"

	"datasets/internal/app/server/api"
	"datasets/internal/app/server/config"
	"datasets/internal/infrastructure/storage"
	"datasets/internal/utils/logger"
)

func main() {
	conf := config.MustLoad()
	log := logger.NewWithLevel(conf.Env, conf.Logger.LogLevel)

	if err := run(conf, log); err != nil {
		log.Error("server stopped", logger.Err(err))
		os.Exit(1)
	}
}

func run(conf *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if conf.IsLocal() {
		log.Debug("database", slog.String("uri", conf.DB.DatabaseURI))
	}

	st, err := storage.New(ctx, conf, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("failed to close storage", logger.Err(err))
		}
	}()

	srv := &http.Server{
		Addr:    conf.Server.RunAddress,
		Handler: api.New(conf, st, log),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server",
			slog.String("address", conf.Server.RunAddress),
			slog.String("env", conf.Env),
			slog.String("driver", conf.DB.Driver),
		)
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

	log.Info("shutting down", slog.Duration("timeout", conf.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
