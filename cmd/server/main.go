package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/leads-api/internal/config"
	"github.com/hongminglow/leads-api/internal/logging"
	"github.com/hongminglow/leads-api/internal/server"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	slog.SetDefault(logger.Slog())

	ctx := context.Background()
	if envErr != nil {
		logger.Debug(ctx, "no .env file found; relying on existing environment")
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "leads api stopped", "error", err)
		os.Exit(1)
	}
}

// run owns the account store so its deferred close runs on every exit path.
func run(ctx context.Context, cfg config.Config, logger logging.Logger) error {
	store, closeStore, err := server.OpenAccountStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("init account store: %w", err)
	}
	defer closeStore()

	srv, err := server.New(cfg, store, logger)
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info(ctx, "leads api listening", "addr", srv.Addr())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-sigCh:
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Warn(ctx, "graceful shutdown error", "error", err)
	}
	return nil
}
