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

	"github.com/existflow/plotline/internal/logger"
	"github.com/existflow/plotline/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "plotline-devserver: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logCfg := logger.DefaultConfig()
	logCfg.FilePath = ""
	logCfg.Console = true
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		logCfg.Level = logger.ParseLevel(lvl)
	}
	if err := logger.Init(logCfg); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() {
		_ = logger.Close()
	}()

	cfg, err := server.LoadConfig(ctx)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Plotline dev server starting", logger.F("port", cfg.Port))
		errCh <- srv.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
