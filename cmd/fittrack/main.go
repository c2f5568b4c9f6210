package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/neetharmaliackal/fittrack-pro-02/internal/api"
	"github.com/neetharmaliackal/fittrack-pro-02/internal/config"
	"github.com/neetharmaliackal/fittrack-pro-02/internal/session"
	"github.com/neetharmaliackal/fittrack-pro-02/internal/tui"
	"github.com/neetharmaliackal/fittrack-pro-02/pkg/httpclient"
	"github.com/neetharmaliackal/fittrack-pro-02/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The terminal belongs to the UI, so structured logs go to a file.
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o700); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	log := logger.NewWithWriter("fittrack", cfg.LogLevel, logFile)
	log.Info("starting fittrack",
		slog.String("environment", cfg.Environment),
		slog.String("api_base_url", cfg.APIBaseURL),
	)

	// Rehydrate any session a previous run left behind.
	store := session.Open(filepath.Join(cfg.StateDir, session.StorageFilename), log)

	hc := httpclient.New(httpclient.Config{
		Timeout:         cfg.RequestTimeout,
		MaxConnsPerHost: httpclient.DefaultConfig().MaxConnsPerHost,
	})
	client := api.New(cfg.APIBaseURL, hc, store.AccessToken, log)

	ctx := session.NewContext(context.Background(), store)
	if err := tui.Run(ctx, client, log); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	log.Info("fittrack stopped")
	return nil
}
