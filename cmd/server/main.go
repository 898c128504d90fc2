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

	"github.com/gin-gonic/gin"

	"github.com/fardannozami/habit-streak/internal/app/usecase"
	"github.com/fardannozami/habit-streak/internal/config"
	"github.com/fardannozami/habit-streak/internal/infra/httpapi"
	"github.com/fardannozami/habit-streak/internal/infra/storage"
	"github.com/fardannozami/habit-streak/internal/logger"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile, Prefix: "api"}); err != nil {
		logger.Fatal("failed to init logger", "error", err)
	}
	if len(cfg.APITokens) == 0 {
		logger.Warn("API_TOKENS is empty, every /api request will be rejected")
	}

	if err := run(cfg); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}

func run(cfg config.Config) error {
	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}

	ctx := context.Background()
	store, db, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer db.Close()

	gin.SetMode(gin.ReleaseMode)
	handler := httpapi.NewHandler(usecase.NewUsecases(store), store, usecase.TodayIn(loc, nil))
	router := httpapi.NewRouter(handler, httpapi.StaticTokens(cfg.APITokens), cfg.RequestTimeout)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-done:
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	return nil
}
