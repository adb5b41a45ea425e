package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobfit-backend/internal/bootstrap"
	"jobfit-backend/internal/shared/config"
	"jobfit-backend/internal/shared/server"
	"jobfit-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	// WriteTimeout must outlast the slowest provider call plus rendering.
	srv := &http.Server{
		Addr:         server.Addr(cfg.Port),
		Handler:      app.Router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: time.Duration(cfg.LLMTimeoutSeconds+30) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		telemetry.Info("server.shutdown", map[string]any{"addr": srv.Addr})
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			telemetry.Error("server.shutdown_failed", map[string]any{"err": err.Error()})
		}
		close(idleConnsClosed)
	}()

	telemetry.Info("server.start", map[string]any{
		"addr": srv.Addr,
		"env":  cfg.Env,
	})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}

	<-idleConnsClosed
	app.Shutdown()
}
