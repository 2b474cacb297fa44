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

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/bootstrap"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/config"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/server"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/telemetry"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/tracing"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	telemetry.Configure(os.Stdout, cfg.LogLevel)

	shutdownTracing, err := tracing.Setup(cfg.TracingEnabled, os.Stdout)
	if err != nil {
		log.Fatalf("tracing: %v", err)
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              server.Addr(cfg.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		telemetry.Info("api.listening", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	telemetry.Info("api.shutdown", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		telemetry.Error("api.shutdown_failed", map[string]any{"error": err.Error()})
	}
	_ = shutdownTracing(shutdownCtx)
}
