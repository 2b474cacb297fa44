// Command migrate applies the embedded schema migrations.
//
//	go run ./cmd/migrate [up|up-by-one|up-to N|down|down-to N|redo|reset|status|version]
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/config"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/storage/db"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Configure(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := "up"
	var args []string
	if len(os.Args) > 1 {
		command = os.Args[1]
		args = os.Args[2:]
	}
	if err := run(ctx, cfg, command, args); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"command": command, "error": err.Error()})
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, command string, args []string) error {
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.DefaultMigrateOptions().WithPool(cfg.DBPool))
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	start := time.Now()
	if err := db.Migrate(ctx, sqlDB, command, args...); err != nil {
		return err
	}
	fields := map[string]any{"command": command, "duration_ms": time.Since(start).Milliseconds()}
	if version, err := db.SchemaVersion(ctx, sqlDB); err == nil {
		fields["version"] = version
	}
	telemetry.Info("migrate.done", fields)
	return nil
}
