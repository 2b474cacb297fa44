package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/hibiken/asynq"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/bootstrap"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/config"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/telemetry"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/workerproc"
)

const (
	sqsRegion       = "us-east-1"
	sweepInterval   = time.Hour
	shutdownTimeout = 30 * time.Second
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	telemetry.Configure(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}
	defer app.Close()

	go workerproc.Sweeper{
		Expirer:  app.SuggestionsService,
		TTL:      cfg.SuggestionTTL,
		Interval: sweepInterval,
	}.Run(ctx)

	switch cfg.QueueBackend {
	case "sqs":
		runSQS(ctx, cfg, app)
	case "asynq":
		runAsynq(ctx, cfg, app)
	default:
		log.Fatalf("worker requires QUEUE_BACKEND=sqs or asynq, got %q", cfg.QueueBackend)
	}
}

func runSQS(ctx context.Context, cfg config.Config, app *bootstrap.App) {
	region := cfg.AWSRegion
	if strings.TrimSpace(region) == "" {
		region = sqsRegion
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}

	consumer := &workerproc.SQSConsumer{
		Client:            sqs.NewFromConfig(awsCfg),
		QueueURL:          cfg.SQSQueueURL,
		Processor:         app.AnalysesService,
		Concurrency:       cfg.WorkerConcurrency,
		VisibilitySeconds: envInt("RA_SQS_VISIBILITY_TIMEOUT_SECONDS", workerproc.DefaultVisibilitySeconds),
		ShutdownTimeout:   shutdownTimeout,
	}
	consumer.Run(ctx)
}

func runAsynq(ctx context.Context, cfg config.Config, app *bootstrap.App) {
	opt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		log.Fatalf("parse redis url: %v", err)
	}
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency:     cfg.WorkerConcurrency,
		ShutdownTimeout: shutdownTimeout,
	})
	if err := srv.Start(workerproc.NewServeMux(app.AnalysesService)); err != nil {
		log.Fatalf("asynq start: %v", err)
	}
	telemetry.Info("worker.asynq.started", map[string]any{"concurrency": cfg.WorkerConcurrency})
	<-ctx.Done()
	srv.Shutdown()
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}
