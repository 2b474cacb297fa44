package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/analyses"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/cache"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/documents"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/llm"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/queue"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/services/health"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/config"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/server"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/storage/db"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/storage/object"
	localstore "github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/storage/object/local"
	miniostore "github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/storage/object/minio"
	s3store "github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/storage/object/s3"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/telemetry"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/suggestions"
)

// App holds shared dependencies.
type App struct {
	Config             config.Config
	Router             *gin.Engine
	DB                 *sql.DB
	Store              object.ObjectStore
	Queue              queue.Client
	Cache              cache.ResultCache
	Analyzer           *scoring.Analyzer
	DocumentsService   *documents.Service
	AnalysesService    *analyses.Service
	SuggestionsService *suggestions.Service
	Health             *health.Service
	DocumentsHandler   *documents.Handler
	AnalysisHandler    *analyses.Handler
	SuggestionHandler  *suggestions.Handler

	closers []func() error
}

// Build prepares shared dependencies and the HTTP router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	app := &App{
		Config: cfg,
		Health: health.NewService(),
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if sqlDB != nil {
		app.DB = sqlDB
		app.Health.Register("database", health.CheckFunc(sqlDB.PingContext))
		if !db.IsLambdaRuntime() {
			app.closers = append(app.closers, sqlDB.Close)
		}
	}

	if app.Store, err = buildStore(ctx, cfg); err != nil {
		return nil, err
	}
	if err := app.buildCache(ctx); err != nil {
		return nil, err
	}
	if err := app.buildQueue(ctx); err != nil {
		return nil, err
	}
	if app.Analyzer, err = buildAnalyzer(cfg); err != nil {
		return nil, err
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		Health:            app.Health,
		DocumentHandler:   app.DocumentsHandler,
		AnalysisHandler:   app.AnalysisHandler,
		SuggestionHandler: app.SuggestionHandler,
	})

	return app, nil
}

// Close releases connections opened by Build.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repositories", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.DefaultLambdaOptions().WithPool(cfg.DBPool)
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.DefaultServerOptions().WithPool(cfg.DBPool)
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "database connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "minio":
		return miniostore.New(ctx, miniostore.Options{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func (a *App) buildCache(ctx context.Context) error {
	if strings.TrimSpace(a.Config.RedisURL) == "" {
		a.Cache = cache.NewMemoryCache(nil)
		return nil
	}
	rc, err := cache.NewRedisCache(ctx, a.Config.RedisURL)
	if err != nil {
		if isDevLike(a.Config.Env) {
			telemetry.Warn("bootstrap.memory_cache", map[string]any{"reason": "redis unavailable", "error": err.Error()})
			a.Cache = cache.NewMemoryCache(nil)
			return nil
		}
		return err
	}
	a.Cache = rc
	a.Health.Register("redis", rc)
	a.closers = append(a.closers, rc.Close)
	return nil
}

func (a *App) buildQueue(ctx context.Context) error {
	switch a.Config.QueueBackend {
	case "sqs":
		client, err := queue.NewSQSClient(ctx, a.Config.SQSQueueURL, a.Config.AWSRegion)
		if err != nil {
			return err
		}
		a.Queue = client
	case "asynq":
		client, err := queue.NewAsynqClient(a.Config.RedisURL)
		if err != nil {
			return err
		}
		a.Queue = client
	}
	if a.Queue != nil {
		q := a.Queue
		a.closers = append(a.closers, func() error { return queue.Close(q) })
	}
	return nil
}

func buildAnalyzer(cfg config.Config) (*scoring.Analyzer, error) {
	path := strings.TrimSpace(cfg.ScoringWeightsFile)
	if path == "" {
		return scoring.NewAnalyzer(scoring.DefaultWeights()), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scoring weights %s: %w", path, err)
	}
	w, err := scoring.ParseWeights(data)
	if err != nil {
		return nil, err
	}
	telemetry.Info("bootstrap.scoring_weights", map[string]any{"path": path, "version": w.Fingerprint()})
	return scoring.NewAnalyzer(w), nil
}

func buildLLM(cfg config.Config) llm.Client {
	switch cfg.LLMProvider {
	case "placeholder":
		return llm.NewBreakerClient(llm.PlaceholderClient{}, llm.DefaultBreakerSettings())
	default:
		return nil
	}
}

func buildServices(app *App) {
	var (
		docRepo        documents.Repo
		analysisRepo   analyses.Repo
		suggestionRepo suggestions.Repo
	)
	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		analysisRepo = &analyses.PGRepo{DB: app.DB}
		suggestionRepo = &suggestions.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		analysisRepo = analyses.NewMemoryRepo()
		suggestionRepo = suggestions.NewMemoryRepo()
	}

	docSvc := &documents.Service{
		Store:           app.Store,
		Repo:            docRepo,
		StorageProvider: app.Config.ObjectStoreType,
	}
	suggestionSvc := &suggestions.Service{Repo: suggestionRepo}
	analysisSvc := &analyses.Service{
		Repo:           analysisRepo,
		Docs:           docSvc,
		Analyzer:       app.Analyzer,
		WeightsVersion: app.Analyzer.Weights.Fingerprint(),
		Cache:          app.Cache,
		CacheTTL:       app.Config.CacheTTL,
		LLM:            buildLLM(app.Config),
		LLMTimeout:     app.Config.LLMTimeout,
		Suggestions:    suggestionSvc,
		JobQueue:       app.Queue,
	}

	app.DocumentsService = docSvc
	app.AnalysesService = analysisSvc
	app.SuggestionsService = suggestionSvc
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.AnalysisHandler = analyses.NewHandler(analysisSvc)
	app.SuggestionHandler = suggestions.NewHandler(suggestionSvc)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
