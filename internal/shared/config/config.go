package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port               string   `validate:"required"`
	Env                string   `validate:"oneof=dev local staging production"`
	LogLevel           string   `validate:"oneof=debug info warn error"`
	CORSAllowOrigin    []string
	ObjectStoreType    string `validate:"oneof=local s3 minio"`
	LocalStoreDir      string
	AWSRegion          string
	S3Bucket           string `validate:"required_if=ObjectStoreType s3"`
	S3Prefix           string
	SSEKMSKeyID        string
	MinioEndpoint      string `validate:"required_if=ObjectStoreType minio"`
	MinioAccessKey     string
	MinioSecretKey     string
	MinioBucket        string `validate:"required_if=ObjectStoreType minio"`
	MinioUseSSL        bool
	QueueBackend       string `validate:"oneof=none sqs asynq"`
	SQSQueueURL        string `validate:"required_if=QueueBackend sqs"`
	RedisURL           string `validate:"required_if=QueueBackend asynq"`
	CacheTTL           time.Duration
	LLMProvider        string `validate:"oneof=none placeholder"`
	LLMTimeout         time.Duration `validate:"gt=0"`
	ScoringWeightsFile string
	DatabaseURL        string
	RateLimitRPM       int `validate:"gte=0"`
	RateLimitBurst     int `validate:"gte=0"`
	TracingEnabled     bool
	SuggestionTTL      time.Duration `validate:"gte=0"`
	WorkerConcurrency  int           `validate:"gte=1,lte=64"`
	DBPool             DBPool
}

// DBPool overrides database pool defaults. Zero values keep the defaults of
// the calling process type (server, Lambda or migration).
type DBPool struct {
	MaxOpenConns    int `validate:"gte=0"`
	MaxIdleConns    int `validate:"gte=0"`
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// Load reads configuration from .env files, an optional YAML file named by
// CONFIG_FILE and environment variables, in increasing precedence.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env", "cmd/.env")

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			telemetry.Warn("config.file_not_loaded", map[string]any{"path": path, "error": err.Error()})
		}
	}

	env := normalizeEnv(v.GetString("ENV"))
	dbURL := v.GetString("DATABASE_URL")
	if env == "production" && dbURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": env})
	}

	return Config{
		Port:               v.GetString("PORT"),
		Env:                env,
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		CORSAllowOrigin:    splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		ObjectStoreType:    normalizeStoreType(v.GetString("OBJECT_STORE")),
		LocalStoreDir:      v.GetString("LOCAL_STORE_DIR"),
		AWSRegion:          v.GetString("AWS_REGION"),
		S3Bucket:           v.GetString("S3_BUCKET"),
		S3Prefix:           v.GetString("S3_PREFIX"),
		SSEKMSKeyID:        v.GetString("SSE_KMS_KEY_ID"),
		MinioEndpoint:      v.GetString("MINIO_ENDPOINT"),
		MinioAccessKey:     v.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey:     v.GetString("MINIO_SECRET_KEY"),
		MinioBucket:        v.GetString("MINIO_BUCKET"),
		MinioUseSSL:        v.GetBool("MINIO_USE_SSL"),
		QueueBackend:       normalizeQueueBackend(v.GetString("QUEUE_BACKEND"), v.GetString("RA_SQS_QUEUE_URL")),
		SQSQueueURL:        v.GetString("RA_SQS_QUEUE_URL"),
		RedisURL:           v.GetString("REDIS_URL"),
		CacheTTL:           v.GetDuration("CACHE_TTL"),
		LLMProvider:        strings.ToLower(v.GetString("LLM_PROVIDER")),
		LLMTimeout:         v.GetDuration("LLM_TIMEOUT"),
		ScoringWeightsFile: v.GetString("SCORING_WEIGHTS_FILE"),
		DatabaseURL:        dbURL,
		RateLimitRPM:       v.GetInt("RATE_LIMIT_RPM"),
		RateLimitBurst:     v.GetInt("RATE_LIMIT_BURST"),
		TracingEnabled:     v.GetBool("TRACING_ENABLED"),
		SuggestionTTL:      v.GetDuration("SUGGESTION_TTL"),
		WorkerConcurrency:  v.GetInt("WORKER_CONCURRENCY"),
		DBPool: DBPool{
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: v.GetDuration("DB_CONN_MAX_IDLE_TIME"),
			PingTimeout:     v.GetDuration("DB_PING_TIMEOUT"),
		},
	}
}

// Validate checks field constraints. Callers decide whether a failure is fatal.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:5173")
	v.SetDefault("OBJECT_STORE", "local")
	v.SetDefault("LOCAL_STORE_DIR", "./data")
	v.SetDefault("MINIO_USE_SSL", true)
	v.SetDefault("CACHE_TTL", 24*time.Hour)
	v.SetDefault("LLM_PROVIDER", "none")
	v.SetDefault("LLM_TIMEOUT", 60*time.Second)
	v.SetDefault("RATE_LIMIT_RPM", 60)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("SUGGESTION_TTL", 30*24*time.Hour)
	v.SetDefault("WORKER_CONCURRENCY", 2)
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	case "minio":
		return "minio"
	default:
		return "local"
	}
}

// normalizeQueueBackend keeps older deployments that only set the SQS URL working.
func normalizeQueueBackend(raw, sqsURL string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sqs":
		return "sqs"
	case "asynq":
		return "asynq"
	case "none":
		return "none"
	}
	if strings.TrimSpace(sqsURL) != "" {
		return "sqs"
	}
	return "none"
}
