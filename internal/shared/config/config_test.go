package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OBJECT_STORE", "")
	t.Setenv("QUEUE_BACKEND", "")
	t.Setenv("RA_SQS_QUEUE_URL", "")
	t.Setenv("ENV", "")

	cfg := Load()
	if cfg.Port == "" {
		t.Fatalf("expected default port")
	}
	if cfg.ObjectStoreType != "local" {
		t.Fatalf("expected local store, got %q", cfg.ObjectStoreType)
	}
	if cfg.QueueBackend != "none" {
		t.Fatalf("expected no queue backend, got %q", cfg.QueueBackend)
	}
	if cfg.LLMTimeout != 60*time.Second {
		t.Fatalf("expected 60s llm timeout, got %s", cfg.LLMTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("DATABASE_URL", "postgres://localhost/resumes")
	t.Setenv("RA_SQS_QUEUE_URL", "https://sqs.example/queue")
	t.Setenv("QUEUE_BACKEND", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_PING_TIMEOUT", "2s")

	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("expected production env, got %q", cfg.Env)
	}
	if cfg.QueueBackend != "sqs" {
		t.Fatalf("expected sqs backend inferred from queue url, got %q", cfg.QueueBackend)
	}
	if cfg.DBPool.MaxOpenConns != 7 || cfg.DBPool.PingTimeout != 2*time.Second {
		t.Fatalf("unexpected db pool %+v", cfg.DBPool)
	}
	if len(cfg.CORSAllowOrigin) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSAllowOrigin)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("expected 5m cache ttl, got %s", cfg.CacheTTL)
	}
}

func TestValidateRejectsIncompleteMinio(t *testing.T) {
	cfg := Load()
	cfg.ObjectStoreType = "minio"
	cfg.MinioEndpoint = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "MinioEndpoint") {
		t.Fatalf("expected MinioEndpoint in error, got %v", err)
	}
}
