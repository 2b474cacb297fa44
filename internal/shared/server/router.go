package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/analyses"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/documents"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/services/health"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/config"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/metrics"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/server/middleware"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/server/respond"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/suggestions"
)

// Rate limit groups.
const (
	GroupDefault = "DEFAULT"
	GroupPolling = "POLLING"
	GroupAnalyze = "ANALYZE"
	GroupUpload  = "UPLOAD"
)

// RouterDeps carries the handlers mounted by NewRouter. Nil handlers are skipped.
type RouterDeps struct {
	Config            config.Config
	Health            *health.Service
	DocumentHandler   *documents.Handler
	AnalysisHandler   *analyses.Handler
	SuggestionHandler *suggestions.Handler
	Limiter           *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env != "dev" && deps.Config.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		metrics.Middleware(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)
	r.GET("/metrics", metrics.Handler())

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		report := healthSvc.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})

	protected := api.Group("")
	protected.Use(
		middleware.Identity(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:        RateLimitRules(deps.Config.RateLimitRPM, deps.Config.RateLimitBurst),
			DefaultGroup: GroupDefault,
			GroupFor:     rateLimitGroup,
			Limiter:      deps.Limiter,
		}),
	)
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(protected)
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(protected)
	}
	if deps.SuggestionHandler != nil {
		deps.SuggestionHandler.RegisterRoutes(protected)
	}

	return r
}

// RateLimitRules derives per-group budgets from the base requests-per-minute.
// Polling gets four times the base budget; scoring endpoints get half. A zero
// rpm disables limiting.
func RateLimitRules(rpm, burst int) map[string]middleware.RateLimitRule {
	if rpm <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = rpm
	}
	return map[string]middleware.RateLimitRule{
		GroupDefault: middleware.PerMinute(rpm, burst),
		GroupPolling: middleware.PerMinute(rpm*4, burst*4),
		GroupAnalyze: middleware.PerMinute(max(rpm/2, 1), max(burst/2, 1)),
		GroupUpload:  middleware.PerMinute(max(rpm/2, 1), max(burst/2, 1)),
	}
}

func rateLimitGroup(c *gin.Context) string {
	path := c.FullPath()
	switch {
	case c.Request.Method == http.MethodGet && strings.HasPrefix(path, "/api/v1/analyses/:id"):
		return GroupPolling
	case c.Request.Method != http.MethodPost:
		return GroupDefault
	case path == "/api/v1/documents":
		return GroupUpload
	case path == "/api/v1/analyze", path == "/api/v1/match", strings.HasSuffix(path, "/analyze"):
		return GroupAnalyze
	}
	return GroupDefault
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
