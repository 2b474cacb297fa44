package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/server/respond"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/telemetry"
)

func TestRecoveryReturnsInternalError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	telemetry.Configure(&buf, "info")
	defer telemetry.Configure(os.Stdout, "info")

	router := gin.New()
	router.Use(RequestID(), Recovery())
	router.GET("/boom", func(c *gin.Context) { panic("scorer exploded") })

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	var body respond.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != respond.CodeInternal {
		t.Fatalf("unexpected code %q", body.Error.Code)
	}
	if !strings.Contains(buf.String(), `"msg":"http.panic"`) || !strings.Contains(buf.String(), "scorer exploded") {
		t.Fatalf("expected panic log, got %s", buf.String())
	}
}

func TestLoggingSkipsHealthyProbes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	telemetry.Configure(&buf, "info")
	defer telemetry.Configure(os.Stdout, "info")

	router := gin.New()
	router.Use(Logging())
	router.GET("/api/v1/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if buf.Len() != 0 {
		t.Fatalf("expected no log for healthy probe, got %s", buf.String())
	}
}
