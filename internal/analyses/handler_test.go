package analyses

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/server/middleware"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _, doc := setupServiceForUser(t, "guest:test-guest", "resume.txt", sampleResume)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.RequestID(), middleware.Identity())
	NewHandler(svc).RegisterRoutes(api)
	return router, svc, doc.ID
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Guest-Id", "test-guest")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStartAnalysisAcceptedThenReused(t *testing.T) {
	router, _, docID := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/v1/documents/"+docID+"/analyze", map[string]string{"jobDescription": "Go engineer"})
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	var first struct {
		AnalysisID string `json:"analysisId"`
		Status     string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if first.AnalysisID == "" || first.Status != StatusQueued {
		t.Fatalf("unexpected response %+v", first)
	}

	rec = doJSON(router, http.MethodPost, "/api/v1/documents/"+docID+"/analyze", map[string]string{"jobDescription": "Go engineer"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for reused analysis, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), first.AnalysisID) {
		t.Fatalf("expected reused analysis id in %s", rec.Body.String())
	}
}

func TestStartAnalysisWithoutBody(t *testing.T) {
	router, _, docID := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/v1/documents/"+docID+"/analyze", nil)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestStartAnalysisUnknownDocument(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/v1/documents/nope/analyze", map[string]string{})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetAnalysisCompleted(t *testing.T) {
	router, svc, docID := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/v1/documents/"+docID+"/analyze", nil)
	var started struct {
		AnalysisID string `json:"analysisId"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &started)
	if err := svc.ProcessAnalysis(context.Background(), started.AnalysisID); err != nil {
		t.Fatalf("process: %v", err)
	}

	rec = doJSON(router, http.MethodGet, "/api/v1/analyses/"+started.AnalysisID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got struct {
		Status string `json:"status"`
		Result struct {
			Overall int    `json:"overall"`
			Grade   string `json:"grade"`
		} `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != StatusCompleted || got.Result.Grade == "" {
		t.Fatalf("unexpected analysis response %s", rec.Body.String())
	}

	rec = doJSON(router, http.MethodGet, "/api/v1/analyses", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), started.AnalysisID) {
		t.Fatalf("expected analysis in list, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestGetAnalysisNotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/api/v1/analyses/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAnalyzeTextEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/v1/analyze", map[string]string{"text": sampleResume, "jobDescription": "Go and Terraform"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		Overall  int `json:"overall"`
		JobMatch *struct {
			MatchScore int `json:"match_score"`
		} `json:"job_match"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Overall < 0 || got.Overall > 100 || got.JobMatch == nil {
		t.Fatalf("unexpected result %s", rec.Body.String())
	}
}

func TestAnalyzeTextEndpointValidation(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/v1/analyze", map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing text, got %d", rec.Code)
	}
	rec = doJSON(router, http.MethodPost, "/api/v1/analyze", map[string]string{"text": "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank text, got %d", rec.Code)
	}
}

func TestMatchEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/v1/match", map[string]string{"text": sampleResume})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without jobDescription, got %d", rec.Code)
	}
	rec = doJSON(router, http.MethodPost, "/api/v1/match", map[string]string{"text": sampleResume, "jobDescription": "Go, Kubernetes"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
