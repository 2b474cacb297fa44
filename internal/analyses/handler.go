package analyses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/documents"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/server/middleware"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents/:id/analyze", h.startAnalysis)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
	rg.POST("/analyze", h.analyzeText)
	rg.POST("/match", h.match)
}

type startAnalysisRequest struct {
	JobDescription string `json:"jobDescription" binding:"max=20000"`
}

type analyzeTextRequest struct {
	Text           string `json:"text" binding:"required,max=100000"`
	JobDescription string `json:"jobDescription" binding:"max=20000"`
}

type matchRequest struct {
	Text           string `json:"text" binding:"required,max=100000"`
	JobDescription string `json:"jobDescription" binding:"required,max=20000"`
}

func (h *Handler) startAnalysis(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")
	c.Set("documentId", documentID)

	var req startAnalysisRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Validation(c, "invalid request body", respond.BindingDetails(err))
			return
		}
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	analysis, created, err := h.Svc.Create(ctx, documentID, userID, req.JobDescription)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrNotFound):
			respond.NotFound(c, "document")
		case errors.Is(err, ErrInvalidInput), errors.Is(err, documents.ErrInvalidInput):
			respond.Validation(c, "document id is required", nil)
		default:
			respond.Internal(c, "failed to start analysis")
		}
		return
	}
	c.Set("analysisId", analysis.ID)

	status := http.StatusAccepted
	if !created {
		status = http.StatusOK
	} else {
		c.Set("statusTransition", "->queued")
	}
	respond.JSON(c, status, gin.H{
		"analysisId": analysis.ID,
		"status":     analysis.Status,
		"reused":     !created,
	})
}

func (h *Handler) getAnalysis(c *gin.Context) {
	analysisID := c.Param("id")
	c.Set("analysisId", analysisID)

	analysis, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.NotFound(c, "analysis")
		case errors.Is(err, ErrInvalidInput):
			respond.Validation(c, "analysis id is required", nil)
		default:
			respond.Internal(c, "failed to fetch analysis")
		}
		return
	}

	resp := gin.H{
		"id":         analysis.ID,
		"documentId": analysis.DocumentID,
		"status":     analysis.Status,
		"createdAt":  analysis.CreatedAt,
	}
	switch analysis.Status {
	case StatusCompleted:
		if analysis.Result != nil {
			resp["result"] = analysis.Result
		}
	case StatusFailed:
		resp["error"] = gin.H{
			"code":      analysis.ErrorCode,
			"message":   analysis.ErrorMessage,
			"retryable": analysis.ErrorRetryable,
		}
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) listAnalyses(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	page, ok := respond.BindPage(c)
	if !ok {
		return
	}

	items, err := h.Svc.List(c.Request.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		respond.Internal(c, "failed to list analyses")
		return
	}

	resp := make([]gin.H, 0, len(items))
	for _, a := range items {
		item := gin.H{
			"analysisId": a.ID,
			"documentId": a.DocumentID,
			"status":     a.Status,
			"createdAt":  a.CreatedAt,
		}
		if a.OverallScore != nil {
			item["overall"] = *a.OverallScore
			item["grade"] = a.Grade
		}
		resp = append(resp, item)
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) analyzeText(c *gin.Context) {
	var req analyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, "invalid request body", respond.BindingDetails(err))
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	result, err := h.Svc.AnalyzeText(ctx, req.Text, req.JobDescription)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) || errors.Is(err, scoring.ErrInvalidInput) {
			respond.Validation(c, "text must not be blank", nil)
			return
		}
		respond.Internal(c, "failed to analyze text")
		return
	}
	respond.OK(c, result)
}

func (h *Handler) match(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, "invalid request body", respond.BindingDetails(err))
		return
	}

	result, err := h.Svc.Match(c.Request.Context(), req.Text, req.JobDescription)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) || errors.Is(err, scoring.ErrInvalidInput) {
			respond.Validation(c, "text and jobDescription must not be blank", nil)
			return
		}
		respond.Internal(c, "failed to match job description")
		return
	}
	respond.OK(c, result)
}
