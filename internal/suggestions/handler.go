package suggestions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/server/middleware"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the suggestions service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches suggestion routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analyses/:id/suggestions", h.list)
	rg.POST("/suggestions/:id/apply", h.apply)
	rg.POST("/suggestions/:id/dismiss", h.dismiss)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	analysisID := c.Param("id")
	c.Set("analysisId", analysisID)

	items, err := h.Svc.ListByAnalysis(c.Request.Context(), userID, analysisID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"suggestions": items})
}

func (h *Handler) apply(c *gin.Context) {
	item, err := h.Svc.Apply(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set("statusTransition", "pending->applied")
	respond.OK(c, item)
}

func (h *Handler) dismiss(c *gin.Context) {
	item, err := h.Svc.Dismiss(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set("statusTransition", "pending->dismissed")
	respond.OK(c, item)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.NotFound(c, "suggestion")
	case errors.Is(err, ErrInvalidTransition):
		respond.Error(c, http.StatusConflict, respond.CodeInvalidTransition, err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Validation(c, err.Error(), nil)
	default:
		respond.Internal(c, "failed to update suggestion")
	}
}
