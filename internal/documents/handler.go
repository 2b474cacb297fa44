package documents

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/server/middleware"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
	rg.GET("/documents", h.list)
	rg.GET("/documents/:id", h.get)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, respond.CodeFileTooLarge, "file exceeds 10MB limit", nil)
			return
		}
		respond.Validation(c, "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Validation(c, "unable to read file", nil)
		return
	}
	defer file.Close()

	doc, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Validation(c, err.Error(), nil)
		default:
			respond.Internal(c, "failed to upload document")
		}
		return
	}
	c.Set("documentId", doc.ID)

	respond.Created(c, toResponse(doc))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")
	c.Set("documentId", documentID)

	doc, err := h.Svc.Get(c.Request.Context(), userID, documentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.NotFound(c, "document")
		case errors.Is(err, ErrInvalidInput):
			respond.Validation(c, err.Error(), nil)
		default:
			respond.Internal(c, "failed to fetch document")
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(doc))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	page, ok := respond.BindPage(c)
	if !ok {
		return
	}

	docs, err := h.Svc.List(c.Request.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Validation(c, err.Error(), nil)
		default:
			respond.Internal(c, "failed to list documents")
		}
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toResponse(doc))
	}

	respond.JSON(c, http.StatusOK, resp)
}
