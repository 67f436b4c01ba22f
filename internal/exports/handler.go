package exports

import (
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"curriculum-backend/internal/shared/server/middleware"
	"curriculum-backend/internal/shared/server/respond"
	"curriculum-backend/resume/export"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches export routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/users/resumes/:id/exports", h.create)
	rg.GET("/exports", h.list)
	rg.GET("/exports/:id/download", h.download)
}

func (h *Handler) create(c *gin.Context) {
	resumeID := strings.TrimSpace(c.Param("id"))
	c.Set(middleware.ResumeIDKey, resumeID)

	var req createRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}
	if req.Template != "" {
		c.Set(middleware.TemplateKey, req.Template)
	}

	rec, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), resumeID, req.Template)
	if err != nil {
		writeError(c, err, "failed to export resume")
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(rec))
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		writeError(c, err, "failed to list exports")
		return
	}
	resp := make([]ExportResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(item))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) download(c *gin.Context) {
	rec, rc, err := h.Svc.Open(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to download export")
		return
	}
	defer rc.Close()

	c.Set(middleware.ResumeIDKey, rec.ResumeID)
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": rec.FileName})
	c.DataFromReader(http.StatusOK, rec.SizeBytes, rec.MimeType, rc, map[string]string{
		"Content-Disposition": disposition,
	})
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, export.ErrUnknownTemplate):
		respond.Error(c, http.StatusNotFound, "unknown_template", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "access denied", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
