package resumes

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"curriculum-backend/internal/shared/server/middleware"
	"curriculum-backend/internal/shared/server/respond"
	"curriculum-backend/resume/export"
)

const maxBodySize = 1 << 20

// ConflictMessage is shown when a save loses the version race.
const ConflictMessage = "Resume was modified elsewhere. Please reload."

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches résumé routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resume-templates", h.templates)

	r := rg.Group("/users/resumes")
	r.GET("", h.list)
	r.POST("", h.create)
	r.GET("/:id", h.get)
	r.PUT("/:id", h.save)
	r.DELETE("/:id", h.delete)
	r.POST("/:id/publish", h.publish)
	r.POST("/:id/draft", h.draft)
	r.POST("/:id/duplicate", h.duplicate)
	r.GET("/:id/preview", h.preview)
	r.GET("/:id/pdf", h.pdf)
}

func (h *Handler) list(c *gin.Context) {
	limit, offset := pageParams(c)
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		writeError(c, err, "failed to list resumes")
		return
	}
	resp := make([]SummaryResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toSummary(item))
	}
	respond.Data(c, http.StatusOK, resp)
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}
	resume, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), req.Title, req.Template)
	if err != nil {
		writeError(c, err, "failed to create resume")
		return
	}
	c.Set(middleware.ResumeIDKey, resume.ID)
	respond.Data(c, http.StatusCreated, toResponse(resume))
}

func (h *Handler) get(c *gin.Context) {
	id := resumeID(c)
	resume, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to fetch resume")
		return
	}
	respond.Data(c, http.StatusOK, toResponse(resume))
}

func (h *Handler) save(c *gin.Context) {
	id := resumeID(c)
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize))
	if err != nil {
		respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", nil)
		return
	}
	resume, err := h.Svc.Save(c.Request.Context(), middleware.UserIDFromContext(c), id, body)
	if err != nil {
		writeError(c, err, "Failed to save resume. Please try again.")
		return
	}
	respond.Data(c, http.StatusOK, toResponse(resume))
}

func (h *Handler) delete(c *gin.Context) {
	id := resumeID(c)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		writeError(c, err, "failed to delete resume")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) publish(c *gin.Context) {
	resume, err := h.Svc.Publish(c.Request.Context(), middleware.UserIDFromContext(c), resumeID(c))
	if err != nil {
		writeError(c, err, "failed to publish resume")
		return
	}
	respond.Data(c, http.StatusOK, toResponse(resume))
}

func (h *Handler) draft(c *gin.Context) {
	resume, err := h.Svc.Draft(c.Request.Context(), middleware.UserIDFromContext(c), resumeID(c))
	if err != nil {
		writeError(c, err, "failed to move resume to draft")
		return
	}
	respond.Data(c, http.StatusOK, toResponse(resume))
}

func (h *Handler) duplicate(c *gin.Context) {
	resume, err := h.Svc.Duplicate(c.Request.Context(), middleware.UserIDFromContext(c), resumeID(c))
	if err != nil {
		writeError(c, err, "failed to duplicate resume")
		return
	}
	respond.Data(c, http.StatusCreated, toResponse(resume))
}

func (h *Handler) preview(c *gin.Context) {
	id := resumeID(c)
	templateID := strings.TrimSpace(c.Query("template"))
	if templateID != "" {
		c.Set(middleware.TemplateKey, templateID)
	}

	var width float64
	if v := c.Query("width"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "width must be a number", nil)
			return
		}
		width = parsed
	}

	page, err := h.Svc.Preview(c.Request.Context(), middleware.UserIDFromContext(c), id, templateID, width)
	if err != nil {
		writeError(c, err, "failed to render preview")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func (h *Handler) pdf(c *gin.Context) {
	id := resumeID(c)
	templateID := strings.TrimSpace(c.Query("template"))
	if templateID != "" {
		c.Set(middleware.TemplateKey, templateID)
	}
	art, err := h.Svc.Export(c.Request.Context(), middleware.UserIDFromContext(c), id, templateID)
	if err != nil {
		writeError(c, err, "failed to export resume")
		return
	}
	c.Header("X-Page-Count", strconv.Itoa(art.Pages))
	respond.Attachment(c, art.FileName, art.ContentType, art.Bytes)
}

func (h *Handler) templates(c *gin.Context) {
	items, err := Catalog()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load templates", nil)
		return
	}
	respond.Data(c, http.StatusOK, items)
}

func resumeID(c *gin.Context) string {
	id := strings.TrimSpace(c.Param("id"))
	c.Set(middleware.ResumeIDKey, id)
	return id
}

func pageParams(c *gin.Context) (int, int) {
	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func writeError(c *gin.Context, err error, fallback string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		respond.ValidationError(c, verr.Fields)
	case errors.Is(err, ErrVersionConflict):
		respond.Error(c, http.StatusConflict, "version_conflict", ConflictMessage, nil)
	case errors.Is(err, export.ErrUnknownTemplate):
		respond.Error(c, http.StatusNotFound, "unknown_template", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "resume belongs to another user", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
