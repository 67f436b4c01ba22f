package users

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"curriculum-backend/internal/shared/auth"
	"curriculum-backend/internal/shared/server/middleware"
	"curriculum-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the public auth routes and /me.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
	rg.GET("/me", h.me)
}

// RegisterAdminRoutes attaches user management behind the admin role.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin/users", middleware.RequireRole(auth.RoleAdmin))
	admin.GET("", h.list)
	admin.POST("", h.create)
	admin.POST("/bulk-delete", h.bulkDelete)
	admin.GET("/:id", h.get)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.delete)
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	user, err := h.Svc.Register(c.Request.Context(), RegisterInput(req))
	if err != nil {
		writeError(c, err, "failed to register")
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(user))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	token, user, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err, "failed to log in")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"token": token, "user": toResponse(user)})
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}
	if middleware.IsGuest(c) {
		respond.JSON(c, http.StatusOK, gin.H{"userId": userID, "isGuest": true})
		return
	}
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err, "failed to load user")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(user))
}

func (h *Handler) list(c *gin.Context) {
	filter := ListFilter{
		Search: c.Query("search"),
		Role:   c.Query("role"),
		Limit:  20,
	}
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			filter.Limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			filter.Offset = parsed
		}
	}

	items, total, err := h.Svc.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err, "failed to list users")
		return
	}
	resp := make([]userResponse, 0, len(items))
	for _, u := range items {
		resp = append(resp, toResponse(u))
	}
	respond.JSON(c, http.StatusOK, gin.H{"data": resp, "total": total})
}

func (h *Handler) get(c *gin.Context) {
	user, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to load user")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(user))
}

func (h *Handler) create(c *gin.Context) {
	var req adminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	user, err := h.Svc.Create(c.Request.Context(), req.input())
	if err != nil {
		writeError(c, err, "failed to create user")
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(user))
}

func (h *Handler) update(c *gin.Context) {
	var req adminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	user, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		writeError(c, err, "failed to update user")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(user))
}

func (h *Handler) delete(c *gin.Context) {
	if c.Param("id") == middleware.UserIDFromContext(c) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "cannot delete your own account", nil)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, "failed to delete user")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) bulkDelete(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	self := middleware.UserIDFromContext(c)
	ids := make([]string, 0, len(req.IDs))
	for _, id := range req.IDs {
		if id != self {
			ids = append(ids, id)
		}
	}
	n, err := h.Svc.BulkDelete(c.Request.Context(), ids)
	if err != nil {
		writeError(c, err, "failed to delete users")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"deleted": n})
}

func writeError(c *gin.Context, err error, fallback string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		respond.ValidationError(c, verr.Fields)
	case errors.Is(err, ErrInvalidCredentials):
		respond.Error(c, http.StatusUnauthorized, "invalid_credentials", err.Error(), nil)
	case errors.Is(err, ErrDuplicate):
		respond.Error(c, http.StatusConflict, "conflict", "email or username already registered", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
