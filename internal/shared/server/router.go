package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"curriculum-backend/internal/editor"
	"curriculum-backend/internal/exports"
	"curriculum-backend/internal/resumes"
	"curriculum-backend/internal/services/health"
	"curriculum-backend/internal/shared/config"
	"curriculum-backend/internal/shared/metrics"
	"curriculum-backend/internal/shared/server/middleware"
	"curriculum-backend/internal/shared/server/respond"
	"curriculum-backend/internal/users"
)

const apiPrefix = "/api/v1"

// RouterDeps carries the handlers mounted on the API.
type RouterDeps struct {
	Config        config.Config
	Health        *health.Service
	ResumeHandler *resumes.Handler
	ExportHandler *exports.Handler
	UserHandler   *users.Handler
	EditorHandler *editor.Handler
	RateLimiter   *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.IsDevLike() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigins),
		middleware.Auth(PublicPrefixes()...),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				middleware.ExportRateLimitGroup: middleware.PerMinute(deps.Config.ExportRatePerMin),
			},
			GroupFor: rateLimitGroup,
			Limiter:  deps.RateLimiter,
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group(apiPrefix)
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		report := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})

	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
		deps.UserHandler.RegisterAdminRoutes(api)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api)
	}
	if deps.ExportHandler != nil {
		deps.ExportHandler.RegisterRoutes(api)
	}
	if deps.EditorHandler != nil {
		deps.EditorHandler.RegisterRoutes(api)
	}

	return r
}

// PublicPrefixes are the paths served without caller identity.
func PublicPrefixes() []string {
	return []string{
		apiPrefix + "/auth/",
		apiPrefix + "/health",
		apiPrefix + "/resume-templates",
		"/metrics",
	}
}

// rateLimitGroup puts PDF rendering routes in the export bucket.
func rateLimitGroup(c *gin.Context) string {
	path := c.FullPath()
	if c.Request.Method == http.MethodGet && strings.HasSuffix(path, "/pdf") {
		return middleware.ExportRateLimitGroup
	}
	if c.Request.Method == http.MethodPost && strings.HasSuffix(path, "/exports") {
		return middleware.ExportRateLimitGroup
	}
	return ""
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
