package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"curriculum-backend/internal/editor"
	"curriculum-backend/internal/exports"
	"curriculum-backend/internal/resumes"
	"curriculum-backend/internal/services/health"
	"curriculum-backend/internal/shared/cache"
	"curriculum-backend/internal/shared/config"
	"curriculum-backend/internal/shared/server"
	"curriculum-backend/internal/shared/server/middleware"
	"curriculum-backend/internal/shared/storage/db"
	"curriculum-backend/internal/shared/storage/object"
	localstore "curriculum-backend/internal/shared/storage/object/local"
	s3store "curriculum-backend/internal/shared/storage/object/s3"
	"curriculum-backend/internal/users"
)

const previewCacheEntries = 512

// App holds shared dependencies and the wired router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.Store
	Cache  cache.Cache

	ResumesRepo resumes.Repo
	ExportsRepo exports.Repo
	UsersRepo   users.Repo

	ResumesService *resumes.Service
	ExportsService *exports.Service
	UsersService   *users.Service
	Health         *health.Service

	ResumesHandler *resumes.Handler
	ExportsHandler *exports.Handler
	UsersHandler   *users.Handler
	EditorHandler  *editor.Handler

	closers []func() error
}

// Build prepares dependencies and the router. Dev-like environments fall back to in-memory
// repositories and cache when DATABASE_URL or REDIS_ADDR are unusable.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if !cfg.IsDevLike() && strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("JWT_SECRET is required in %s", cfg.Env)
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Health: health.NewService(),
	}
	if sqlDB != nil {
		app.closers = append(app.closers, sqlDB.Close)
		app.Health.Register("database", sqlDB.PingContext)
	}

	if err := buildCache(ctx, app); err != nil {
		return nil, err
	}

	limiter := middleware.NewRateLimiter(nil)
	buildServices(app, limiter)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        app.Config,
		Health:        app.Health,
		ResumeHandler: app.ResumesHandler,
		ExportHandler: app.ExportsHandler,
		UserHandler:   app.UsersHandler,
		EditorHandler: app.EditorHandler,
		RateLimiter:   limiter,
	})

	return app, nil
}

// Close releases the database pool and cache connections.
func (a *App) Close() error {
	var first error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if cfg.IsDevLike() {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if cfg.IsDevLike() {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildCache(ctx context.Context, app *App) error {
	cfg := app.Config
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		app.Cache = cache.NewMemory(previewCacheEntries)
		return nil
	}
	rc, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		if cfg.IsDevLike() {
			log.Printf("bootstrap: redis unavailable; using in-memory preview cache: %v", err)
			app.Cache = cache.NewMemory(previewCacheEntries)
			return nil
		}
		return err
	}
	app.Cache = rc
	app.closers = append(app.closers, rc.Close)
	app.Health.Register("cache", rc.Ping)
	return nil
}

func buildServices(app *App, limiter *middleware.RateLimiter) {
	if app.DB != nil {
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
		app.ExportsRepo = &exports.PGRepo{DB: app.DB}
		app.UsersRepo = &users.PGRepo{DB: app.DB}
	} else {
		app.ResumesRepo = resumes.NewMemoryRepo()
		app.ExportsRepo = exports.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
	}

	app.ResumesService = resumes.NewService(app.ResumesRepo, app.Cache, app.Config.PreviewCacheTTL)
	app.ExportsService = &exports.Service{
		Repo:    app.ExportsRepo,
		Resumes: app.ResumesService,
		Store:   app.Store,
	}
	app.UsersService = users.NewService(app.UsersRepo)

	app.ResumesHandler = resumes.NewHandler(app.ResumesService)
	app.ExportsHandler = exports.NewHandler(app.ExportsService)
	app.UsersHandler = users.NewHandler(app.UsersService)
	app.EditorHandler = editor.NewHandler(app.ResumesService, limiter,
		middleware.PerMinute(app.Config.ExportRatePerMin), app.Config.CORSAllowOrigins)
}
