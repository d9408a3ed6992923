package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/schoolhub/portal-api/internal/api/handler"
	"github.com/schoolhub/portal-api/internal/api/middleware"
	"github.com/schoolhub/portal-api/internal/core/domain"
	"github.com/schoolhub/portal-api/internal/core/ports"
	"github.com/schoolhub/portal-api/internal/core/service"
	"github.com/schoolhub/portal-api/internal/infrastructure/config"
	mongodb "github.com/schoolhub/portal-api/internal/infrastructure/db/mongo"
	redisdb "github.com/schoolhub/portal-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, signer ports.AttachmentSigner, recorder handler.AccessRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))
	// The route guard runs on every request but only acts on protected page
	// prefixes; API routes carry their own auth middleware.
	e.Use(middleware.RouteGuard(cfg.JWTSecret))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)
	catalogRepo := mongodb.NewCatalogRepository(db)

	authService := service.NewAuthService(userRepo, sessionStore, cfg.JWTSecret, cfg.TokenTTL, log)
	navService := service.NewNavigationService(log)
	contentService := service.NewContentService(catalogRepo, log)
	attachmentService := service.NewAttachmentService(signer, cfg.Media.DedupWindow, log)

	authHandler := handler.NewAuthHandler(authService)
	navHandler := handler.NewNavigationHandler(navService)
	contentHandler := handler.NewContentHandler(contentService)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService, recorder)

	authMW := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMW)
	e.GET("/auth/me", authHandler.Me, authMW)
	e.POST("/auth/register", authHandler.Register, authMW,
		middleware.RBAC(domain.RoleSuperAdmin, domain.RoleTenantAdmin, domain.RoleSchoolAdmin))

	// --- Portal API ---
	v1 := e.Group("/v1", authMW)
	v1.GET("/navigation", navHandler.Menu)
	v1.GET("/navigation/access", navHandler.Access)
	v1.GET("/classes/:class_id/subjects/:subject_id/chapters", contentHandler.ChapterTree)
	v1.POST("/attachments/:attachment_id/view-url", attachmentHandler.ViewURL)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
