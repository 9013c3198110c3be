package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/Rami23dz/insurance-claims-api/docs"
	"github.com/Rami23dz/insurance-claims-api/internal/api/handler"
	"github.com/Rami23dz/insurance-claims-api/internal/api/middleware"
	"github.com/Rami23dz/insurance-claims-api/internal/core/domain"
	"github.com/Rami23dz/insurance-claims-api/internal/core/ports"
	"github.com/Rami23dz/insurance-claims-api/internal/core/service"
	mongodb "github.com/Rami23dz/insurance-claims-api/internal/infrastructure/db/mongo"
	redisdb "github.com/Rami23dz/insurance-claims-api/internal/infrastructure/db/redis"
)

// Dependencies carries everything the router needs to assemble the service.
// The extractor and renderer are strategy objects: production wiring injects
// the PDF/Chrome implementations, tests inject stubs.
type Dependencies struct {
	DB        *mongo.Database
	Redis     *redis.Client
	Store     ports.FileStore
	Extractor ports.TextExtractor
	Renderer  ports.PDFRenderer
	JWTSecret string
	TokenTTL  time.Duration
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("claims"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	docRepo := mongodb.NewDocumentRepository(deps.DB)
	lock := redisdb.NewProcessLock(deps.Redis)

	// --- Services ---
	authService := service.NewAuthService(userRepo, deps.JWTSecret, deps.TokenTTL)
	userService := service.NewUserService(userRepo, deps.Logger)
	docService := service.NewDocumentService(docRepo, deps.Store, deps.Logger)
	extraction := service.NewTextExtractionService(deps.Extractor, deps.Logger)
	generation := service.NewDocumentGenerationService(deps.Renderer, deps.Store, deps.Logger)
	processor := service.NewDocumentProcessorService(docRepo, extraction, generation, deps.Store, lock, deps.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	docHandler := handler.NewDocumentHandler(docService, processor)

	authMW := middleware.Auth(deps.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authMW)

	// --- User management (admin only) ---
	users := e.Group("/api/users", authMW, adminOnly)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.DELETE("/:id", userHandler.Delete)

	// --- Documents ---
	docs := e.Group("/api/documents", authMW)
	docs.GET("", docHandler.List)
	docs.POST("", docHandler.Upload)
	docs.GET("/:id", docHandler.Get)
	docs.POST("/:id/process", docHandler.Process)
	docs.DELETE("/:id", docHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
