package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/e-garderoba/backend/docs"
	"github.com/e-garderoba/backend/internal/api/handler"
	"github.com/e-garderoba/backend/internal/api/middleware"
	"github.com/e-garderoba/backend/internal/core/domain"
	"github.com/e-garderoba/backend/internal/core/service"
	"github.com/e-garderoba/backend/internal/infrastructure/config"
	mongodb "github.com/e-garderoba/backend/internal/infrastructure/db/mongo"
	redisdb "github.com/e-garderoba/backend/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("egarderoba"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	userCache := redisdb.NewUserCache(rdb)
	userService := service.NewUserService(userRepo, userCache, log)
	authService := service.NewAuthService(userRepo, cfg.TokenSecret, cfg.TokenTTL, log)

	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService)
	auth := middleware.Auth(cfg.TokenSecret)

	// --- API routes ---
	v1 := e.Group("/api/v1")
	v1.POST("/auth/login", authHandler.Login)

	users := v1.Group("/users", auth)
	users.POST("", userHandler.Create, middleware.RequireRole(domain.RoleAdmin))
	users.GET("", userHandler.List, middleware.RequireRole(domain.RoleManager))
	users.GET("/:id", userHandler.Get)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
