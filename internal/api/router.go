package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/miniiam/iam-service/internal/api/handler"
	"github.com/miniiam/iam-service/internal/core/ports"
)

// Dependencies carries everything the router needs. Mongo and Redis may be
// nil when the in-memory store driver is active.
type Dependencies struct {
	UserService ports.UserService
	RoleService ports.RoleService
	Mongo       *mongo.Database
	Redis       *redis.Client
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("iam"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Handlers ---
	userHandler := handler.NewUserHandler(deps.UserService)
	roleHandler := handler.NewRoleHandler(deps.RoleService)
	authHandler := handler.NewAuthHandler(deps.UserService)

	// --- User routes ---
	e.POST("/users", userHandler.Create)
	e.POST("/users/:id/roles", userHandler.AssignRole)
	e.GET("/users/:id", userHandler.Get)
	e.GET("/users/:id/profile", userHandler.Profile)

	// --- Role routes ---
	e.GET("/roles", roleHandler.List)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes and metrics ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
