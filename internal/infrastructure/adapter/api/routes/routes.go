package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/flag-logger/internal/domain/port/core"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	lifecycle usecase.ClientLifecycle,
	lifecycleHandler *handler.LifecycleHandler,
	logHandler *handler.LogHandler,
) {
	// Ungated
	router.GET("/health", lifecycleHandler.Health)
	router.GET("/lifecycle", lifecycleHandler.Lifecycle)

	// Routes that need a flag client
	gated := router.Group("/", middleware.ReadyGate(lifecycle))
	{
		gated.GET("/levels", logHandler.Levels)
		gated.POST("/logs", logHandler.Emit)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, timeProvider coreport.TimeProvider) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, timeProvider))
}
