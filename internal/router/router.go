package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/middleware"
)

// SetupRouter configures the middleware chain and mounts every handler's
// routes at the root
func SetupRouter(cfg *config.Config, logger *slog.Logger, handlers ...api.Registrar) *gin.Engine {
	if !cfg.Environment.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	for _, h := range handlers {
		h.RegisterRoutes(router)
	}
	router.NoRoute(api.NoRoute)

	return router
}
