package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/types"
)

// HealthHandler reports whether the API can reach its database
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", h.HealthCheck)
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if err := database.HealthCheck(c.Request.Context(), h.db); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, types.HealthResponse{Status: "unavailable", Database: "down"})
		return
	}
	c.JSON(http.StatusOK, types.HealthResponse{Status: "ok", Database: "up"})
}

// Registrar is implemented by every handler that mounts its own routes
type Registrar interface {
	RegisterRoutes(router gin.IRouter)
}

// NoRoute answers unknown paths with the JSON error shape
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, types.MessageResponse{Message: "Not found"})
}
