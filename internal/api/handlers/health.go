package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/minbar-press/minbar/internal/search"
	"github.com/minbar-press/minbar/pkg/logger"
)

// HealthChecker reports whether a storage backend is reachable
type HealthChecker interface {
	HealthCheck() error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	db          HealthChecker
	searchIndex search.Index
	logger      *logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db HealthChecker, searchIndex search.Index, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:          db,
		searchIndex: searchIndex,
		logger:      logger.WithComponent("health-handler"),
	}
}

// Health returns basic health status
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "ok",
	})
}

// Readiness checks if the service is ready to handle requests
func (h *HealthHandler) Readiness(c *gin.Context) {
	dbHealthy := h.db != nil && h.db.HealthCheck() == nil

	searchHealthy := false
	var searchCount uint64
	if h.searchIndex != nil {
		if count, err := h.searchIndex.Count(); err == nil {
			searchHealthy = true
			searchCount = count
		}
	}

	status := 200
	if !dbHealthy {
		status = 503
	}

	c.JSON(status, gin.H{
		"ready": dbHealthy,
		"checks": gin.H{
			"database": dbHealthy,
			"search":   searchHealthy,
		},
		"indexed_documents": searchCount,
	})
}

// Liveness reports that the process is alive
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(200, gin.H{
		"alive": true,
	})
}
