package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/packmart/backend/internal/interfaces/http/dto"
)

// ReadinessChecker reports whether a backing dependency can serve traffic
type ReadinessChecker interface {
	Ping() error
}

// SystemHandler handles health and system information endpoints
type SystemHandler struct {
	BaseHandler
	startTime time.Time
	db        ReadinessChecker
}

// NewSystemHandler creates a new SystemHandler. The checker may be nil, in
// which case readiness always succeeds.
func NewSystemHandler(db ReadinessChecker) *SystemHandler {
	return &SystemHandler{
		startTime: time.Now(),
		db:        db,
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetSystemInfo returns basic system information
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "PackMart Storefront API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// HealthResponse represents the liveness response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Health is the liveness probe
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().Format(time.RFC3339),
	}))
}

// Ready is the readiness probe, it fails when the database is unreachable
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeInternal, "Database is unreachable")
			return
		}
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(HealthResponse{
		Status:    "ready",
		Timestamp: time.Now().Format(time.RFC3339),
	}))
}

// RegisterRoutes registers the system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/info", h.GetSystemInfo)
		system.GET("/health", h.Health)
		system.GET("/ready", h.Ready)
	}
}
