package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is the API version reported by the banner
const Version = "1.0.0"

// HealthController serves the liveness and banner endpoints
type HealthController struct{}

// NewHealthController creates a new HealthController
func NewHealthController() *HealthController {
	return &HealthController{}
}

// Health reports that the server is up
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.StructuredResponse "Server is running"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	respond(ctx, http.StatusOK, nil, "Server is running")
}

// Banner describes the service and its route groups
func (c *HealthController) Banner(ctx *gin.Context) {
	respond(ctx, http.StatusOK, gin.H{
		"version": Version,
		"endpoints": gin.H{
			"auth":    "/api/auth",
			"events":  "/api/events",
			"chat":    "/api/chat",
			"contact": "/api/contact",
			"health":  "/api/health",
			"docs":    "/swagger/index.html",
		},
	}, "College Event Management System API")
}
