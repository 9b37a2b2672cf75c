package controllers

import (
	"net/http"

	"shortlink-be/internal/logger"
	"shortlink-be/internal/models"
	"shortlink-be/internal/service"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	linkService service.LinkService
}

func NewHealthController(linkService service.LinkService) *HealthController {
	return &HealthController{linkService: linkService}
}

// Health handles GET /health - reports whether the store answers
func (hc *HealthController) Health(c *gin.Context) {
	if err := hc.linkService.Ping(c.Request.Context()); err != nil {
		logger.Warn().Err(err).Msg("Health check failed")
		c.JSON(http.StatusServiceUnavailable, models.HealthResponse{Status: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}
