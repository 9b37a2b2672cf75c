package router

import (
	"net/http"

	"shortlink-be/internal/config"
	"shortlink-be/internal/controllers"
	"shortlink-be/internal/middleware"
	"shortlink-be/internal/service"

	"github.com/gin-gonic/gin"
)

// New builds the HTTP surface around linkService.
func New(cfg *config.Config, linkService service.LinkService) *gin.Engine {
	shortenerController := controllers.NewShortenerController(linkService, cfg.BaseURL)
	qrcodeController := controllers.NewQRCodeController(linkService, cfg.BaseURL)
	healthController := controllers.NewHealthController(linkService)

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.LoggingMiddleware(),
		middleware.Recovery(),
		middleware.CORSMiddleware(cfg.CORSAllowedOrigins),
	)

	router.GET("/", shortenerController.Index)
	router.GET("/health", healthController.Health)

	router.POST("/shorten", shortenerController.Shorten)
	router.POST("/update", shortenerController.Update)

	// GET is kept for links shared as plain hrefs.
	router.GET("/delete/:id", shortenerController.Delete)
	router.DELETE("/delete/:id", shortenerController.Delete)

	router.GET("/stats/:id", shortenerController.Stats)
	router.GET("/qrcode/:id", qrcodeController.GenerateQRCode)

	// Any other single-segment path is a short link id.
	router.GET("/:id", shortenerController.Redirect)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}
