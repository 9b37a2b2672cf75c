package controllers

import (
	"net/http"

	"shortlink-be/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

const qrCodeSize = 256

type QRCodeController struct {
	linkService service.LinkService
	baseURL     string
}

func NewQRCodeController(linkService service.LinkService, baseURL string) *QRCodeController {
	return &QRCodeController{
		linkService: linkService,
		baseURL:     baseURL,
	}
}

// GenerateQRCode handles GET /qrcode/:id - PNG QR code of the short URL
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	id := c.Param("id")

	// Resolving does not count as a visit.
	if err := qc.linkService.Exists(c.Request.Context(), id); err != nil {
		respondError(c, id, "", err)
		return
	}

	// 256x256 pixels, medium error recovery
	pngData, err := qrcode.Encode(shortURL(c, qc.baseURL, id), qrcode.Medium, qrCodeSize)
	if err != nil {
		respondError(c, id, "", err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=qrcode.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
