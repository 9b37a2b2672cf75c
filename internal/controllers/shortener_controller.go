package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"shortlink-be/internal/logger"
	"shortlink-be/internal/middleware"
	"shortlink-be/internal/models"
	"shortlink-be/internal/service"
	"shortlink-be/internal/static"

	"github.com/gin-gonic/gin"
)

type ShortenerController struct {
	linkService service.LinkService
	baseURL     string
}

func NewShortenerController(linkService service.LinkService, baseURL string) *ShortenerController {
	return &ShortenerController{
		linkService: linkService,
		baseURL:     baseURL,
	}
}

// Index handles GET / - serves the landing page
func (sc *ShortenerController) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", static.IndexPage())
}

// Shorten handles POST /shorten
func (sc *ShortenerController) Shorten(c *gin.Context) {
	var req models.ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	id, err := sc.linkService.Shorten(c.Request.Context(), req.URL, middleware.GetIP(c))
	if err != nil {
		respondError(c, "", "", err)
		return
	}

	c.JSON(http.StatusCreated, models.ShortenResponse{URL: shortURL(c, sc.baseURL, id)})
}

// Redirect handles GET /:id - redirects to the target URL and counts the visit
func (sc *ShortenerController) Redirect(c *gin.Context) {
	id := c.Param("id")

	target, err := sc.linkService.Redirect(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.Data(http.StatusNotFound, "text/html; charset=utf-8", static.NotFoundPage())
			return
		}
		respondError(c, id, "", err)
		return
	}

	c.Redirect(http.StatusFound, target)
}

// Delete handles GET and DELETE /delete/:id
func (sc *ShortenerController) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := sc.linkService.Delete(c.Request.Context(), id, middleware.GetIP(c)); err != nil {
		respondError(c, id, "You are not authorized to delete this URL", err)
		return
	}

	c.JSON(http.StatusOK, models.DetailResponse{
		Detail: fmt.Sprintf("URL with ID '%s' deleted", id),
	})
}

// Update handles POST /update - replaces the target of an existing link
func (sc *ShortenerController) Update(c *gin.Context) {
	var req models.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := sc.linkService.Update(c.Request.Context(), req.UUID, req.URL, middleware.GetIP(c)); err != nil {
		respondError(c, req.UUID, "You are not the creator of this URL", err)
		return
	}

	c.JSON(http.StatusOK, models.UpdateResponse{
		Detail: fmt.Sprintf("URL with ID '%s' updated", req.UUID),
		URL:    shortURL(c, sc.baseURL, req.UUID),
	})
}

// Stats handles GET /stats/:id - returns the visit counter to the link's creator
func (sc *ShortenerController) Stats(c *gin.Context) {
	id := c.Param("id")

	stats, err := sc.linkService.Stats(c.Request.Context(), id, middleware.GetIP(c))
	if err != nil {
		respondError(c, id, "You are not the creator of this URL", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// respondError maps service errors to responses. Anything unexpected is logged and
// reported as a bare 500.
func respondError(c *gin.Context, id, forbiddenDetail string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidURL):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidURL.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, models.DetailResponse{
			Detail: fmt.Sprintf("URL with ID '%s' not found", id),
		})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, models.DetailResponse{Detail: forbiddenDetail})
	default:
		logger.Error().
			Err(err).
			Str("id", id).
			Str("path", c.FullPath()).
			Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// shortURL builds the public address of id. Without a configured base URL the scheme and
// host of the incoming request are used.
func shortURL(c *gin.Context, baseURL, id string) string {
	if baseURL != "" {
		return baseURL + "/" + id
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		first, _, _ := strings.Cut(proto, ",")
		scheme = strings.TrimSpace(first)
	}

	return scheme + "://" + c.Request.Host + "/" + id
}
