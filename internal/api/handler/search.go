package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/cinemate/internal/omdb"
)

// Search proxies a free text search to OMDb. type may be movie or series.
func (h *Handler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter is required"})
		return
	}

	body, err := h.metadata.Search(c.Request.Context(), query, c.Query("type"))
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// Details proxies a full plot lookup by IMDb id to OMDb.
func (h *Handler) Details(c *gin.Context) {
	imdbID := strings.TrimSpace(c.Param("imdb_id"))
	if imdbID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "IMDb ID is required"})
		return
	}

	body, err := h.metadata.Details(c.Request.Context(), imdbID)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func respondUpstreamError(c *gin.Context, err error) {
	if errors.Is(err, omdb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	log.Error("metadata request failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
