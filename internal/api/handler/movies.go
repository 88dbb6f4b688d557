package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jon4hz/cinemate/internal/api/models"
	"github.com/jon4hz/cinemate/internal/collection"
)

const movieNotFound = "Movie not found"

// ListMovies returns the movies matching the genre, year, watched, watch_later and search query parameters.
func (h *Handler) ListMovies(c *gin.Context) {
	year, err := queryInt(c, "year")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	movies, err := h.collection.ListMovies(c.Request.Context(), collection.MovieFilter{
		Genre:      c.Query("genre"),
		Year:       year,
		Watched:    queryBool(c, "watched"),
		WatchLater: queryBool(c, "watch_later"),
		Search:     c.Query("search"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToMovies(movies))
}

func (h *Handler) GetMovie(c *gin.Context) {
	id, ok := pathID(c, "id", movieNotFound)
	if !ok {
		return
	}

	movie, err := h.collection.GetMovie(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToMovie(*movie))
}

func (h *Handler) CreateMovie(c *gin.Context) {
	var in collection.MovieInput
	if !bindJSON(c, &in) {
		return
	}

	movie, err := h.collection.CreateMovie(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ToMovie(*movie))
}

func (h *Handler) UpdateMovie(c *gin.Context) {
	id, ok := pathID(c, "id", movieNotFound)
	if !ok {
		return
	}

	var patch collection.MoviePatch
	if !bindJSON(c, &patch) {
		return
	}

	movie, err := h.collection.UpdateMovie(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToMovie(*movie))
}

func (h *Handler) DeleteMovie(c *gin.Context) {
	id, ok := pathID(c, "id", movieNotFound)
	if !ok {
		return
	}

	if err := h.collection.DeleteMovie(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Movie deleted successfully"})
}
