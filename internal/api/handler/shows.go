package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jon4hz/cinemate/internal/api/models"
	"github.com/jon4hz/cinemate/internal/collection"
)

const (
	showNotFound    = "TV show not found"
	episodeNotFound = "Episode not found"
)

func (h *Handler) ListShows(c *gin.Context) {
	year, err := queryInt(c, "year")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	shows, err := h.collection.ListShows(c.Request.Context(), collection.ShowFilter{
		Genre:      c.Query("genre"),
		Year:       year,
		WatchLater: queryBool(c, "watch_later"),
		Search:     c.Query("search"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToTVShows(shows))
}

func (h *Handler) GetShow(c *gin.Context) {
	id, ok := pathID(c, "id", showNotFound)
	if !ok {
		return
	}

	show, err := h.collection.GetShow(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToTVShow(*show))
}

func (h *Handler) CreateShow(c *gin.Context) {
	var in collection.ShowInput
	if !bindJSON(c, &in) {
		return
	}

	show, err := h.collection.CreateShow(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ToTVShow(*show))
}

// UpdateShow updates a show. Lowering total_episodes deletes the episodes above the new count.
func (h *Handler) UpdateShow(c *gin.Context) {
	id, ok := pathID(c, "id", showNotFound)
	if !ok {
		return
	}

	var patch collection.ShowPatch
	if !bindJSON(c, &patch) {
		return
	}

	show, err := h.collection.UpdateShow(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToTVShow(*show))
}

func (h *Handler) DeleteShow(c *gin.Context) {
	id, ok := pathID(c, "id", showNotFound)
	if !ok {
		return
	}

	if err := h.collection.DeleteShow(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "TV show deleted successfully"})
}

func (h *Handler) ListEpisodes(c *gin.Context) {
	id, ok := pathID(c, "id", showNotFound)
	if !ok {
		return
	}

	episodes, err := h.collection.ListEpisodes(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToEpisodes(episodes))
}

func (h *Handler) UpdateEpisode(c *gin.Context) {
	showID, ok := pathID(c, "id", showNotFound)
	if !ok {
		return
	}
	episodeID, ok := pathID(c, "episode_id", episodeNotFound)
	if !ok {
		return
	}

	var patch collection.EpisodePatch
	if !bindJSON(c, &patch) {
		return
	}

	episode, err := h.collection.UpdateEpisode(c.Request.Context(), showID, episodeID, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToEpisode(*episode))
}
