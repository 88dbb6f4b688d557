package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ccoveille/go-safecast"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/cinemate/internal/collection"
)

// MetadataSearcher is the part of the OMDb client the search endpoints need.
type MetadataSearcher interface {
	Search(ctx context.Context, query, mediaType string) (json.RawMessage, error)
	Details(ctx context.Context, imdbID string) (json.RawMessage, error)
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	collection *collection.Service
	metadata   MetadataSearcher
	db         Pinger
}

func New(coll *collection.Service, metadata MetadataSearcher, db Pinger) *Handler {
	return &Handler{
		collection: coll,
		metadata:   metadata,
		db:         db,
	}
}

func parseUintParam(param string) (uint, error) {
	id, err := strconv.ParseUint(param, 10, 64)
	if err != nil {
		return 0, err
	}
	return safecast.ToUint(id)
}

// pathID reads an integer path parameter. Anything that is not a
// non-negative integer is answered with 404, the route simply does not match.
func pathID(c *gin.Context, name, notFoundMsg string) (uint, bool) {
	id, err := parseUintParam(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return 0, false
	}
	return id, true
}

// bindJSON decodes the request body into v and answers 400 on failure.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

// queryBool reports nil when the parameter is absent. Any present value
// other than "true" (case-insensitive) is false.
func queryBool(c *gin.Context, key string) *bool {
	v, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	b := strings.EqualFold(v, "true")
	return &b
}

func queryInt(c *gin.Context, key string) (*int, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// respondError maps collection errors onto status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, collection.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": message(err)})
	case errors.Is(err, collection.ErrInvalid), errors.Is(err, collection.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": message(err)})
	default:
		log.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func message(err error) string {
	var target *collection.Error
	if errors.As(err, &target) {
		return target.Message
	}
	return err.Error()
}
