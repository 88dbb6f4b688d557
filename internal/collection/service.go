package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/jon4hz/cinemate/internal/database"
	"github.com/jon4hz/cinemate/internal/omdb"
)

// Lookup fetches metadata by IMDb id.
type Lookup interface {
	Enabled() bool
	Lookup(ctx context.Context, imdbID string) (*omdb.Title, error)
}

// Service manages the movie and tv show collection.
type Service struct {
	db     database.DB
	lookup Lookup
}

// New creates a new collection service. lookup may be nil to disable enrichment.
func New(db database.DB, lookup Lookup) *Service {
	return &Service{
		db:     db,
		lookup: lookup,
	}
}

// storageError maps database errors onto the service errors.
func storageError(err error, notFoundMsg, duplicateMsg string) error {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return notFound(notFoundMsg)
	case errors.Is(err, database.ErrDuplicate):
		return conflict(duplicateMsg)
	}
	return fmt.Errorf("storage: %w", err)
}
