package database

import (
	"context"
	"time"
)

// DB defines the interface for database operations.
type DB interface {
	MovieDB
	TVShowDB

	GetStats(ctx context.Context) (*Stats, error)
	Ping(ctx context.Context) error
	Close() error
}

// MovieDB defines the movie-related database operations.
type MovieDB interface {
	GetMovies(ctx context.Context, filter MediaFilter) ([]Movie, error)
	GetMovieByID(ctx context.Context, id uint) (*Movie, error)
	GetMovieByImdbID(ctx context.Context, imdbID string) (*Movie, error)
	CreateMovie(ctx context.Context, movie *Movie) error
	// UpdateMovie writes the given columns and returns the stored row.
	UpdateMovie(ctx context.Context, id uint, fields map[string]any) (*Movie, error)
	DeleteMovie(ctx context.Context, id uint) error
}

// TVShowDB defines the tv show and episode database operations.
type TVShowDB interface {
	GetTVShows(ctx context.Context, filter MediaFilter) ([]TVShow, error)
	GetTVShowByID(ctx context.Context, id uint) (*TVShow, error)
	GetTVShowByImdbID(ctx context.Context, imdbID string) (*TVShow, error)
	// CreateTVShow stores the show together with show.Episodes.
	CreateTVShow(ctx context.Context, show *TVShow) error
	// UpdateTVShow writes the given columns. If totalEpisodes is set, the episode list
	// is grown or truncated to match within the same transaction.
	UpdateTVShow(ctx context.Context, id uint, fields map[string]any, totalEpisodes *int) (*TVShow, error)
	DeleteTVShow(ctx context.Context, id uint) error

	GetEpisodes(ctx context.Context, showID uint) ([]Episode, error)
	UpdateEpisode(ctx context.Context, showID, episodeID uint, fields map[string]any) (*Episode, error)
}

// MediaFilter narrows collection listings. Zero values disable a filter.
type MediaFilter struct {
	// Genre matches as a case-insensitive substring.
	Genre string
	Year  *int
	// Watched only applies to movies.
	Watched    *bool
	WatchLater *bool
	// Search matches the title as a case-insensitive substring.
	Search string
}

// Stats summarizes the collection.
type Stats struct {
	Movies           int64
	WatchedMovies    int64
	WatchLaterMovies int64
	TVShows          int64
	WatchLaterShows  int64
	Episodes         int64
	WatchedEpisodes  int64
	LastAdded        *time.Time
}
