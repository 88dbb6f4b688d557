package collection

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/cinemate/internal/database"
)

const (
	movieNotFound  = "Movie not found"
	movieDuplicate = "Movie already exists in your collection"
)

func (s *Service) ListMovies(ctx context.Context, filter MovieFilter) ([]database.Movie, error) {
	movies, err := s.db.GetMovies(ctx, database.MediaFilter{
		Genre:      filter.Genre,
		Year:       filter.Year,
		Watched:    filter.Watched,
		WatchLater: filter.WatchLater,
		Search:     filter.Search,
	})
	if err != nil {
		return nil, storageError(err, movieNotFound, movieDuplicate)
	}
	return movies, nil
}

func (s *Service) GetMovie(ctx context.Context, id uint) (*database.Movie, error) {
	movie, err := s.db.GetMovieByID(ctx, id)
	if err != nil {
		return nil, storageError(err, movieNotFound, movieDuplicate)
	}
	return movie, nil
}

// CreateMovie adds a movie, filling missing details from the metadata lookup when an IMDb id is given.
func (s *Service) CreateMovie(ctx context.Context, in MovieInput) (*database.Movie, error) {
	id := imdbID(in.ImdbID)
	if id != "" {
		_, err := s.db.GetMovieByImdbID(ctx, id)
		switch {
		case err == nil:
			return nil, conflict(movieDuplicate)
		case !errors.Is(err, database.ErrNotFound):
			return nil, storageError(err, movieNotFound, movieDuplicate)
		}
	}

	movie := &database.Movie{
		Title:      nullableDefault(in.Title),
		Year:       nullablePtr(in.Year),
		Genre:      nullableDefault(in.Genre),
		Director:   nullableDefault(in.Director),
		PosterURL:  nullableDefault(in.PosterURL),
		Plot:       nullableDefault(in.Plot),
		Watched:    nullableDefault(in.Watched),
		Rating:     nullablePtr(in.Rating),
		Notes:      nullableDefault(in.Notes),
		WatchLater: nullableDefault(in.WatchLater),
	}
	if id != "" {
		movie.ImdbID = &id
	}

	enrichMovie(movie, s.enrich(ctx, id, in.describedFully()))

	if err := s.db.CreateMovie(ctx, movie); err != nil {
		return nil, storageError(err, movieNotFound, movieDuplicate)
	}
	log.Info("added movie", "id", movie.ID, "title", movie.Title)
	return movie, nil
}

func (s *Service) UpdateMovie(ctx context.Context, id uint, patch MoviePatch) (*database.Movie, error) {
	fields := patch.fields()

	movie, err := s.db.UpdateMovie(ctx, id, fields)
	if err != nil {
		return nil, storageError(err, movieNotFound, movieDuplicate)
	}
	return movie, nil
}

func (s *Service) DeleteMovie(ctx context.Context, id uint) error {
	if err := s.db.DeleteMovie(ctx, id); err != nil {
		return storageError(err, movieNotFound, movieDuplicate)
	}
	log.Info("deleted movie", "id", id)
	return nil
}
