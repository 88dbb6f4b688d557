package mock

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jon4hz/cinemate/internal/database"
	"github.com/samber/lo"
)

var _ database.DB = (*MockDB)(nil)

// MockDB is an in-memory implementation of database.DB for testing.
type MockDB struct {
	mu sync.RWMutex

	movies      map[uint]*database.Movie
	nextMovieID uint

	shows         map[uint]*database.TVShow
	nextShowID    uint
	nextEpisodeID uint

	now func() time.Time

	// Error simulation
	GetMoviesError        error
	GetMovieByIDError     error
	GetMovieByImdbIDError error
	CreateMovieError      error
	UpdateMovieError      error
	DeleteMovieError      error
	GetTVShowsError       error
	GetTVShowByIDError    error
	CreateTVShowError     error
	UpdateTVShowError     error
	DeleteTVShowError     error
	GetEpisodesError      error
	UpdateEpisodeError    error
	PingError             error
}

// NewMockDB creates a new MockDB instance.
func NewMockDB() *MockDB {
	m := &MockDB{now: time.Now}
	m.Reset()
	return m
}

// Reset clears all data and errors from the mock database.
func (m *MockDB) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.movies = make(map[uint]*database.Movie)
	m.nextMovieID = 1
	m.shows = make(map[uint]*database.TVShow)
	m.nextShowID = 1
	m.nextEpisodeID = 1

	m.GetMoviesError = nil
	m.GetMovieByIDError = nil
	m.GetMovieByImdbIDError = nil
	m.CreateMovieError = nil
	m.UpdateMovieError = nil
	m.DeleteMovieError = nil
	m.GetTVShowsError = nil
	m.GetTVShowByIDError = nil
	m.CreateTVShowError = nil
	m.UpdateTVShowError = nil
	m.DeleteTVShowError = nil
	m.GetEpisodesError = nil
	m.UpdateEpisodeError = nil
	m.PingError = nil
}

func notFound(kind string, id any) error {
	return fmt.Errorf("%w: %s %v", database.ErrNotFound, kind, id)
}

func duplicate(kind, imdbID string) error {
	return fmt.Errorf("%w: %s imdb_id %q", database.ErrDuplicate, kind, imdbID)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func matches(filter database.MediaFilter, title, genre string, year *int, watchLater bool) bool {
	if filter.Genre != "" && !containsFold(genre, filter.Genre) {
		return false
	}
	if filter.Year != nil && (year == nil || *year != *filter.Year) {
		return false
	}
	if filter.WatchLater != nil && watchLater != *filter.WatchLater {
		return false
	}
	if filter.Search != "" && !containsFold(title, filter.Search) {
		return false
	}
	return true
}

func sameImdbID(a *string, b string) bool {
	return a != nil && *a != "" && *a == b
}

// Movie operations

func (m *MockDB) GetMovies(_ context.Context, filter database.MediaFilter) ([]database.Movie, error) {
	if m.GetMoviesError != nil {
		return nil, m.GetMoviesError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	movies := make([]database.Movie, 0, len(m.movies))
	for _, movie := range m.movies {
		if !matches(filter, movie.Title, movie.Genre, movie.Year, movie.WatchLater) {
			continue
		}
		if filter.Watched != nil && movie.Watched != *filter.Watched {
			continue
		}
		movies = append(movies, *movie)
	}
	slices.SortFunc(movies, func(a, b database.Movie) int { return int(a.ID) - int(b.ID) })
	return movies, nil
}

func (m *MockDB) GetMovieByID(_ context.Context, id uint) (*database.Movie, error) {
	if m.GetMovieByIDError != nil {
		return nil, m.GetMovieByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	movie, ok := m.movies[id]
	if !ok {
		return nil, notFound("movie", id)
	}
	out := *movie
	return &out, nil
}

func (m *MockDB) GetMovieByImdbID(_ context.Context, imdbID string) (*database.Movie, error) {
	if m.GetMovieByImdbIDError != nil {
		return nil, m.GetMovieByImdbIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, movie := range m.movies {
		if sameImdbID(movie.ImdbID, imdbID) {
			out := *movie
			return &out, nil
		}
	}
	return nil, notFound("movie", imdbID)
}

func (m *MockDB) CreateMovie(_ context.Context, movie *database.Movie) error {
	if m.CreateMovieError != nil {
		return m.CreateMovieError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if movie.ImdbID != nil {
		for _, existing := range m.movies {
			if sameImdbID(existing.ImdbID, *movie.ImdbID) {
				return duplicate("movie", *movie.ImdbID)
			}
		}
	}

	movie.ID = m.nextMovieID
	m.nextMovieID++
	movie.CreatedAt = m.now()
	stored := *movie
	m.movies[movie.ID] = &stored
	return nil
}

func (m *MockDB) UpdateMovie(_ context.Context, id uint, fields map[string]any) (*database.Movie, error) {
	if m.UpdateMovieError != nil {
		return nil, m.UpdateMovieError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	movie, ok := m.movies[id]
	if !ok {
		return nil, notFound("movie", id)
	}
	updated := *movie
	if err := applyMovieFields(&updated, fields); err != nil {
		return nil, err
	}
	m.movies[id] = &updated
	out := updated
	return &out, nil
}

func (m *MockDB) DeleteMovie(_ context.Context, id uint) error {
	if m.DeleteMovieError != nil {
		return m.DeleteMovieError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.movies[id]; !ok {
		return notFound("movie", id)
	}
	delete(m.movies, id)
	return nil
}

// TV show operations

func copyShow(show *database.TVShow) database.TVShow {
	out := *show
	out.Episodes = slices.Clone(show.Episodes)
	slices.SortFunc(out.Episodes, func(a, b database.Episode) int {
		if a.EpisodeNumber != b.EpisodeNumber {
			return a.EpisodeNumber - b.EpisodeNumber
		}
		return int(a.ID) - int(b.ID)
	})
	return out
}

func (m *MockDB) GetTVShows(_ context.Context, filter database.MediaFilter) ([]database.TVShow, error) {
	if m.GetTVShowsError != nil {
		return nil, m.GetTVShowsError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	shows := make([]database.TVShow, 0, len(m.shows))
	for _, show := range m.shows {
		if matches(filter, show.Title, show.Genre, show.Year, show.WatchLater) {
			shows = append(shows, copyShow(show))
		}
	}
	slices.SortFunc(shows, func(a, b database.TVShow) int { return int(a.ID) - int(b.ID) })
	return shows, nil
}

func (m *MockDB) GetTVShowByID(_ context.Context, id uint) (*database.TVShow, error) {
	if m.GetTVShowByIDError != nil {
		return nil, m.GetTVShowByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	show, ok := m.shows[id]
	if !ok {
		return nil, notFound("tv show", id)
	}
	out := copyShow(show)
	return &out, nil
}

func (m *MockDB) GetTVShowByImdbID(_ context.Context, imdbID string) (*database.TVShow, error) {
	if m.GetTVShowByIDError != nil {
		return nil, m.GetTVShowByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, show := range m.shows {
		if sameImdbID(show.ImdbID, imdbID) {
			out := copyShow(show)
			return &out, nil
		}
	}
	return nil, notFound("tv show", imdbID)
}

func (m *MockDB) CreateTVShow(_ context.Context, show *database.TVShow) error {
	if m.CreateTVShowError != nil {
		return m.CreateTVShowError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if show.ImdbID != nil {
		for _, existing := range m.shows {
			if sameImdbID(existing.ImdbID, *show.ImdbID) {
				return duplicate("tv show", *show.ImdbID)
			}
		}
	}

	show.ID = m.nextShowID
	m.nextShowID++
	show.CreatedAt = m.now()
	for i := range show.Episodes {
		show.Episodes[i].ID = m.nextEpisodeID
		m.nextEpisodeID++
		show.Episodes[i].TVShowID = show.ID
	}
	stored := copyShow(show)
	m.shows[show.ID] = &stored
	return nil
}

func (m *MockDB) UpdateTVShow(_ context.Context, id uint, fields map[string]any, totalEpisodes *int) (*database.TVShow, error) {
	if m.UpdateTVShowError != nil {
		return nil, m.UpdateTVShowError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	show, ok := m.shows[id]
	if !ok {
		return nil, notFound("tv show", id)
	}

	updated := copyShow(show)
	if err := applyShowFields(&updated, fields); err != nil {
		return nil, err
	}

	if totalEpisodes != nil && *totalEpisodes != updated.TotalEpisodes {
		if *totalEpisodes > updated.TotalEpisodes {
			added := database.NewEpisodes(id, updated.TotalEpisodes+1, *totalEpisodes)
			for i := range added {
				added[i].ID = m.nextEpisodeID
				m.nextEpisodeID++
			}
			updated.Episodes = append(updated.Episodes, added...)
		} else {
			limit := *totalEpisodes
			updated.Episodes = lo.Filter(updated.Episodes, func(e database.Episode, _ int) bool {
				return e.EpisodeNumber <= limit
			})
		}
		updated.TotalEpisodes = *totalEpisodes
	}

	m.shows[id] = &updated
	out := copyShow(&updated)
	return &out, nil
}

func (m *MockDB) DeleteTVShow(_ context.Context, id uint) error {
	if m.DeleteTVShowError != nil {
		return m.DeleteTVShowError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.shows[id]; !ok {
		return notFound("tv show", id)
	}
	delete(m.shows, id)
	return nil
}

func (m *MockDB) GetEpisodes(_ context.Context, showID uint) ([]database.Episode, error) {
	if m.GetEpisodesError != nil {
		return nil, m.GetEpisodesError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	show, ok := m.shows[showID]
	if !ok {
		return nil, notFound("tv show", showID)
	}
	return copyShow(show).Episodes, nil
}

func (m *MockDB) UpdateEpisode(_ context.Context, showID, episodeID uint, fields map[string]any) (*database.Episode, error) {
	if m.UpdateEpisodeError != nil {
		return nil, m.UpdateEpisodeError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	show, ok := m.shows[showID]
	if !ok {
		return nil, notFound("episode", episodeID)
	}
	for i := range show.Episodes {
		if show.Episodes[i].ID != episodeID {
			continue
		}
		updated := show.Episodes[i]
		if err := applyEpisodeFields(&updated, fields); err != nil {
			return nil, err
		}
		show.Episodes[i] = updated
		return &updated, nil
	}
	return nil, notFound("episode", episodeID)
}

// Stats and utility

func (m *MockDB) GetStats(_ context.Context) (*database.Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var stats database.Stats
	var last time.Time
	for _, movie := range m.movies {
		stats.Movies++
		if movie.Watched {
			stats.WatchedMovies++
		}
		if movie.WatchLater {
			stats.WatchLaterMovies++
		}
		if movie.CreatedAt.After(last) {
			last = movie.CreatedAt
		}
	}
	for _, show := range m.shows {
		stats.TVShows++
		if show.WatchLater {
			stats.WatchLaterShows++
		}
		stats.Episodes += int64(len(show.Episodes))
		stats.WatchedEpisodes += int64(show.WatchedEpisodes())
		if show.CreatedAt.After(last) {
			last = show.CreatedAt
		}
	}
	if !last.IsZero() {
		stats.LastAdded = &last
	}
	return &stats, nil
}

func (m *MockDB) Ping(_ context.Context) error {
	return m.PingError
}

func (m *MockDB) Close() error {
	return nil
}
