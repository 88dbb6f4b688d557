package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/cinemate/internal/database"
)

const (
	showNotFound    = "TV show not found"
	showDuplicate   = "TV show already exists in your collection"
	episodeNotFound = "Episode not found"
)

// maxTotalEpisodes bounds total_episodes, every episode is a stored row.
const maxTotalEpisodes = 10000

func checkTotalEpisodes(total int) error {
	switch {
	case total < 0:
		return invalid("total_episodes must not be negative")
	case total > maxTotalEpisodes:
		return invalid(fmt.Sprintf("total_episodes must not exceed %d", maxTotalEpisodes))
	}
	return nil
}

func (s *Service) ListShows(ctx context.Context, filter ShowFilter) ([]database.TVShow, error) {
	shows, err := s.db.GetTVShows(ctx, database.MediaFilter{
		Genre:      filter.Genre,
		Year:       filter.Year,
		WatchLater: filter.WatchLater,
		Search:     filter.Search,
	})
	if err != nil {
		return nil, storageError(err, showNotFound, showDuplicate)
	}
	return shows, nil
}

func (s *Service) GetShow(ctx context.Context, id uint) (*database.TVShow, error) {
	show, err := s.db.GetTVShowByID(ctx, id)
	if err != nil {
		return nil, storageError(err, showNotFound, showDuplicate)
	}
	return show, nil
}

// CreateShow adds a tv show along with total_episodes unwatched episodes.
func (s *Service) CreateShow(ctx context.Context, in ShowInput) (*database.TVShow, error) {
	total := nullableDefault(in.TotalEpisodes)
	if err := checkTotalEpisodes(total); err != nil {
		return nil, err
	}

	id := imdbID(in.ImdbID)
	if id != "" {
		_, err := s.db.GetTVShowByImdbID(ctx, id)
		switch {
		case err == nil:
			return nil, conflict(showDuplicate)
		case !errors.Is(err, database.ErrNotFound):
			return nil, storageError(err, showNotFound, showDuplicate)
		}
	}

	show := &database.TVShow{
		Title:         nullableDefault(in.Title),
		Year:          nullablePtr(in.Year),
		Genre:         nullableDefault(in.Genre),
		Creator:       nullableDefault(in.Creator),
		PosterURL:     nullableDefault(in.PosterURL),
		Plot:          nullableDefault(in.Plot),
		TotalEpisodes: total,
		Rating:        nullablePtr(in.Rating),
		Notes:         nullableDefault(in.Notes),
		WatchLater:    nullableDefault(in.WatchLater),
		Episodes:      database.NewEpisodes(0, 1, total),
	}
	if id != "" {
		show.ImdbID = &id
	}

	enrichShow(show, s.enrich(ctx, id, in.describedFully()))

	if err := s.db.CreateTVShow(ctx, show); err != nil {
		return nil, storageError(err, showNotFound, showDuplicate)
	}
	log.Info("added tv show", "id", show.ID, "title", show.Title, "episodes", len(show.Episodes))
	return show, nil
}

// UpdateShow applies patch. A changed total_episodes grows or truncates the episode list,
// truncation drops episodes above the new total even if they were watched.
func (s *Service) UpdateShow(ctx context.Context, id uint, patch ShowPatch) (*database.TVShow, error) {
	fields := patch.fields()

	total := nullablePtr(patch.TotalEpisodes)
	if total != nil {
		if err := checkTotalEpisodes(*total); err != nil {
			return nil, err
		}
	}

	show, err := s.db.UpdateTVShow(ctx, id, fields, total)
	if err != nil {
		return nil, storageError(err, showNotFound, showDuplicate)
	}
	return show, nil
}

func (s *Service) DeleteShow(ctx context.Context, id uint) error {
	if err := s.db.DeleteTVShow(ctx, id); err != nil {
		return storageError(err, showNotFound, showDuplicate)
	}
	log.Info("deleted tv show", "id", id)
	return nil
}

func (s *Service) ListEpisodes(ctx context.Context, showID uint) ([]database.Episode, error) {
	episodes, err := s.db.GetEpisodes(ctx, showID)
	if err != nil {
		return nil, storageError(err, showNotFound, showDuplicate)
	}
	return episodes, nil
}

// UpdateEpisode patches an episode that belongs to showID.
func (s *Service) UpdateEpisode(ctx context.Context, showID, episodeID uint, patch EpisodePatch) (*database.Episode, error) {
	episode, err := s.db.UpdateEpisode(ctx, showID, episodeID, patch.fields())
	if err != nil {
		return nil, storageError(err, episodeNotFound, showDuplicate)
	}
	return episode, nil
}
