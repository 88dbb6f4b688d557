package models

import (
	"github.com/jon4hz/cinemate/internal/database"
	"github.com/samber/lo"
)

// ToMovie converts a database.Movie to its API form.
func ToMovie(m database.Movie) Movie {
	return Movie{
		ID:         m.ID,
		Title:      m.Title,
		Year:       m.Year,
		Genre:      m.Genre,
		Director:   m.Director,
		PosterURL:  m.PosterURL,
		Plot:       m.Plot,
		ImdbID:     lo.FromPtr(m.ImdbID),
		Watched:    m.Watched,
		Rating:     m.Rating,
		Notes:      m.Notes,
		WatchLater: m.WatchLater,
		CreatedAt:  m.CreatedAt,
	}
}

// ToMovies converts a slice of database.Movie. The result is never nil.
func ToMovies(movies []database.Movie) []Movie {
	result := make([]Movie, len(movies))
	for i, m := range movies {
		result[i] = ToMovie(m)
	}
	return result
}

// ToTVShow converts a database.TVShow with its loaded episodes.
func ToTVShow(s database.TVShow) TVShow {
	return TVShow{
		ID:              s.ID,
		Title:           s.Title,
		Year:            s.Year,
		Genre:           s.Genre,
		Creator:         s.Creator,
		PosterURL:       s.PosterURL,
		Plot:            s.Plot,
		ImdbID:          lo.FromPtr(s.ImdbID),
		TotalEpisodes:   s.TotalEpisodes,
		WatchedEpisodes: s.WatchedEpisodes(),
		Progress:        s.Progress(),
		Rating:          s.Rating,
		Notes:           s.Notes,
		WatchLater:      s.WatchLater,
		CreatedAt:       s.CreatedAt,
		Episodes:        ToEpisodes(s.Episodes),
	}
}

func ToTVShows(shows []database.TVShow) []TVShow {
	result := make([]TVShow, len(shows))
	for i, s := range shows {
		result[i] = ToTVShow(s)
	}
	return result
}

func ToEpisode(e database.Episode) Episode {
	return Episode{
		ID:            e.ID,
		TVShowID:      e.TVShowID,
		Season:        e.Season,
		EpisodeNumber: e.EpisodeNumber,
		Title:         e.Title,
		Watched:       e.Watched,
	}
}

func ToEpisodes(episodes []database.Episode) []Episode {
	return lo.Map(episodes, func(e database.Episode, _ int) Episode {
		return ToEpisode(e)
	})
}
