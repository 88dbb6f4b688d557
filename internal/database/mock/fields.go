package mock

import (
	"fmt"

	"github.com/jon4hz/cinemate/internal/database"
)

func intPtr(v any) (*int, error) {
	switch n := v.(type) {
	case nil:
		return nil, nil
	case int:
		return &n, nil
	case *int:
		return n, nil
	}
	return nil, fmt.Errorf("unsupported int value %T", v)
}

func floatPtr(v any) (*float64, error) {
	switch n := v.(type) {
	case nil:
		return nil, nil
	case float64:
		return &n, nil
	case *float64:
		return n, nil
	}
	return nil, fmt.Errorf("unsupported float value %T", v)
}

func str(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("column %s: unsupported value %T", key, v)
	}
	return s, nil
}

func boolean(key string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("column %s: unsupported value %T", key, v)
	}
	return b, nil
}

// mediaColumns points at the columns movies and tv shows have in common.
type mediaColumns struct {
	title, genre, posterURL, plot, notes *string
	year                                 **int
	rating                               **float64
	watchLater                           *bool
}

func (c mediaColumns) apply(key string, v any) (bool, error) {
	var err error
	switch key {
	case "title":
		*c.title, err = str(key, v)
	case "genre":
		*c.genre, err = str(key, v)
	case "poster_url":
		*c.posterURL, err = str(key, v)
	case "plot":
		*c.plot, err = str(key, v)
	case "notes":
		*c.notes, err = str(key, v)
	case "year":
		*c.year, err = intPtr(v)
	case "rating":
		*c.rating, err = floatPtr(v)
	case "watch_later":
		*c.watchLater, err = boolean(key, v)
	default:
		return false, nil
	}
	return true, err
}

func applyMovieFields(m *database.Movie, fields map[string]any) error {
	cols := mediaColumns{&m.Title, &m.Genre, &m.PosterURL, &m.Plot, &m.Notes, &m.Year, &m.Rating, &m.WatchLater}
	for key, v := range fields {
		ok, err := cols.apply(key, v)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		switch key {
		case "director":
			m.Director, err = str(key, v)
		case "watched":
			m.Watched, err = boolean(key, v)
		default:
			return fmt.Errorf("unknown movie column %q", key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func applyShowFields(s *database.TVShow, fields map[string]any) error {
	cols := mediaColumns{&s.Title, &s.Genre, &s.PosterURL, &s.Plot, &s.Notes, &s.Year, &s.Rating, &s.WatchLater}
	for key, v := range fields {
		ok, err := cols.apply(key, v)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		switch key {
		case "creator":
			s.Creator, err = str(key, v)
		default:
			return fmt.Errorf("unknown tv show column %q", key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func applyEpisodeFields(e *database.Episode, fields map[string]any) error {
	for key, v := range fields {
		var err error
		switch key {
		case "title":
			e.Title, err = str(key, v)
		case "watched":
			e.Watched, err = boolean(key, v)
		case "season":
			var n *int
			n, err = intPtr(v)
			if err == nil && n != nil {
				e.Season = *n
			}
		default:
			return fmt.Errorf("unknown episode column %q", key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
