package collection

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/cinemate/internal/database"
	"github.com/jon4hz/cinemate/internal/omdb"
)

// enrich looks up imdbID when the caller left out descriptive fields.
// Known values in the result take precedence over the submitted ones.
// A failed lookup is logged and yields nil so that creation proceeds with the caller's data.
func (s *Service) enrich(ctx context.Context, imdbID string, describedFully bool) *omdb.Title {
	if imdbID == "" || describedFully || s.lookup == nil || !s.lookup.Enabled() {
		return nil
	}

	title, err := s.lookup.Lookup(ctx, imdbID)
	if err != nil {
		log.Warn("metadata lookup failed, using submitted fields", "imdb_id", imdbID, "error", err)
		return nil
	}
	log.Debug("fetched metadata", "imdb_id", imdbID, "title", title.Title)
	return title
}

// override replaces dst with a known OMDb value. Empty and N/A values keep dst.
func override(dst *string, value string) {
	if v, ok := omdb.Known(value); ok {
		*dst = v
	}
}

// overrideYear replaces dst with the start year of value, keeping dst when it does not parse.
func overrideYear(dst **int, value string) {
	if year, ok := omdb.ParseYear(value); ok {
		*dst = &year
	}
}

func enrichMovie(m *database.Movie, t *omdb.Title) {
	if t == nil {
		return
	}
	override(&m.Title, t.Title)
	overrideYear(&m.Year, t.Year)
	override(&m.Genre, t.Genre)
	override(&m.Director, t.Director)
	override(&m.PosterURL, t.Poster)
	override(&m.Plot, t.Plot)
}

// enrichShow overrides show details. OMDb has no creator field, the writer credit stands in for it.
func enrichShow(s *database.TVShow, t *omdb.Title) {
	if t == nil {
		return
	}
	override(&s.Title, t.Title)
	overrideYear(&s.Year, t.Year)
	override(&s.Genre, t.Genre)
	override(&s.Creator, t.Writer)
	override(&s.PosterURL, t.Poster)
	override(&s.Plot, t.Plot)
}
