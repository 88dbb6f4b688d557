package collection

import (
	"strings"

	"github.com/oapi-codegen/nullable"
)

// MoviePatch holds the mutable movie fields. Absent fields are left untouched.
type MoviePatch struct {
	Title      nullable.Nullable[string]  `json:"title"`
	Year       nullable.Nullable[int]     `json:"year"`
	Genre      nullable.Nullable[string]  `json:"genre"`
	Director   nullable.Nullable[string]  `json:"director"`
	PosterURL  nullable.Nullable[string]  `json:"poster_url"`
	Plot       nullable.Nullable[string]  `json:"plot"`
	Watched    nullable.Nullable[bool]    `json:"watched"`
	Rating     nullable.Nullable[float64] `json:"rating"`
	Notes      nullable.Nullable[string]  `json:"notes"`
	WatchLater nullable.Nullable[bool]    `json:"watch_later"`
}

// MovieInput is the payload for adding a movie.
type MovieInput struct {
	MoviePatch
	ImdbID nullable.Nullable[string] `json:"imdb_id"`
}

// ShowPatch holds the mutable tv show fields.
type ShowPatch struct {
	Title         nullable.Nullable[string]  `json:"title"`
	Year          nullable.Nullable[int]     `json:"year"`
	Genre         nullable.Nullable[string]  `json:"genre"`
	Creator       nullable.Nullable[string]  `json:"creator"`
	PosterURL     nullable.Nullable[string]  `json:"poster_url"`
	Plot          nullable.Nullable[string]  `json:"plot"`
	TotalEpisodes nullable.Nullable[int]     `json:"total_episodes"`
	Rating        nullable.Nullable[float64] `json:"rating"`
	Notes         nullable.Nullable[string]  `json:"notes"`
	WatchLater    nullable.Nullable[bool]    `json:"watch_later"`
}

// ShowInput is the payload for adding a tv show.
type ShowInput struct {
	ShowPatch
	ImdbID nullable.Nullable[string] `json:"imdb_id"`
}

// EpisodePatch holds the mutable episode fields.
type EpisodePatch struct {
	Title   nullable.Nullable[string] `json:"title"`
	Season  nullable.Nullable[int]    `json:"season"`
	Watched nullable.Nullable[bool]   `json:"watched"`
}

// MovieFilter narrows ListMovies. Nil pointers and empty strings are ignored.
type MovieFilter struct {
	Genre      string
	Year       *int
	Watched    *bool
	WatchLater *bool
	Search     string
}

// ShowFilter narrows ListShows.
type ShowFilter struct {
	Genre      string
	Year       *int
	WatchLater *bool
	Search     string
}

func nullableDefault[T any](n nullable.Nullable[T]) T {
	var def T
	if n.IsSpecified() {
		v, _ := n.Get()
		return v
	}

	return def
}

// nullablePtr maps absent and null to nil.
func nullablePtr[T any](n nullable.Nullable[T]) *T {
	if !n.IsSpecified() || n.IsNull() {
		return nil
	}
	v, _ := n.Get()
	return &v
}

func provided[T any](n nullable.Nullable[T]) bool {
	return n.IsSpecified() && !n.IsNull()
}

// setValue writes a non-nullable column. Null is treated like an absent field.
func setValue[T any](fields map[string]any, column string, n nullable.Nullable[T]) {
	if !provided(n) {
		return
	}
	v, _ := n.Get()
	fields[column] = v
}

// setNullable writes a nullable column, clearing it on null.
func setNullable[T any](fields map[string]any, column string, n nullable.Nullable[T]) {
	if !n.IsSpecified() {
		return
	}
	if n.IsNull() {
		fields[column] = nil
		return
	}
	v, _ := n.Get()
	fields[column] = v
}

func (p MoviePatch) fields() map[string]any {
	fields := make(map[string]any)
	setValue(fields, "title", p.Title)
	setNullable(fields, "year", p.Year)
	setValue(fields, "genre", p.Genre)
	setValue(fields, "director", p.Director)
	setValue(fields, "poster_url", p.PosterURL)
	setValue(fields, "plot", p.Plot)
	setValue(fields, "watched", p.Watched)
	setNullable(fields, "rating", p.Rating)
	setValue(fields, "notes", p.Notes)
	setValue(fields, "watch_later", p.WatchLater)
	return fields
}

// describedFully reports whether every field enrichment could provide was sent.
func (p MoviePatch) describedFully() bool {
	return p.Title.IsSpecified() && p.Year.IsSpecified() && p.Genre.IsSpecified() &&
		p.Director.IsSpecified() && p.PosterURL.IsSpecified() && p.Plot.IsSpecified()
}

func (p ShowPatch) fields() map[string]any {
	fields := make(map[string]any)
	setValue(fields, "title", p.Title)
	setNullable(fields, "year", p.Year)
	setValue(fields, "genre", p.Genre)
	setValue(fields, "creator", p.Creator)
	setValue(fields, "poster_url", p.PosterURL)
	setValue(fields, "plot", p.Plot)
	setNullable(fields, "rating", p.Rating)
	setValue(fields, "notes", p.Notes)
	setValue(fields, "watch_later", p.WatchLater)
	return fields
}

func (p ShowPatch) describedFully() bool {
	return p.Title.IsSpecified() && p.Year.IsSpecified() && p.Genre.IsSpecified() &&
		p.Creator.IsSpecified() && p.PosterURL.IsSpecified() && p.Plot.IsSpecified()
}

func (p EpisodePatch) fields() map[string]any {
	fields := make(map[string]any)
	setValue(fields, "title", p.Title)
	setValue(fields, "season", p.Season)
	setValue(fields, "watched", p.Watched)
	return fields
}

func imdbID(n nullable.Nullable[string]) string {
	return strings.TrimSpace(nullableDefault(n))
}
