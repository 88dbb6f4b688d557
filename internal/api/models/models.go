package models

import "time"

// Movie is the JSON representation of a movie.
type Movie struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Year       *int      `json:"year"`
	Genre      string    `json:"genre"`
	Director   string    `json:"director"`
	PosterURL  string    `json:"poster_url"`
	Plot       string    `json:"plot"`
	ImdbID     string    `json:"imdb_id"`
	Watched    bool      `json:"watched"`
	Rating     *float64  `json:"rating"`
	Notes      string    `json:"notes"`
	WatchLater bool      `json:"watch_later"`
	CreatedAt  time.Time `json:"created_at"`
}

// TVShow is the JSON representation of a tv show including its episodes
// and the derived watch progress.
type TVShow struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Year            *int      `json:"year"`
	Genre           string    `json:"genre"`
	Creator         string    `json:"creator"`
	PosterURL       string    `json:"poster_url"`
	Plot            string    `json:"plot"`
	ImdbID          string    `json:"imdb_id"`
	TotalEpisodes   int       `json:"total_episodes"`
	WatchedEpisodes int       `json:"watched_episodes"`
	Progress        int       `json:"progress"`
	Rating          *float64  `json:"rating"`
	Notes           string    `json:"notes"`
	WatchLater      bool      `json:"watch_later"`
	CreatedAt       time.Time `json:"created_at"`
	Episodes        []Episode `json:"episodes"`
}

// Episode is the JSON representation of an episode.
type Episode struct {
	ID            uint   `json:"id"`
	TVShowID      uint   `json:"tv_show_id"`
	Season        int    `json:"season"`
	EpisodeNumber int    `json:"episode_number"`
	Title         string `json:"title"`
	Watched       bool   `json:"watched"`
}
