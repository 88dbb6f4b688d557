package cmd

import (
	"testing"
	"time"

	"github.com/jon4hz/cinemate/internal/database"
	"github.com/stretchr/testify/assert"
)

func TestFormatStats(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	last := now.Add(-3 * time.Hour)

	out := formatStats(&database.Stats{
		Movies:           1234,
		WatchedMovies:    1000,
		WatchLaterMovies: 12,
		TVShows:          7,
		Episodes:         310,
		WatchedEpisodes:  42,
		LastAdded:        &last,
	}, now)

	assert.Contains(t, out, "Movies: 1,234 (1,000 watched, 12 to watch later)")
	assert.Contains(t, out, "TV Shows: 7 (0 to watch later)")
	assert.Contains(t, out, "Episodes: 310 (42 watched)")
	assert.Contains(t, out, "3 hours ago")

	empty := formatStats(&database.Stats{}, now)
	assert.Contains(t, empty, "Last Added: never")
}
