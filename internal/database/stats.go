package database

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	db := c.db.WithContext(ctx)
	var stats Stats

	counts := []struct {
		model any
		flag  string
		dest  *int64
	}{
		{&Movie{}, "", &stats.Movies},
		{&Movie{}, "watched", &stats.WatchedMovies},
		{&Movie{}, "watch_later", &stats.WatchLaterMovies},
		{&TVShow{}, "", &stats.TVShows},
		{&TVShow{}, "watch_later", &stats.WatchLaterShows},
		{&Episode{}, "", &stats.Episodes},
		{&Episode{}, "watched", &stats.WatchedEpisodes},
	}
	for _, q := range counts {
		tx := db.Model(q.model)
		if q.flag != "" {
			tx = tx.Where(q.flag+" = ?", true)
		}
		if err := tx.Count(q.dest).Error; err != nil {
			log.Error("failed to count collection", "error", err)
			return nil, err
		}
	}

	var lastMovie, lastShow struct{ CreatedAt time.Time }
	if err := db.Model(&Movie{}).Select("created_at").Order("created_at desc").Limit(1).Find(&lastMovie).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&TVShow{}).Select("created_at").Order("created_at desc").Limit(1).Find(&lastShow).Error; err != nil {
		return nil, err
	}
	stats.LastAdded = latest(lastMovie.CreatedAt, lastShow.CreatedAt)

	return &stats, nil
}

func latest(times ...time.Time) *time.Time {
	var out *time.Time
	for _, t := range times {
		if t.IsZero() {
			continue
		}
		if out == nil || t.After(*out) {
			out = &t
		}
	}
	return out
}
