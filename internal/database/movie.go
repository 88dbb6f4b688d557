package database

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// Movie represents a movie in the collection.
type Movie struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"size:200;not null"`
	Year      *int   `gorm:"index"`
	Genre     string `gorm:"size:100"`
	Director  string `gorm:"size:100"`
	PosterURL string `gorm:"size:500"`
	Plot      string `gorm:"type:text"`
	// ImdbID is NULL rather than empty so that any number of movies can go without one.
	ImdbID     *string `gorm:"size:20;uniqueIndex"`
	Watched    bool    `gorm:"not null;default:false"`
	Rating     *float64
	Notes      string `gorm:"type:text"`
	WatchLater bool   `gorm:"not null;default:false"`
	CreatedAt  time.Time
}

func (c *Client) GetMovies(ctx context.Context, filter MediaFilter) ([]Movie, error) {
	tx := applyFilter(c.db.WithContext(ctx).Model(&Movie{}), filter)
	if filter.Watched != nil {
		tx = tx.Where("watched = ?", *filter.Watched)
	}

	var movies []Movie
	if err := tx.Order("id").Find(&movies).Error; err != nil {
		log.Error("failed to get movies", "error", err)
		return nil, err
	}
	return movies, nil
}

func (c *Client) GetMovieByID(ctx context.Context, id uint) (*Movie, error) {
	var movie Movie
	if err := c.db.WithContext(ctx).First(&movie, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("failed to get movie by ID", "error", err)
		}
		return nil, translate(err)
	}
	return &movie, nil
}

func (c *Client) GetMovieByImdbID(ctx context.Context, imdbID string) (*Movie, error) {
	var movie Movie
	if err := c.db.WithContext(ctx).Where("imdb_id = ?", imdbID).First(&movie).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("failed to get movie by IMDb ID", "error", err)
		}
		return nil, translate(err)
	}
	return &movie, nil
}

func (c *Client) CreateMovie(ctx context.Context, movie *Movie) error {
	if err := c.db.WithContext(ctx).Create(movie).Error; err != nil {
		log.Error("failed to create movie", "error", err)
		return translate(err)
	}
	return nil
}

func (c *Client) UpdateMovie(ctx context.Context, id uint, fields map[string]any) (*Movie, error) {
	var movie Movie
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&movie, id).Error; err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := tx.Model(&movie).Updates(fields).Error; err != nil {
				return err
			}
		}
		return tx.First(&movie, id).Error
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("failed to update movie", "id", id, "error", err)
		}
		return nil, translate(err)
	}
	return &movie, nil
}

func (c *Client) DeleteMovie(ctx context.Context, id uint) error {
	result := c.db.WithContext(ctx).Delete(&Movie{}, id)
	if result.Error != nil {
		log.Error("failed to delete movie", "id", id, "error", result.Error)
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}
