package database

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// episodeBatchSize keeps bulk inserts below sqlite's bound variable limit.
const episodeBatchSize = 100

// TVShow represents a tv show in the collection.
type TVShow struct {
	ID            uint   `gorm:"primaryKey"`
	Title         string `gorm:"size:200;not null"`
	Year          *int   `gorm:"index"`
	Genre         string `gorm:"size:100"`
	Creator       string `gorm:"size:100"`
	PosterURL     string `gorm:"size:500"`
	Plot          string `gorm:"type:text"`
	ImdbID        *string `gorm:"size:20;uniqueIndex"`
	TotalEpisodes int     `gorm:"not null;default:0"`
	Rating        *float64
	Notes         string `gorm:"type:text"`
	WatchLater    bool   `gorm:"not null;default:false"`
	CreatedAt     time.Time
	Episodes      []Episode `gorm:"foreignKey:TVShowID;constraint:OnDelete:CASCADE;"`
}

func (TVShow) TableName() string {
	return "tv_shows"
}

// Episode represents a single episode of a tv show.
type Episode struct {
	ID            uint   `gorm:"primaryKey"`
	TVShowID      uint   `gorm:"column:tv_show_id;not null;uniqueIndex:idx_episode_show_number"`
	Season        int    `gorm:"not null;default:1"`
	EpisodeNumber int    `gorm:"not null;uniqueIndex:idx_episode_show_number"`
	Title         string `gorm:"size:200"`
	Watched       bool   `gorm:"not null;default:false"`
}

// WatchedEpisodes counts the loaded episodes that have been watched.
func (s *TVShow) WatchedEpisodes() int {
	return lo.CountBy(s.Episodes, func(e Episode) bool { return e.Watched })
}

// Progress is the watched share of TotalEpisodes in percent, rounded half to even.
func (s *TVShow) Progress() int {
	if s.TotalEpisodes <= 0 {
		return 0
	}
	return int(math.RoundToEven(float64(s.WatchedEpisodes()) / float64(s.TotalEpisodes) * 100))
}

// NewEpisodes returns unwatched season 1 episodes numbered from..to, titled "Episode N".
func NewEpisodes(showID uint, from, to int) []Episode {
	if from < 1 {
		from = 1
	}
	if to < from {
		return nil
	}
	episodes := make([]Episode, 0, to-from+1)
	for n := from; n <= to; n++ {
		episodes = append(episodes, Episode{
			TVShowID:      showID,
			Season:        1,
			EpisodeNumber: n,
			Title:         fmt.Sprintf("Episode %d", n),
		})
	}
	return episodes
}

func preloadEpisodes(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Episodes", func(db *gorm.DB) *gorm.DB {
		return db.Order("episode_number, id")
	})
}

func (c *Client) GetTVShows(ctx context.Context, filter MediaFilter) ([]TVShow, error) {
	tx := applyFilter(c.db.WithContext(ctx).Model(&TVShow{}), filter)

	var shows []TVShow
	if err := preloadEpisodes(tx).Order("id").Find(&shows).Error; err != nil {
		log.Error("failed to get tv shows", "error", err)
		return nil, err
	}
	return shows, nil
}

func (c *Client) GetTVShowByID(ctx context.Context, id uint) (*TVShow, error) {
	var show TVShow
	if err := preloadEpisodes(c.db.WithContext(ctx)).First(&show, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("failed to get tv show by ID", "error", err)
		}
		return nil, translate(err)
	}
	return &show, nil
}

func (c *Client) GetTVShowByImdbID(ctx context.Context, imdbID string) (*TVShow, error) {
	var show TVShow
	if err := c.db.WithContext(ctx).Where("imdb_id = ?", imdbID).First(&show).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("failed to get tv show by IMDb ID", "error", err)
		}
		return nil, translate(err)
	}
	return &show, nil
}

func (c *Client) CreateTVShow(ctx context.Context, show *TVShow) error {
	episodes := show.Episodes
	show.Episodes = nil

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Episodes").Create(show).Error; err != nil {
			return err
		}
		if len(episodes) == 0 {
			return nil
		}
		for i := range episodes {
			episodes[i].TVShowID = show.ID
		}
		return tx.CreateInBatches(&episodes, episodeBatchSize).Error
	})
	if err != nil {
		log.Error("failed to create tv show", "error", err)
		show.ID = 0
		return translate(err)
	}

	show.Episodes = episodes
	return nil
}

func (c *Client) UpdateTVShow(ctx context.Context, id uint, fields map[string]any, totalEpisodes *int) (*TVShow, error) {
	var show TVShow
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&show, id).Error; err != nil {
			return err
		}

		updates := maps.Clone(fields)
		if totalEpisodes != nil && *totalEpisodes != show.TotalEpisodes {
			if err := syncEpisodes(tx, show.ID, show.TotalEpisodes, *totalEpisodes); err != nil {
				return err
			}
			if updates == nil {
				updates = make(map[string]any, 1)
			}
			updates["total_episodes"] = *totalEpisodes
		}

		if len(updates) > 0 {
			if err := tx.Model(&TVShow{ID: show.ID}).Updates(updates).Error; err != nil {
				return err
			}
		}

		show = TVShow{}
		return preloadEpisodes(tx).First(&show, id).Error
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("failed to update tv show", "id", id, "error", err)
		}
		return nil, translate(err)
	}
	return &show, nil
}

// syncEpisodes appends episodes oldTotal+1..newTotal, or removes every episode numbered
// above newTotal regardless of its watched state.
func syncEpisodes(tx *gorm.DB, showID uint, oldTotal, newTotal int) error {
	switch {
	case newTotal > oldTotal:
		episodes := NewEpisodes(showID, oldTotal+1, newTotal)
		log.Debug("adding episodes", "show", showID, "count", len(episodes))
		return tx.CreateInBatches(&episodes, episodeBatchSize).Error
	case newTotal < oldTotal:
		result := tx.Where("tv_show_id = ? AND episode_number > ?", showID, newTotal).Delete(&Episode{})
		if result.Error != nil {
			return result.Error
		}
		log.Debug("removed episodes", "show", showID, "count", result.RowsAffected)
	}
	return nil
}

func (c *Client) DeleteTVShow(ctx context.Context, id uint) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var show TVShow
		if err := tx.Select("id").First(&show, id).Error; err != nil {
			return err
		}
		// the FK cascade covers this too, but only if the connection enforces foreign keys
		if err := tx.Where("tv_show_id = ?", id).Delete(&Episode{}).Error; err != nil {
			return err
		}
		return tx.Delete(&TVShow{}, id).Error
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("failed to delete tv show", "id", id, "error", err)
		}
		return translate(err)
	}
	return nil
}

func (c *Client) GetEpisodes(ctx context.Context, showID uint) ([]Episode, error) {
	var episodes []Episode
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var show TVShow
		if err := tx.Select("id").First(&show, showID).Error; err != nil {
			return err
		}
		return tx.Where("tv_show_id = ?", showID).Order("episode_number, id").Find(&episodes).Error
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("failed to get episodes", "show", showID, "error", err)
		}
		return nil, translate(err)
	}
	return episodes, nil
}

func (c *Client) UpdateEpisode(ctx context.Context, showID, episodeID uint, fields map[string]any) (*Episode, error) {
	var episode Episode
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND tv_show_id = ?", episodeID, showID).First(&episode).Error; err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := tx.Model(&Episode{ID: episode.ID}).Updates(fields).Error; err != nil {
				return err
			}
		}
		return tx.First(&episode, episode.ID).Error
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("failed to update episode", "show", showID, "episode", episodeID, "error", err)
		}
		return nil, translate(err)
	}
	return &episode, nil
}
