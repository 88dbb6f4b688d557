package database

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a lower-cased substring pattern with LIKE wildcards in s escaped.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// applyFilter adds the filters shared by movies and tv shows.
func applyFilter(tx *gorm.DB, filter MediaFilter) *gorm.DB {
	if filter.Genre != "" {
		tx = tx.Where(`LOWER(genre) LIKE ? ESCAPE '\'`, likePattern(filter.Genre))
	}
	if filter.Year != nil {
		tx = tx.Where("year = ?", *filter.Year)
	}
	if filter.WatchLater != nil {
		tx = tx.Where("watch_later = ?", *filter.WatchLater)
	}
	if filter.Search != "" {
		tx = tx.Where(`LOWER(title) LIKE ? ESCAPE '\'`, likePattern(filter.Search))
	}
	return tx
}
