package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jon4hz/cinemate/internal/database"
	"github.com/mergestat/timediff"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics",
	Long:  `Display how many movies, tv shows and episodes are in the collection and how much of it has been watched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		db, err := database.New(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close() //nolint: errcheck

		stats, err := db.GetStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get collection stats: %w", err)
		}

		fmt.Print(formatStats(stats, time.Now()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func formatStats(stats *database.Stats, now time.Time) string {
	out := "Collection Statistics:\n"
	out += fmt.Sprintf("Movies: %s (%s watched, %s to watch later)\n",
		humanize.Comma(stats.Movies), humanize.Comma(stats.WatchedMovies), humanize.Comma(stats.WatchLaterMovies))
	out += fmt.Sprintf("TV Shows: %s (%s to watch later)\n",
		humanize.Comma(stats.TVShows), humanize.Comma(stats.WatchLaterShows))
	out += fmt.Sprintf("Episodes: %s (%s watched)\n",
		humanize.Comma(stats.Episodes), humanize.Comma(stats.WatchedEpisodes))

	if stats.LastAdded != nil {
		out += fmt.Sprintf("Last Added: %s (%s)\n",
			stats.LastAdded.Format(time.RFC3339), timediff.TimeDiff(*stats.LastAdded, timediff.WithStartTime(now)))
	} else {
		out += "Last Added: never\n"
	}
	return out
}
