package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/cinemate/internal/api"
	"github.com/jon4hz/cinemate/internal/collection"
	"github.com/jon4hz/cinemate/internal/config"
	"github.com/jon4hz/cinemate/internal/database"
	"github.com/jon4hz/cinemate/internal/omdb"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the cinemate server",
	Long:  `Start the cinemate HTTP server. This is also what runs when no command is given.`,
	Example: `cinemate serve --config config.yml
cinemate serve -c /path/to/config.yml --log-level debug
`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	applyConfigLogLevel(cfg.LogLevel)
	return cfg
}

func startServer(cmd *cobra.Command, _ []string) {
	cfg := loadConfig()

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close() //nolint: errcheck

	metadata := omdb.New(cfg.OMDb)
	coll := collection.New(db, metadata)

	server, err := api.New(cfg, db, coll, metadata, log.GetLevel() == log.DebugLevel)
	if err != nil {
		log.Fatalf("failed to create API server: %v", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("cinemate started successfully")
	if err := server.Run(ctx); err != nil {
		log.Error("API server error", "error", err)
		return
	}
	log.Info("shut down gracefully")
}
