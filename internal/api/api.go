package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/cinemate/internal/api/handler"
	"github.com/jon4hz/cinemate/internal/collection"
	"github.com/jon4hz/cinemate/internal/config"
	"github.com/jon4hz/cinemate/internal/database"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg        *config.Config
	ginEngine  *gin.Engine
	db         database.DB
	collection *collection.Service
	metadata   handler.MetadataSearcher
}

// New creates the HTTP server and registers all routes.
func New(cfg *config.Config, db database.DB, coll *collection.Service, metadata handler.MetadataSearcher, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:        cfg,
		ginEngine:  gin.New(),
		db:         db,
		collection: coll,
		metadata:   metadata,
	}

	if err := s.ginEngine.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupMiddleware() {
	s.ginEngine.Use(gin.Recovery(), requestID(), requestLogger())
	if s.cfg.Server.CORSOrigin != "" {
		s.ginEngine.Use(cors(s.cfg.Server.CORSOrigin))
	}
	if s.cfg.Server.Gzip {
		s.ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))
	}
}

func (s *Server) setupRoutes() {
	h := handler.New(s.collection, s.metadata, s.db)

	s.ginEngine.GET("/health", h.Health)

	api := s.ginEngine.Group("/api")
	api.GET("/search", h.Search)
	api.GET("/details/", h.Details)
	api.GET("/details/:imdb_id", h.Details)

	movies := api.Group("/movies")
	movies.GET("", h.ListMovies)
	movies.GET("/", h.ListMovies)
	movies.POST("", h.CreateMovie)
	movies.POST("/", h.CreateMovie)
	movies.GET("/:id", h.GetMovie)
	movies.PUT("/:id", h.UpdateMovie)
	movies.DELETE("/:id", h.DeleteMovie)

	tv := api.Group("/tv")
	tv.GET("", h.ListShows)
	tv.GET("/", h.ListShows)
	tv.POST("", h.CreateShow)
	tv.POST("/", h.CreateShow)
	tv.GET("/:id", h.GetShow)
	tv.PUT("/:id", h.UpdateShow)
	tv.DELETE("/:id", h.DeleteShow)
	tv.GET("/:id/episodes", h.ListEpisodes)
	tv.PUT("/:id/episodes/:episode_id", h.UpdateEpisode)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.ginEngine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Starting server", "listen", s.cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
