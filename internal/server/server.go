// Package server provides the HTTP server setup and routing configuration.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mooddy/playlist-service/internal/api"
	"github.com/mooddy/playlist-service/internal/catalog"
	"github.com/mooddy/playlist-service/internal/config"
	"github.com/mooddy/playlist-service/internal/db"
	"github.com/mooddy/playlist-service/internal/logger"
	"github.com/mooddy/playlist-service/internal/middleware"
	"github.com/mooddy/playlist-service/internal/playlist"
	"github.com/mooddy/playlist-service/internal/track"
	"github.com/redis/go-redis/v9"
)

// Server represents the HTTP server
type Server struct {
	config          *config.Config
	db              *db.DB
	repos           *db.Repositories
	catalogClient   catalog.Client
	resolver        *track.Resolver
	playlistService *playlist.Service
	router          *gin.Engine
	server          *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, database *db.DB) *Server {
	repos := db.NewRepositories(database)

	var catalogClient catalog.Client = catalog.NewHTTPClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		catalogClient = catalog.NewCachingClient(catalogClient, redisClient, cfg.Redis.CacheTTL)
	}

	resolver := track.NewResolver(repos, catalogClient)
	playlistService := playlist.NewService(database, repos, resolver)

	return &Server{
		config:          cfg,
		db:              database,
		repos:           repos,
		catalogClient:   catalogClient,
		resolver:        resolver,
		playlistService: playlistService,
	}
}

// setupRouter initializes the Gin router with middleware and routes
func (s *Server) setupRouter() {
	if s.config.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	s.router.Use(middleware.RequestLogger())
	s.router.Use(gin.Recovery())
	s.router.Use(cors.Default())
	s.router.Use(middleware.RequesterIdentity())

	apiGroup := s.router.Group("/api")

	api.SetupHealthRoutes(apiGroup, s.db)
	api.SetupPlaylistRoutes(apiGroup, s.playlistService)
	api.SetupTrackRoutes(apiGroup, s.catalogClient)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.setupRouter()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.server = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	logger.Log.Info().
		Str("host", s.config.Server.Host).
		Int("port", s.config.Server.Port).
		Msg("Starting HTTP server")

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Log.Info().Msg("Shutting down server gracefully")

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
	}

	logger.Log.Info().Msg("Server stopped")
	return nil
}
