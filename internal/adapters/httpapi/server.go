package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"novella/internal/application"
	"novella/internal/domain"
	"novella/internal/ports"
)

// Config tunes the HTTP server
type Config struct {
	Addr       string
	EnableCORS bool
	Debug      bool
	Admin      bool
	Logger     *slog.Logger
}

// Server exposes the reader over HTTP and pushes updates over a websocket
type Server struct {
	router *gin.Engine
	lib    *application.Library
	repo   ports.NovelRepository
	hub    *Hub
	cfg    Config
	logger *slog.Logger
}

// NewServer creates the server and wires session events to the websocket hub
func NewServer(lib *application.Library, repo ports.NovelRepository, cfg Config) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	if cfg.EnableCORS {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  []string{"*"},
			AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}

	s := &Server{
		router: router,
		lib:    lib,
		repo:   repo,
		hub:    NewHub(logger),
		cfg:    cfg,
		logger: logger,
	}
	lib.OnOpen(s.watchSession)
	s.setupRoutes()
	return s
}

// setupRoutes configures every endpoint
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthCheck)

		// Novel endpoints
		api.GET("/novel", s.getNovel)
		api.PUT("/novel", s.putNovel)

		// Profile endpoints
		api.GET("/profiles", s.listProfiles)
		api.GET("/profiles/:name", s.getProfile)
		api.DELETE("/profiles/:name", s.deleteProfile)
		api.POST("/profiles/:name/reset", s.resetProfile)

		// Reading endpoints
		api.GET("/profiles/:name/view", s.getView)
		api.GET("/profiles/:name/episodes", s.getEpisodes)
		api.GET("/profiles/:name/inventory", s.getInventory)
		api.GET("/profiles/:name/search", s.search)
		api.POST("/profiles/:name/next", s.navigate(directionNext))
		api.POST("/profiles/:name/previous", s.navigate(directionPrevious))
		api.POST("/profiles/:name/tap", s.navigate(directionTap))
		api.POST("/profiles/:name/sub/next", s.navigate(directionSubNext))
		api.POST("/profiles/:name/sub/previous", s.navigate(directionSubPrevious))
		api.POST("/profiles/:name/choose", s.choose)
		api.POST("/profiles/:name/jump/:episode", s.jump)
		api.POST("/profiles/:name/commit/:id", s.commit)

		// Bookmark endpoints
		api.GET("/profiles/:name/bookmarks", s.listBookmarks)
		api.POST("/profiles/:name/bookmarks", s.addBookmark)
		api.DELETE("/profiles/:name/bookmarks/:id", s.removeBookmark)
		api.POST("/profiles/:name/bookmarks/:id/open", s.openBookmark)
		api.PUT("/profiles/:name/characters/:id", s.noteCharacter)
	}

	s.router.GET("/ws", func(c *gin.Context) {
		s.hub.Serve(c.Writer, c.Request)
	})
}

// Handler returns the router, for tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the websocket hub
func (s *Server) Hub() *Hub {
	return s.hub
}

// Run serves until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// ReloadNovel swaps a novel read from disk into every session and tells clients
func (s *Server) ReloadNovel(ctx context.Context, n *domain.Novel) {
	if err := application.ValidateNovel(n); err != nil {
		s.logger.Warn("ignoring invalid novel", "error", err)
		s.hub.Broadcast(Event{Type: EventNovelError, Data: err.Error()})
		return
	}
	if err := s.lib.SetNovel(ctx, n); err != nil {
		s.logger.Warn("novel reload failed", "error", err)
	}
	s.hub.Broadcast(Event{Type: EventNovel, Data: gin.H{"title": n.Title, "episodes": len(n.Episodes)}})
}

// ReportNovelError tells clients the novel on disk could not be read
func (s *Server) ReportNovelError(err error) {
	s.hub.Broadcast(Event{Type: EventNovelError, Data: err.Error()})
}

// watchSession forwards a session's updates to websocket clients
func (s *Server) watchSession(session *application.Session) {
	name := session.Profile().Name
	session.OnUpdate(func(p domain.Profile) {
		s.hub.Broadcast(Event{Type: EventProfile, Profile: name, Data: session.View()})
	})
	session.OnGuestLimitReached(func(at domain.Position) {
		s.hub.Broadcast(Event{Type: EventGuestLimit, Profile: name, Data: at})
	})
	s.schedule(session, session.Pending())
}

// schedule commits a pending transition at its deadline. A transition that
// was superseded in the meantime is dropped.
func (s *Server) schedule(session *application.Session, pt *domain.PendingTransition) {
	if pt == nil {
		return
	}
	id := pt.ID
	time.AfterFunc(pt.Wait(time.Now()), func() {
		step, err := session.Commit(context.Background(), id)
		switch {
		case errors.Is(err, application.ErrTransitionNotDue):
			s.schedule(session, session.Pending())
		case err != nil:
			s.logger.Debug("scheduled commit dropped", "transition", id, "error", err)
		default:
			s.schedule(session, step.Pending)
		}
	})
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
