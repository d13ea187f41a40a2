// Package api provides the HTTP companion server for Archlens. It serves
// REST endpoints over the analyzed link graph and pushes live model
// updates to visualizer clients over a WebSocket channel whenever the
// model directory changes on disk.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/archlens/archlens/internal/config"
	"github.com/archlens/archlens/internal/links"
	"github.com/archlens/archlens/internal/model"
	"github.com/archlens/archlens/internal/registry"
)

// Server represents the Archlens API server.
type Server struct {
	echo       *echo.Echo
	config     *config.Config
	catalog    *registry.Catalog
	predicates *registry.PredicateCatalog
	hub        *Hub
	watcher    *Watcher

	// mu guards the model state replaced on reload. The analyzer itself
	// is not safe for concurrent rebuild, so reads take RLock and Reload
	// swaps in a freshly analyzed graph under Lock.
	mu       sync.RWMutex
	store    *model.Store
	analyzer *links.Analyzer
}

// New creates the API server, loads the model, and runs the initial
// analysis.
func New(cfg *config.Config, catalog *registry.Catalog, predicates *registry.PredicateCatalog) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Server.Debug
	e.HTTPErrorHandler = HTTPErrorHandler

	s := &Server{
		echo:       e,
		config:     cfg,
		catalog:    catalog,
		predicates: predicates,
		hub:        NewHub(),
	}

	if err := s.loadModel(); err != nil {
		return nil, err
	}

	go s.hub.Run()

	s.setupMiddleware()
	s.setupRoutes()

	if cfg.Model.Watch {
		watcher, err := NewWatcher(cfg.Model.Dir, s.Reload)
		if err != nil {
			return nil, fmt.Errorf("failed to watch model directory: %w", err)
		}
		s.watcher = watcher
	}

	return s, nil
}

// loadModel reads the model directory and rebuilds the link graph.
func (s *Server) loadModel() error {
	store, err := model.Load(s.config.Model.Dir)
	if err != nil {
		return err
	}

	analyzer := links.NewAnalyzer(s.catalog)
	analyzer.AnalyzeModel(store.Snapshot())

	s.mu.Lock()
	s.store = store
	s.analyzer = analyzer
	s.mu.Unlock()
	return nil
}

// Reload re-reads the model from disk, re-analyzes it, and broadcasts a
// refresh event to connected visualizers.
func (s *Server) Reload() {
	if err := s.loadModel(); err != nil {
		log.Printf("Model reload failed: %v", err)
		return
	}

	s.mu.RLock()
	stats := s.analyzer.Stats()
	s.mu.RUnlock()

	s.hub.Broadcast(NewModelEvent(EventModelReloaded, stats))
	log.Printf("Model reloaded: %d elements, %d links", stats.TotalElements, stats.TotalLinks)
}

// setupMiddleware configures Echo middleware.
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${time_rfc3339}] ${status} ${method} ${uri} (${latency_human})\n",
	}))
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestID())

	if len(s.config.Security.AllowedOrigins) > 0 {
		s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.config.Security.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	if s.config.Security.RateLimit > 0 {
		s.echo.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(
			rate.Limit(s.config.Security.RateLimit),
		)))
	}
}

// setupRoutes configures API routes.
func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ws", s.handleWebSocket)

	v1 := s.echo.Group("/api/v1")
	v1.GET("/stats", s.getStats)
	v1.GET("/links", s.listLinks)
	v1.GET("/links/broken", s.listBrokenLinks)
	v1.GET("/elements/orphaned", s.listOrphans)
	v1.GET("/elements/:id/links", s.getElementLinks)
	v1.GET("/elements/:id/connected", s.getConnected)
	v1.GET("/path", s.findPath)
	v1.POST("/validate", s.runValidation)

	reg := v1.Group("/registry")
	reg.GET("/link-types", s.listLinkTypes)
	reg.GET("/predicates", s.listPredicates)
}

// Start begins listening for requests.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout
	log.Printf("Archlens server listening on %s", addr)
	if s.watcher != nil {
		go s.watcher.Run()
	}
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.Close()
	}
	return s.echo.Shutdown(ctx)
}
