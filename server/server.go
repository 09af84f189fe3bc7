package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/bytenews/pkg/domain"
	"github.com/umputun/bytenews/pkg/feed"
	"github.com/umputun/bytenews/pkg/summary"
)

//go:generate moq -out mocks/articles.go -pkg mocks -skip-ensure -fmt goimports . Articles
//go:generate moq -out mocks/categories.go -pkg mocks -skip-ensure -fmt goimports . Categories
//go:generate moq -out mocks/regenerator.go -pkg mocks -skip-ensure -fmt goimports . Regenerator
//go:generate moq -out mocks/updater.go -pkg mocks -skip-ensure -fmt goimports . Updater

// Server represents HTTP server instance
type Server struct {
	Params
	articles    Articles
	categories  Categories
	regenerator Regenerator
	updater     Updater
	generator   *feed.Generator

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Params defines server settings
type Params struct {
	Listen   string
	Timeout  time.Duration
	BaseURL  string
	MediaDir string // media root served under /media/, nothing is served if empty
	Version  string
	Debug    bool
}

// Articles is the article storage, writes are limited to moderation
type Articles interface {
	GetArticle(ctx context.Context, id int64) (*domain.Article, error)
	ListArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error)
	ArticleStats(ctx context.Context) (domain.ArticleStats, error)
	SetArticlesApproved(ctx context.Context, approved bool, ids ...int64) (int64, error)
}

// Categories lists known categories
type Categories interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// Regenerator recomputes derived artifacts of a stored article
type Regenerator interface {
	RegenerateSummary(ctx context.Context, id int64, length summary.Length) (string, error)
	RegenerateAudio(ctx context.Context, id int64) (string, error)
}

// Updater runs on-demand ingestion of configured sources
type Updater interface {
	UpdateNow(ctx context.Context) int
	Sources() []domain.FeedSource
}

// New initializes a new server instance
func New(params Params, articles Articles, categories Categories, regen Regenerator, updater Updater) *Server {
	if params.Listen == "" {
		params.Listen = ":8080"
	}
	if params.Timeout == 0 {
		params.Timeout = 30 * time.Second
	}
	s := &Server{
		Params:      params,
		articles:    articles,
		categories:  categories,
		regenerator: regen,
		updater:     updater,
		generator:   feed.NewGenerator(params.BaseURL),
		router:      routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	lgr.Printf("[INFO] starting server on %s", s.Listen)

	// configure HTTP server
	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              s.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: s.Timeout,
		ReadTimeout:       s.Timeout,
		// ingest and audio rendering run inside the request
		WriteTimeout: 10 * s.Timeout,
	}
	s.lock.Unlock()

	// graceful shutdown on context cancellation
	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// ServeHTTP makes the server usable as a handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	// basic middleware
	s.router.Use(rest.AppInfo("bytenews", "umputun", s.Version))
	s.router.Use(rest.Ping)

	if s.Debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	// production middleware
	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	// json api
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /articles", s.listArticlesHandler)
		r.HandleFunc("GET /articles/{id}", s.getArticleHandler)
		r.HandleFunc("GET /categories", s.listCategoriesHandler)
		r.HandleFunc("GET /sources", s.listSourcesHandler)
		r.HandleFunc("POST /articles/{id}/summary", s.regenerateSummaryHandler)
		r.HandleFunc("POST /articles/{id}/audio", s.regenerateAudioHandler)
		r.HandleFunc("POST /articles/{id}/approve", s.approveArticleHandler)
		r.HandleFunc("DELETE /articles/{id}/approve", s.approveArticleHandler)
		r.HandleFunc("POST /ingest", s.ingestHandler)
	})

	// feeds
	s.router.HandleFunc("GET /rss", s.rssHandler)
	s.router.HandleFunc("GET /rss/{category}", s.rssHandler)
	s.router.HandleFunc("GET /opml", s.opmlHandler)

	// rendered audio files
	if s.MediaDir != "" {
		s.router.Handle("GET /media/", http.StripPrefix("/media/", http.FileServer(http.Dir(s.MediaDir))))
	}
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, rest.JSON{"error": errMsg})
}
