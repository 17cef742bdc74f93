package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/zentra/paper-trader/internal/modules/advisor"
	"github.com/zentra/paper-trader/internal/modules/analytics"
	"github.com/zentra/paper-trader/internal/modules/catalog"
	"github.com/zentra/paper-trader/internal/modules/dashboards"
	"github.com/zentra/paper-trader/internal/modules/ledger"
	"github.com/zentra/paper-trader/internal/modules/market"
	"github.com/zentra/paper-trader/internal/modules/news"
)

// Modules holds the per-module HTTP handlers the server mounts
type Modules struct {
	Trades    *ledger.Handlers
	Portfolio *analytics.Handlers
	Market    *market.Handlers
	News      *news.Handlers
	Advisor   *advisor.Handlers
	Assets    *dashboards.Handlers
	Catalog   *catalog.Handlers
}

// Config holds server configuration
type Config struct {
	Port    int
	Log     zerolog.Logger
	DevMode bool
	Modules Modules
}

// Server represents the HTTP server
type Server struct {
	router  *chi.Mux
	server  *http.Server
	log     zerolog.Logger
	port    int
	started time.Time
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		log:     cfg.Log.With().Str("component", "server").Logger(),
		port:    cfg.Port,
		started: time.Now(),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes(cfg.Modules)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(m Modules) {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.handleSystemStatus)
		})

		r.Route("/trades", m.Trades.Routes)
		r.Route("/portfolio", m.Portfolio.Routes)
		r.Route("/assets", m.Assets.Routes)
		r.Route("/market", m.Market.Routes)
		r.Route("/news", m.News.Routes)
		r.Route("/catalog", m.Catalog.Routes)
		r.Route("/whatif", m.Advisor.Routes)
		r.Route("/education", m.Advisor.EducationRoutes)
	})
}

// Router exposes the configured router, used by tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
