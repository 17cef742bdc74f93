package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zentra/paper-trader/internal/clients/finnhub"
	"github.com/zentra/paper-trader/internal/clients/yahoo"
	"github.com/zentra/paper-trader/internal/config"
	"github.com/zentra/paper-trader/internal/database"
	"github.com/zentra/paper-trader/internal/events"
	"github.com/zentra/paper-trader/internal/modules/advisor"
	"github.com/zentra/paper-trader/internal/modules/analytics"
	"github.com/zentra/paper-trader/internal/modules/catalog"
	"github.com/zentra/paper-trader/internal/modules/dashboards"
	"github.com/zentra/paper-trader/internal/modules/ledger"
	"github.com/zentra/paper-trader/internal/modules/market"
	"github.com/zentra/paper-trader/internal/modules/news"
	"github.com/zentra/paper-trader/internal/scheduler"
	"github.com/zentra/paper-trader/internal/server"
	"github.com/zentra/paper-trader/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New(logger.Config{
		Level:  "info",
		Pretty: true,
	})

	log.Info().Msg("Starting Zentra Paper Trader")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Reapply the configured log level
	log = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Seed the symbol directory
	catalogRepo := catalog.NewRepository(db.Conn(), log)
	if err := catalogRepo.Seed(); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed catalog")
	}

	// Event stream and the simulated account
	ev := events.NewManager(log)
	session := ledger.NewSession(cfg.StartingCash, ev, log)

	// Market data clients and services
	yahooClient := yahoo.NewClient(log)
	marketSvc := market.NewService(yahooClient, log)
	analyticsSvc := analytics.NewService(session, marketSvc, log)

	finnhubClient := finnhub.NewClient(cfg.FinnhubAPIKey, log)
	newsSvc := news.NewService(finnhubClient, log)

	// What-if chat is optional; the simulator degrades without a key
	var chat advisor.ChatClient
	if cfg.GeminiAPIKey != "" {
		geminiChat, err := advisor.NewGeminiChat(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize chat client")
		}
		chat = geminiChat
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, what-if chat disabled")
	}
	advisorSvc := advisor.NewService(chat, log)

	// Asset dashboards, fed by first-trade events
	dashboardsSvc := dashboards.NewService(
		dashboards.NewRepository(db.Conn(), log),
		session,
		marketSvc,
		analyticsSvc,
		newsSvc,
		ev,
		log,
	)

	// Initialize scheduler
	sched := scheduler.New(log)
	if err := sched.AddJob(scheduler.SnapshotSchedule, scheduler.NewSnapshotJob(analyticsSvc, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register snapshot job")
	}
	sched.Start()
	defer sched.Stop()

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:    cfg.Port,
		Log:     log,
		DevMode: cfg.DevMode,
		Modules: server.Modules{
			Trades:    ledger.NewHandlers(session, marketSvc, log),
			Portfolio: analytics.NewHandlers(analyticsSvc, log),
			Market:    market.NewHandlers(marketSvc, log),
			News:      news.NewHandlers(newsSvc, log),
			Advisor:   advisor.NewHandlers(advisorSvc, log),
			Assets:    dashboards.NewHandlers(dashboardsSvc, log),
			Catalog:   catalog.NewHandlers(catalogRepo, log),
		},
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
