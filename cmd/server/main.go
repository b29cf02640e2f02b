package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tradelog/trade-journal-backend/internal/api"
	"github.com/tradelog/trade-journal-backend/internal/cache"
	"github.com/tradelog/trade-journal-backend/internal/config"
	"github.com/tradelog/trade-journal-backend/internal/database"
	"github.com/tradelog/trade-journal-backend/internal/marketdata"
	"github.com/tradelog/trade-journal-backend/internal/model"
	"github.com/tradelog/trade-journal-backend/internal/repository"
	"github.com/tradelog/trade-journal-backend/internal/scheduler"
	"github.com/tradelog/trade-journal-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	loc := cfg.Location()

	// Create repositories
	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	capitalRepo := repository.NewCapitalRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	missedTradeRepo := repository.NewMissedTradeRepository(db)
	watchlistRepo := repository.NewWatchlistRepository(db)

	// Market data client with a bounded OHLCV cache
	barCache := cache.New[[]marketdata.Bar](cfg.MarketData.CacheMax, cfg.MarketData.CacheTTL)
	marketClient := marketdata.NewClient(cfg.MarketData.BaseURL, barCache)

	// Create services
	systemService := service.NewSystemService(db)
	settingsService := service.NewSettingsService(settingsRepo, cfg.Capital.DefaultStartingCash)
	authService, err := service.NewAuthService(userRepo, settingsService, cfg.Session.Key, cfg.Session.TTL)
	if err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}
	detailCache := cache.New[model.TradeDetail](cfg.MarketData.CacheMax, cfg.MarketData.CacheTTL)
	tradeService := service.NewTradeService(tradeRepo, marketClient, detailCache)
	capitalService := service.NewCapitalService(
		capitalRepo,
		tradeRepo,
		userRepo,
		settingsService,
		marketClient,
		loc,
	)
	analyticsService := service.NewAnalyticsService(tradeRepo, loc)
	journalService := service.NewJournalService(journalRepo, loc)
	missedTradeService := service.NewMissedTradeService(missedTradeRepo)
	watchlistService := service.NewWatchlistService(watchlistRepo)

	// Start the mark-to-market scheduler
	sched := scheduler.New(capitalService, userRepo, loc)
	if err := sched.Start(cfg.Capital.SnapshotSpec, cfg.Capital.EndOfDaySpec); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Auth:        authService,
		Trades:      tradeService,
		Capital:     capitalService,
		Analytics:   analyticsService,
		Settings:    settingsService,
		Journal:     journalService,
		MissedTrade: missedTradeService,
		Watchlist:   watchlistService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	sched.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
