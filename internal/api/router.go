package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tradelog/trade-journal-backend/internal/api/handlers"
	custommiddleware "github.com/tradelog/trade-journal-backend/internal/api/middleware"
	"github.com/tradelog/trade-journal-backend/internal/config"
	"github.com/tradelog/trade-journal-backend/internal/service"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	System      *service.SystemService
	Auth        *service.AuthService
	Trades      *service.TradeService
	Capital     *service.CapitalService
	Analytics   *service.AnalyticsService
	Settings    *service.SettingsService
	Journal     *service.JournalService
	MissedTrade *service.MissedTradeService
	Watchlist   *service.WatchlistService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace, unauthenticated
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		// Auth namespace, unauthenticated
		r.Route("/auth", func(r chi.Router) {
			authHandler := handlers.NewAuthHandler(svc.Auth)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Everything below requires a valid session token
		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.RequireAuth(svc.Auth))

			r.Route("/trades", func(r chi.Router) {
				tradeHandler := handlers.NewTradeHandler(svc.Trades)
				r.Get("/", tradeHandler.List)
				r.Post("/", tradeHandler.Open)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", tradeHandler.Get)
					r.Post("/add", tradeHandler.AddShares)
					r.Post("/sell", tradeHandler.SellShares)
					r.Put("/journal", tradeHandler.UpdateJournal)
				})
			})

			r.Route("/capital", func(r chi.Router) {
				capitalHandler := handlers.NewCapitalHandler(svc.Capital)
				r.Post("/", capitalHandler.Record)
				r.Get("/current", capitalHandler.Current)
				r.Get("/drawdown", capitalHandler.Drawdown)
				r.Get("/equity-curve", capitalHandler.EquityCurve)
				r.Get("/daily", capitalHandler.DailyStats)
				r.Get("/snapshots", capitalHandler.Snapshots)
				r.Post("/process-historical", capitalHandler.ProcessHistorical)
			})

			r.Route("/analytics", func(r chi.Router) {
				analyticsHandler := handlers.NewAnalyticsHandler(svc.Analytics)
				r.Get("/by-hour", analyticsHandler.ByHour)
				r.Get("/by-weekday", analyticsHandler.ByWeekday)
				r.Get("/by-strategy", analyticsHandler.ByStrategy)
				r.Get("/excursions", analyticsHandler.Excursions)
				r.Get("/summary", analyticsHandler.Summary)
			})

			r.Route("/settings", func(r chi.Router) {
				settingsHandler := handlers.NewSettingsHandler(svc.Settings)
				r.Get("/", settingsHandler.Get)
				r.Put("/", settingsHandler.Update)
			})

			r.Route("/journal", func(r chi.Router) {
				journalHandler := handlers.NewJournalHandler(svc.Journal)
				r.Get("/", journalHandler.List)
				r.Post("/", journalHandler.Create)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", journalHandler.Get)
					r.Put("/", journalHandler.Update)
					r.Delete("/", journalHandler.Delete)
				})
			})

			r.Route("/missed-trades", func(r chi.Router) {
				missedTradeHandler := handlers.NewMissedTradeHandler(svc.MissedTrade)
				r.Get("/", missedTradeHandler.List)
				r.Post("/", missedTradeHandler.Create)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Delete("/", missedTradeHandler.Delete)
				})
			})

			r.Route("/watchlist", func(r chi.Router) {
				watchlistHandler := handlers.NewWatchlistHandler(svc.Watchlist)
				r.Get("/", watchlistHandler.List)
				r.Post("/", watchlistHandler.Add)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Delete("/", watchlistHandler.Remove)
				})
			})
		})
	})

	return r
}
