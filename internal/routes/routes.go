// Package routes defines the API routing configuration. It wires
// repositories into services and services into handlers, then mounts the
// handlers under /api behind the auth middleware.
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"veleco/internal/config"
	"veleco/internal/handlers"
	"veleco/internal/middleware"
	"veleco/internal/repositories"
	"veleco/internal/repositories/cache"
	"veleco/internal/services/analytics"
	"veleco/internal/services/balance"
	"veleco/internal/services/notifier"
	"veleco/internal/services/payment"
	"veleco/internal/services/settlement"
	"veleco/internal/services/withdrawal"
)

// SetupRoutes configures all application routes. The cache service may be nil
// when redis is not configured; services then run uncached.
func SetupRoutes(app *fiber.App, cfg *config.Config, db *gorm.DB, cacheService *cache.Service) {
	settlementRepo := repositories.NewSettlementRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	balanceRepo := repositories.NewBalanceRepository(db)

	var balanceCache balance.Cache = balance.NoopCache{}
	var analyticsCache analytics.Cache
	if cacheService != nil {
		balanceCache = cacheService
		analyticsCache = cacheService
	}

	events := notifier.NewLogNotifier()
	reconciler := balance.NewService(balanceRepo, balanceCache)
	settlementService := settlement.NewService(db, settlementRepo, reconciler, events)
	paymentService := payment.NewService(db, paymentRepo, settlementRepo, reconciler, events)
	withdrawalService := withdrawal.NewService(db, paymentRepo, reconciler)
	analyticsService := analytics.NewService(paymentRepo, settlementRepo, analyticsCache)

	settlementHandler := handlers.NewSettlementHandler(settlementService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	balanceHandler := handlers.NewBalanceHandler(reconciler, withdrawalService, paymentService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	healthHandler := handlers.NewHealthHandler(db)

	app.Get("/health", healthHandler.Check)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)
	api := app.Group("/api", authMiddleware.Handler)

	settlements := api.Group("/settlements")
	settlements.Post("/", settlementHandler.CreateSettlement)
	settlements.Get("/", settlementHandler.ListSettlements)
	settlements.Get("/:id", settlementHandler.GetSettlement)
	settlements.Put("/:id/status", settlementHandler.UpdateSettlementStatus)
	settlements.Delete("/:id", settlementHandler.DeleteSettlement)
	settlements.Get("/:id/details", settlementHandler.ListSettlementDetails)

	api.Post("/settlement-details", settlementHandler.CreateSettlementDetail)
	api.Put("/settlement-details/:id", settlementHandler.UpdateSettlementDetail)

	payments := api.Group("/seller-payments")
	payments.Post("/", paymentHandler.CreatePayment)
	payments.Get("/", paymentHandler.ListPayments)
	payments.Post("/bulk-process", paymentHandler.BulkProcessPayments)
	payments.Get("/:id", paymentHandler.GetPayment)
	payments.Put("/:id/status", paymentHandler.UpdatePaymentStatus)
	payments.Delete("/:id", paymentHandler.DeletePayment)

	balances := api.Group("/seller-balance")
	balances.Put("/", middleware.RequireAdmin, balanceHandler.UpsertBalance)
	balances.Post("/withdraw", balanceHandler.RequestWithdrawal)
	balances.Get("/:sellerId", balanceHandler.GetBalance)
	balances.Get("/:sellerId/history", balanceHandler.GetHistory)

	api.Get("/payments/analytics", analyticsHandler.GetAnalytics)
	api.Get("/payments/summary-by-method", analyticsHandler.GetSummaryByMethod)
}
