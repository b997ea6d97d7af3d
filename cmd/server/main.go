// Package main is the entry point for the settlement service. It loads
// configuration, connects postgres and redis, wires the routes and starts
// the HTTP server.
package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"

	"veleco/internal/config"
	"veleco/internal/logger"
	"veleco/internal/repositories"
	"veleco/internal/repositories/cache"
	"veleco/internal/routes"
)

func main() {
	cfg := config.Load()

	zl, err := logger.Init(cfg.Env)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	db, err := repositories.InitDB(cfg)
	if err != nil {
		zap.L().Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	var cacheService *cache.Service
	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		zap.L().Warn("redis unavailable, running without cache", zap.Error(err))
		redisClient.Close()
	} else {
		cacheService = cache.NewService(redisClient, 5*time.Minute)
		defer cacheService.Close()
	}
	cancel()

	app := fiber.New(fiber.Config{
		AppName: "veleco-settlements",
	})

	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Withdrawals move money out; throttle per IP.
	app.Use("/api/seller-balance/withdraw", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "too many withdrawal requests, please try again later",
			})
		},
	}))

	routes.SetupRoutes(app, cfg, db, cacheService)

	zap.L().Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}
