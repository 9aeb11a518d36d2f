package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/center-assignment/internal/app"
	"github.com/center-assignment/internal/config"
	httpDelivery "github.com/center-assignment/internal/delivery/http"
	"github.com/center-assignment/internal/delivery/http/handler"
	"github.com/center-assignment/internal/metrics"
	"github.com/center-assignment/internal/pkg/logger"
	"github.com/center-assignment/internal/repository/cache"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Center Assignment Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("routing_provider", cfg.Routing.Provider),
		zap.Bool("road_distances", cfg.Assignment.UseRoadDistances),
		zap.Int("capacity_per_center", cfg.Assignment.CapacityPerCenter),
	)

	metrics.RegisterDefault()

	// 3. Redis is optional for the API; it only backs the health report
	var redisCheck handler.HealthChecker
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, continuing without it", zap.Error(err))
	} else {
		redisCheck = redisClient
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
	}

	// 4. Initialize use cases
	components := app.NewComponents(cfg, log)
	log.Info("Use cases initialized")

	// 5. Initialize HTTP handlers
	assignmentHandler := handler.NewAssignmentHandler(components.Assignment, log, cfg.Server.RequestTimeout, cfg.Worker.ProgressEvery)
	distanceHandler := handler.NewDistanceHandler(components.Distance, log)
	graphHandler := handler.NewGraphHandler(components.Graph, log)
	healthHandler := handler.NewHealthHandler(map[string]handler.HealthChecker{"redis": redisCheck}, log)

	// 6. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		assignmentHandler,
		distanceHandler,
		graphHandler,
		healthHandler,
	)

	// 7. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
