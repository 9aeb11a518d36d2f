package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/center-assignment/internal/app"
	"github.com/center-assignment/internal/config"
	"github.com/center-assignment/internal/metrics"
	"github.com/center-assignment/internal/pkg/logger"
	"github.com/center-assignment/internal/repository/cache"
	redisRepo "github.com/center-assignment/internal/repository/redis"
	"github.com/center-assignment/internal/worker"
	"github.com/center-assignment/internal/worker/assignment"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Assignment Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Int("concurrency", cfg.Worker.Concurrency),
		zap.String("routing_provider", cfg.Routing.Provider))

	metrics.RegisterDefault()

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Initialize repositories and use cases
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log, cfg.Worker.StreamReadTimeout)
	components := app.NewComponents(cfg, log)

	// 5. Initialize workers
	assignmentWorker := assignment.NewAssignmentWorker(
		streamRepo,
		components.Assignment,
		assignment.Config{
			ConsumerGroup: cfg.Worker.ConsumerGroup,
			MaxRetries:    cfg.Worker.MaxRetries,
			Concurrency:   cfg.Worker.Concurrency,
			ProgressEvery: cfg.Worker.ProgressEvery,
		},
		log,
	)

	workerManager := worker.NewWorkerManager(log, worker.DefaultShutdownTimeout)
	workerManager.Register(assignmentWorker)

	// 6. Start workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Stop first so running assignments can finish and publish their results
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	log.Info("Worker shutdown complete")
}
