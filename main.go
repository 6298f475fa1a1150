// main.go
package main

import (
	"context"
	"log"
	"time"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/cmd"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/cache"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/repository"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/events"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/gateway"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/wire"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/worker"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/database"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Connect to redis
	redisCache := cache.NewRedisCache(config.Redis, logger)
	defer redisCache.Close()

	if err := redisCache.Ping(context.Background()); err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}

	logger.Info("Redis connected successfully")

	// Kafka change feed
	producer := events.NewProducer(config.Kafka.Brokers, config.Kafka.ChangesTopic, logger)
	defer producer.Close()

	consumer := events.NewConsumer(config.Kafka.Brokers, config.Kafka.GroupID, config.Kafka.ChangesTopic, logger)
	defer consumer.Close()

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Payment gateway client
	paymentGateway := gateway.NewHTTPGateway(config.Gateway.BaseURL, config.Gateway.APIKey, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, redisCache, producer, paymentGateway, logger)

	// Background workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	sweeper := worker.NewHoldSweeper(
		repos.Booking,
		repos.Promo,
		redisCache,
		producer,
		time.Duration(config.Hold.SweepSeconds)*time.Second,
		logger,
	)
	go sweeper.Run(workerCtx)

	notifier := worker.NewNotifier(
		consumer,
		repos.Booking,
		repos.User,
		worker.NewSMTPMailer(config.Email),
		logger,
	)
	go notifier.Run(workerCtx)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port, logger)
}
