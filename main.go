// main.go
package main

import (
	"log"

	"show-booking/cmd"
	"show-booking/internal/data/repository"
	"show-booking/internal/queue"
	"show-booking/internal/wire"
	"show-booking/pkg/cache"
	"show-booking/pkg/database"
	"show-booking/pkg/gateway"
	"show-booking/pkg/utils"

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

	// Seat cache (optional; nil client disables it)
	redisClient := cache.NewRedisClient(config.Redis, logger)
	seatCache := cache.NewSeatCache(redisClient, config.Redis.CacheTTL, logger)

	// Event publisher (optional)
	var publisher *queue.Publisher
	if config.Queue.Enabled {
		publisher, err = queue.NewPublisher(config.Queue.URL, logger)
		if err != nil {
			logger.Warn("Failed to connect to message broker, events disabled", zap.Error(err))
		} else {
			defer publisher.Close()
		}
	}

	// Payment gateway client
	gatewayClient := gateway.NewClient(config.Gateway, logger)

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, gatewayClient, seatCache, publisher, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
