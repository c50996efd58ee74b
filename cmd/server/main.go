package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	api "github.com/temirovuz/library/internal/api/http"
	"github.com/temirovuz/library/internal/config"
	"github.com/temirovuz/library/internal/logger"
	"github.com/temirovuz/library/internal/repository/postgres"
	"github.com/temirovuz/library/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting library rental service...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	rentalService := service.NewRentalService(db, store.RentalRepository, store.BookRepository, cfg.PenaltyRate())
	reviewService := service.NewReviewService(db, store.ReviewRepository, store.RentalRepository)
	catalogService := service.NewCatalogService(store.BookRepository, store.AuthorRepository, store.GenreRepository)
	basketService := service.NewBasketService(store.BasketRepository, store.BookRepository)
	userService := service.NewUserService(store.UserRepository, store.RentalRepository)

	// Initialize Handlers
	rentalHandler := api.NewRentalHandler(rentalService)
	catalogHandler := api.NewCatalogHandler(catalogService)
	reviewHandler := api.NewReviewHandler(reviewService, basketService)
	userHandler := api.NewUserHandler(userService)

	router := api.NewRouter(rentalHandler, catalogHandler, reviewHandler, userHandler)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server stopped", "error", err)
		log.Fatalf("HTTP server stopped: %v", err)
	}
}
