package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stock-tracker/internal/config"
	"stock-tracker/internal/console"
	"stock-tracker/internal/database"
	"stock-tracker/internal/logger"
	"stock-tracker/internal/repository"
	"stock-tracker/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env before viper reads the environment; missing file is fine.
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.App.Env, cfg.App.LogFile)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting inventory console",
		zap.String("env", cfg.App.Env),
		zap.String("db_host", cfg.Database.Host),
	)

	// Initialize database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// Check database health
	log.Info("Database health check", zap.Any("health", database.Health(db)))

	// Run migrations
	if err := database.RunMigrations(db, "migrations", log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(db)
	productRepo := repository.NewProductRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)

	// Initialize services
	accountService := service.NewAccountService(accountRepo)
	catalogService := service.NewCatalogService(productRepo)
	ledgerService := service.NewLedgerService(ledgerRepo)

	// An interrupt ends the menu loop; the deferred close releases the
	// shared connection.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prompter := console.NewPrompter(os.Stdin, os.Stdout)
	menu := console.NewMenu(accountService, catalogService, ledgerService, prompter, log)

	if err := menu.Run(ctx); err != nil {
		log.Error("Console session ended with error", zap.Error(err))
	}

	log.Info("Console session finished")
}
