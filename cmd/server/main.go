package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/harshava123/powderlegacy/internal/api"
	"github.com/harshava123/powderlegacy/internal/cart"
	"github.com/harshava123/powderlegacy/internal/catalog"
	"github.com/harshava123/powderlegacy/internal/checkout"
	"github.com/harshava123/powderlegacy/internal/config"
	"github.com/harshava123/powderlegacy/internal/mailer"
	"github.com/harshava123/powderlegacy/internal/order"
	"github.com/harshava123/powderlegacy/internal/payment"
	"github.com/harshava123/powderlegacy/internal/repository/mongo"
	"github.com/harshava123/powderlegacy/internal/repository/postgres"
	"github.com/harshava123/powderlegacy/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting storefront API server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("payment_mode", string(cfg.Razorpay.Mode)),
	)

	// Initialize database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := postgres.RunMigrations(db, "migrations"); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db, logger)

	// Remote cart mirror is optional; without it carts live in the session
	// store only.
	if cfg.Mongo.URI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoDB, err := mongo.Connect(ctx, cfg.Mongo)
		cancel()
		if err != nil {
			logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		repos.CartMirror = mongo.NewCartMirrorRepository(mongoDB)
	} else {
		logger.Info("No MongoDB configured, cart mirroring disabled")
	}

	// Session store
	sessions, err := session.NewRedisStore(cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Domain services
	products := catalog.NewDefaultSource()
	carts := cart.NewStore(sessions, repos.CartMirror, logger)
	notifier := cart.NewNotifier(carts, cart.DefaultNotificationTTL)

	integration, err := payment.New(cfg.Razorpay, cfg.AppURL, logger)
	if err != nil {
		logger.Fatal("Failed to configure payment integration", zap.Error(err))
	}

	pipeline := checkout.NewPipeline(sessions, carts, integration, cfg.MinOrderTotal, logger)
	sender := mailer.NewSMTPSender(cfg.SMTP, cfg.AdminEmail, logger)
	finalizer := order.NewFinalizer(*repos, carts, sessions, pipeline, sender, cfg.Razorpay.Mode, logger)

	// Initialize router
	router := api.NewRouter(cfg, api.Deps{
		Catalog:   products,
		Carts:     carts,
		Notifier:  notifier,
		Pipeline:  pipeline,
		Finalizer: finalizer,
		Repos:     *repos,
	}, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
