package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	checkout_app "github.com/benedict11572/kienyeji/internal/app/checkout"
	orders_app "github.com/benedict11572/kienyeji/internal/app/orders"
	"github.com/benedict11572/kienyeji/internal/catalog"
	"github.com/benedict11572/kienyeji/internal/config"
	"github.com/benedict11572/kienyeji/internal/gateway"
	http_catalog "github.com/benedict11572/kienyeji/internal/handler/http/catalog"
	http_checkout "github.com/benedict11572/kienyeji/internal/handler/http/checkout"
	http_orders "github.com/benedict11572/kienyeji/internal/handler/http/orders"
	"github.com/benedict11572/kienyeji/internal/infrastructure/database"
	"github.com/benedict11572/kienyeji/internal/infrastructure/kafka"
	postgres_order_repo "github.com/benedict11572/kienyeji/internal/repository/order_repo/postgres"
	postgres_outbox_repo "github.com/benedict11572/kienyeji/internal/repository/outbox_repo/postgres"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.TimeKey = "timestamp"

	appLogger, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create zap logger: %v\n", err)
		os.Exit(1)
	}
	appLogger.Info("Storefront service starting...")

	dbConfig := database.DBConfig{
		Host:     cfg.DBConfig.DBHost,
		Port:     cfg.DBConfig.DBPort,
		User:     cfg.DBConfig.DBUser,
		Password: cfg.DBConfig.DBPassword,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.DBSSLMode,
	}

	var db *sql.DB
	maxRetries := 10
	retryDelay := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = database.NewPostgresDB(dbConfig)
		if err == nil {
			appLogger.Info("Successfully connected to PostgreSQL database")
			break
		}
		appLogger.Warn(fmt.Sprintf("Failed to connect to database (attempt %d/%d): %v. Retrying in %s...", i+1, maxRetries, err, retryDelay))
		time.Sleep(retryDelay)
	}

	if db == nil {
		appLogger.Fatal("Could not connect to database after multiple retries. Exiting.", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Error closing database connection", zap.Error(err))
		}
	}()

	appLogger.Info("Running database migrations...")
	migrateDSN := "postgres://" + cfg.GetDBMigrationConnectionString()
	m, err := migrate.New(cfg.MigrationsPath, migrateDSN)
	if err != nil {
		appLogger.Fatal("Failed to create migrate instance", zap.Error(err))
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		appLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}
	appLogger.Info("Database migrations completed.")

	kafkaProducer, err := kafka.NewProducer(cfg.GetKafkaBrokers(), appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create Kafka producer", zap.Error(err))
	}
	defer func() {
		if err := kafkaProducer.Close(); err != nil {
			appLogger.Error("Error closing Kafka producer", zap.Error(err))
		}
	}()

	catalogClient := catalog.NewClient(cfg.CatalogURL, cfg.CatalogTimeout,
		appLogger.With(zap.String("component", "CatalogClient")))
	gatewayClient := gateway.NewClient(cfg.GatewayURL, cfg.GatewayCredential, cfg.GatewayTimeout,
		appLogger.With(zap.String("component", "PaymentGatewayClient")))

	orderRepository := postgres_order_repo.NewOrderRepository(db, appLogger)
	outboxRepository := postgres_outbox_repo.NewOutboxRepository(db, appLogger)

	orderService := orders_app.NewOrderService(orderRepository, outboxRepository, catalogClient, kafkaProducer, appLogger)
	checkoutService := checkout_app.NewCheckoutService(catalogClient, gatewayClient,
		appLogger.With(zap.String("component", "CheckoutService")))

	go func() {
		ticker := time.NewTicker(cfg.OutboxPollInterval)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.OutboxPollTimeout)
			if err := orderService.ProcessOutbox(ctx); err != nil {
				appLogger.Error("Error processing outbox", zap.Error(err))
			}
			cancel()
		}
	}()
	appLogger.Info("Transactional outbox sender started.")

	go func() {
		ticker := time.NewTicker(cfg.CheckoutSweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			checkoutService.EvictStaleSessions(context.Background(), cfg.CheckoutSessionTTL)
		}
	}()
	appLogger.Info("Checkout session janitor started.",
		zap.Duration("ttl", cfg.CheckoutSessionTTL),
		zap.Duration("interval", cfg.CheckoutSweepInterval))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	http_catalog.RegisterRoutes(r, catalogClient, appLogger)
	http_checkout.RegisterRoutes(r, checkoutService, appLogger)
	http_orders.RegisterRoutes(r, orderService, appLogger)

	serverAddr := fmt.Sprintf(":%d", cfg.ServerPort)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()
	appLogger.Info("Storefront service started", zap.String("address", serverAddr))

	<-sigChan

	appLogger.Info("Shutting down storefront service...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Fatal("Graceful shutdown failed", zap.Error(err))
	}
	appLogger.Info("Storefront service stopped.")
}
