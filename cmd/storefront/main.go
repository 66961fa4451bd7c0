package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/api"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/config"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/gist"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/logger"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/payments"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/repository/postgres"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, log)
	if cfg.OrderStore == config.OrderStoreGist {
		repos.Order = gist.NewOrderStore(cfg.Gist, log)
	}

	gateway, err := payments.NewStripeGateway(payments.StripeConfig{
		APIKey:            cfg.Stripe.SecretKey,
		Currency:          cfg.Stripe.Currency,
		ShippingCountries: cfg.Storefront.ShippingCountries,
	}, log)
	if err != nil {
		log.Fatal("Failed to create Stripe gateway", zap.Error(err))
	}

	router := api.NewRouter(cfg, repos, gateway, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Starting server",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("order_store", cfg.OrderStore),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
}
