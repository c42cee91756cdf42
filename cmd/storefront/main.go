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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/api"
	"github.com/phonestore/storefront/internal/api/handlers"
	"github.com/phonestore/storefront/internal/backend"
	"github.com/phonestore/storefront/internal/config"
	"github.com/phonestore/storefront/internal/metrics"
	"github.com/phonestore/storefront/internal/service"
	"github.com/phonestore/storefront/internal/session"
	"github.com/phonestore/storefront/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("Storefront stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	stores, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer stores.Close()

	sessions := session.NewManager(stores.Sessions, cfg.Session.TTL, log)
	client := backend.NewClient(cfg.Backend, log, backend.WithPlaceholderImage(cfg.Search.PlaceholderImage))

	deps := handlers.Deps{
		Catalog:          service.NewCatalogService(client, stores.Suggestions, cfg.Search, m, log),
		Cart:             service.NewCartService(client, log),
		Account:          service.NewAccountService(client, sessions, log),
		Orders:           service.NewOrderService(client, log),
		Payments:         service.NewPaymentService(client, cfg.Payment, m, log),
		Installments:     service.NewInstallmentService(client, cfg.Installment.PlansTTL, m, log),
		Identity:         service.NewIdentityService(client, cfg.Identity.MaxUploadBytes, log),
		IdentityMaxBytes: cfg.Identity.MaxUploadBytes,
	}

	router := api.NewRouter(cfg, deps, sessions, m, reg, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting storefront BFF",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("session_store", cfg.Session.Store),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down storefront BFF")
	// payment await requests may hold a connection for a full polling run
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
