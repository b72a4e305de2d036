package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adamj-ops/everyday-lending/internal/application/usecase"
	"github.com/adamj-ops/everyday-lending/internal/domain/service"
	"github.com/adamj-ops/everyday-lending/internal/infrastructure/config"
	"github.com/adamj-ops/everyday-lending/internal/infrastructure/kafka"
	pgRepo "github.com/adamj-ops/everyday-lending/internal/infrastructure/postgres"
	"github.com/adamj-ops/everyday-lending/internal/infrastructure/rail"
	grpcPresentation "github.com/adamj-ops/everyday-lending/internal/presentation/grpc"
	"github.com/adamj-ops/everyday-lending/internal/presentation/rest"
	"github.com/adamj-ops/everyday-lending/pkg/auth"
	pkgkafka "github.com/adamj-ops/everyday-lending/pkg/kafka"
	"github.com/adamj-ops/everyday-lending/pkg/observability"
	pkgpostgres "github.com/adamj-ops/everyday-lending/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting lending-payments",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Warn("failed to initialize metrics, continuing without metrics", "error", err)
	} else {
		defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort shutdown
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, cfg.DB)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Run database migrations.
	if migErr := pkgpostgres.RunMigrations(cfg.DB.DSN(), "file://internal/infrastructure/postgres/migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	loanRepo := pgRepo.NewLoanRepo(pool)
	paymentRepo := pgRepo.NewPaymentRepo(pool)
	participationRepo := pgRepo.NewParticipationRepo(pool)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close() //nolint:errcheck // best-effort close
	publisher := kafka.NewEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)

	stripeClient := rail.NewStripeClient(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret, cfg.Stripe.BaseURL)
	achGateway := rail.NewACHGateway(cfg.ACH.APIKey, cfg.ACH.BaseURL)

	// Domain services from the configured fee schedule.
	engine := service.NewAllocationEngine(service.FeePolicy{
		ServicingFeeRate:    cfg.Fees.ServicingFeeRate,
		DefaultLateFeesOwed: cfg.Fees.LateFeeBase,
	})
	lateFees := service.NewLateFeeCalculator(service.LateFeePolicy{
		BaseFee:         cfg.Fees.LateFeeBase,
		PerDayIncrement: cfg.Fees.LateFeePerDay,
		Cap:             cfg.Fees.LateFeeCap,
	})

	// Wire use cases.
	processUC := usecase.NewProcessPaymentUseCase(
		loanRepo, paymentRepo, stripeClient, achGateway, achGateway,
		publisher, engine, lateFees, logger,
	)
	splitUC := usecase.NewProcessSplitPaymentUseCase(participationRepo, processUC, publisher, logger)
	webhookUC := usecase.NewHandleStripeWebhookUseCase(paymentRepo, stripeClient, publisher, logger)
	getUC := usecase.NewGetPaymentUseCase(paymentRepo)
	listUC := usecase.NewListPaymentsUseCase(paymentRepo)

	// JWT service (validation-only: public key preferred, secret as
	// fallback). Left nil when neither is configured, which disables the
	// gRPC auth interceptor.
	var jwtSvc *auth.JWTService
	if cfg.Auth.JWTPublicKeyPath != "" || cfg.Auth.JWTSecret != "" {
		jwtCfg := auth.JWTConfig{Issuer: "everyday-lending"}
		if cfg.Auth.JWTPublicKeyPath != "" {
			keyData, loadErr := auth.LoadKeyFromFile(cfg.Auth.JWTPublicKeyPath)
			if loadErr != nil {
				logger.Error("failed to load JWT public key file", "error", loadErr)
				os.Exit(1)
			}
			jwtCfg.PublicKeyPEM = string(keyData)
		} else {
			jwtCfg.Secret = cfg.Auth.JWTSecret
		}
		jwtSvc, err = auth.NewJWTService(jwtCfg)
		if err != nil {
			logger.Error("failed to initialize JWT service", "error", err)
			os.Exit(1)
		}
	}

	// gRPC server.
	handler := grpcPresentation.NewPaymentHandler(processUC, splitUC, getUC, listUC)
	grpcServer := grpcPresentation.NewServer(handler, logger, jwtSvc, cfg.TLS.CertFile, cfg.TLS.KeyFile)

	// HTTP server: health checks, metrics, and the card processor webhook.
	mux := http.NewServeMux()
	rest.NewHealthHandler(pool, logger).RegisterRoutes(mux)
	rest.NewWebhookHandler(webhookUC, logger).RegisterRoutes(mux)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("lending-payments stopped")
}
