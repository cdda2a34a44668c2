package main

import (
	"context"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cherriedy/brewaco/internal/app/background"
	"github.com/cherriedy/brewaco/internal/config"
	httpdelivery "github.com/cherriedy/brewaco/internal/delivery/http"
	"github.com/cherriedy/brewaco/internal/domain"
	"github.com/cherriedy/brewaco/internal/gateway"
	"github.com/cherriedy/brewaco/internal/infrastructure/kafka"
	"github.com/cherriedy/brewaco/internal/infrastructure/metrics"
	"github.com/cherriedy/brewaco/internal/infrastructure/migrate"
	"github.com/cherriedy/brewaco/internal/infrastructure/postgres"
	"github.com/cherriedy/brewaco/internal/infrastructure/postgres/repository"
	orderusecase "github.com/cherriedy/brewaco/internal/usecase/order"
	paymentusecase "github.com/cherriedy/brewaco/internal/usecase/payment"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.MustLoad()
	setupLogger(cfg.LogConfig)

	db := postgres.MustInitDB(cfg)
	if err := migrate.RunMigrations(db, cfg.StoreDB.MigrationPath); err != nil {
		log.Fatalf("failed to run migrations: %v\n", err)
	}

	orderRepo := repository.NewDefaultOrderRepository(db)
	paymentRepo := repository.NewDefaultPaymentRepository(db)
	productRepo := repository.NewDefaultProductRepository(db)

	registry := gateway.NewRegistry()
	momo, err := gateway.NewMomoGateway(cfg.Momo, cfg.Payment.GatewayTimeout)
	if err != nil {
		log.Fatalf("failed to init momo gateway: %v\n", err)
	}
	registry.Register(domain.MethodMomo, momo)

	vnpay, err := gateway.NewVNPayGateway(cfg.VNPay)
	if err != nil {
		log.Fatalf("failed to init vnpay gateway: %v\n", err)
	}
	registry.Register(domain.MethodVNPay, vnpay)

	publisher := kafka.NewKafkaPublisher([]string{
		net.JoinHostPort(cfg.KafkaService.Host, cfg.KafkaService.Port),
	})
	paymentMetrics := metrics.NewPaymentMetrics()

	orderUC := orderusecase.NewDefaultOrderUsecase(orderRepo, productRepo, paymentMetrics)
	paymentUC := paymentusecase.NewDefaultPaymentUsecase(
		paymentRepo,
		orderRepo,
		orderUC,
		registry,
		publisher,
		paymentMetrics,
		cfg.KafkaService.Topic,
		cfg.Payment.RetryPeriod,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	background.StartPaymentExpirySweep(ctx, paymentUC, cfg.Payment.SweepInterval)

	e := httpdelivery.NewRouter(
		httpdelivery.NewOrderHandler(orderUC),
		httpdelivery.NewPaymentHandler(paymentUC),
		cfg.JWT.Secret,
	)

	addr := net.JoinHostPort(cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server stopped: %v\n", err)
		}
	}()
	slog.Info("brewaco payment service started", "addr", addr, "env", cfg.Env)

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown failed", "error", err)
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
