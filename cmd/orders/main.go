package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"microshop/internal/client"
	"microshop/internal/config"
	"microshop/internal/handler"
	"microshop/internal/metrics"
	"microshop/internal/server"
	"microshop/internal/store"
)

const (
	serviceName = "orders-service"
	defaultPort = 8002
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("service", serviceName))

	if err := run(ctx, logger); err != nil {
		logger.Error("application failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Load(defaultPort)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	reg := metrics.NewRegistry(serviceName)
	orders := store.NewOrderStore()

	timeout := time.Duration(cfg.Client.TimeoutSeconds * float64(time.Second))
	usersClient := client.New("users-service", cfg.Services.UsersURL, "User not found", timeout, reg, logger)
	productsClient := client.New("products-service", cfg.Services.ProductsURL, "Product not found", timeout, reg, logger)

	e := server.New(serviceName, cfg, reg, logger)
	handler.NewOrders(orders, usersClient, productsClient, logger).Register(e)
	server.WarmMetrics(e, reg)

	return server.Serve(ctx, e, &cfg.Server, logger)
}
