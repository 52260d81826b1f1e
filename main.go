package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"pdv-pricing/config"
	"pdv-pricing/domain"
	httpLayer "pdv-pricing/http"
	"pdv-pricing/repository"
	"pdv-pricing/service"
)

func main() {
	settings := config.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: settings.LogLevel})))

	if err := run(settings); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(settings *config.Settings) error {
	ctx := context.Background()

	var rdb *redis.Client
	if settings.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: settings.RedisAddr})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return err
		}
	}

	var cache repository.CacheRepository = repository.NewMemoryCache()
	if rdb != nil {
		cache = repository.NewRedisCache(rdb, "pdv:")
	}

	var feeStore repository.FeeScheduleStore
	switch {
	case settings.FeeScheduleFile != "":
		feeStore = repository.NewFileFeeScheduleStore(settings.FeeScheduleFile)
	case rdb != nil:
		feeStore = repository.NewRedisFeeScheduleStore(rdb, "pdv:fees:schedule")
	default:
		feeStore = repository.NewMemoryFeeScheduleStore()
	}

	var products repository.ProductRepository
	if settings.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, settings.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		products = repository.NewPostgresProductRepository(pool)
	} else {
		slog.Warn("DATABASE_URL not set, using in-memory demo catalog")
		products = repository.NewProductRepositoryMemory(demoCatalog()...)
	}

	fees, err := service.NewFeeScheduleService(ctx, feeStore)
	if err != nil {
		return err
	}

	installmentService := service.NewInstallmentService(
		fees,
		repository.NewQuoteRepositoryMemory(settings.QuoteHistory),
		cache,
		settings.SimulationCacheTTL,
	)

	rateLimiter := httpLayer.NewRateLimiter(settings.RateLimitCapacity, settings.RateLimitWindow)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.Handlers{
		Installments:     httpLayer.NewInstallmentHandler(installmentService),
		Checkout:         httpLayer.NewCheckoutHandler(service.NewCheckoutService(fees)),
		Currency:         httpLayer.NewCurrencyHandler(),
		FeeSchedule:      httpLayer.NewFeeScheduleHandler(fees),
		PriceAdjustments: httpLayer.NewPriceAdjustmentHandler(service.NewPriceAdjustmentService(products)),
	}, rateLimiter)

	server := &http.Server{
		Addr:         settings.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("pricing API listening", "addr", server.Addr, "fee_schedule_version", fees.Current().Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	slog.Info("server exited")
	return nil
}

func demoCatalog() []domain.Product {
	return []domain.Product{
		{ID: "demo-1", SKU: "CAB-001", Name: "Cabo USB-C 1m", Category: "acessorios", Supplier: "Multilaser", CostPrice: 9.9, SalePrice: 24.9},
		{ID: "demo-2", SKU: "CAP-010", Name: "Capinha silicone", Category: "acessorios", Supplier: "Case Co", CostPrice: 7.5, SalePrice: 29.9},
		{ID: "demo-3", SKU: "FON-100", Name: "Fone Bluetooth", Category: "audio", Supplier: "Multilaser", CostPrice: 58, SalePrice: 129.9},
		{ID: "demo-4", SKU: "PEL-200", Name: "Pelicula de vidro", Category: "acessorios", Supplier: "Case Co", CostPrice: 3.2, SalePrice: 19.9},
	}
}
