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

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/zini-storefront/internal/catalog"
	"github.com/nikolayk812/zini-storefront/internal/config"
	"github.com/nikolayk812/zini-storefront/internal/domain"
	"github.com/nikolayk812/zini-storefront/internal/httpapi"
	"github.com/nikolayk812/zini-storefront/internal/imagegen"
	"github.com/nikolayk812/zini-storefront/internal/localstore"
	"github.com/nikolayk812/zini-storefront/internal/marketing"
	"github.com/nikolayk812/zini-storefront/internal/port"
	"github.com/nikolayk812/zini-storefront/internal/pricing"
	"github.com/nikolayk812/zini-storefront/internal/repository"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "zap.NewProduction: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger); err != nil {
		logger.Fatal("storefront stopped", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pool.Ping: %w", err)
	}

	cartStorage, err := newCartStorage(cfg, pool)
	if err != nil {
		return err
	}

	keys := imagegen.NewEnvKeySelector(cfg.EnvFile, cfg.GeminiAPIKey)

	gin.SetMode(gin.ReleaseMode)
	api := httpapi.New(httpapi.Deps{
		CartStorage: cartStorage,
		Newsletter:  marketing.NewNewsletter(repository.NewSubscription(pool), logger.Named("newsletter")),
		Contact:     marketing.NewContact(repository.NewInquiry(pool), logger.Named("contact")),
		Images:      imagegen.NewService(imagegen.NewGemini(keys), keys, logger.Named("imagegen")),
		Policy: pricing.Policy{
			DeliveryFee:           domain.Money{Amount: cfg.DeliveryFee, Currency: catalog.Currency},
			FreeShippingThreshold: cfg.FreeShippingThreshold,
		},
		ProcessingDelay:    cfg.OrderProcessingDelay,
		SessionIdleTimeout: cfg.SessionIdleTimeout,
		CORSOrigins:        cfg.CORSOrigins,
		StaticDir:          cfg.StaticDir,
		Logger:             logger,
	})
	defer api.Close()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("cart_storage", string(cfg.CartStorage)))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}

	return nil
}

func newCartStorage(cfg config.Config, pool *pgxpool.Pool) (port.CartStorage, error) {
	if cfg.CartStorage == config.CartStorageFile {
		storage, err := localstore.New(cfg.CartDir)
		if err != nil {
			return nil, fmt.Errorf("localstore.New: %w", err)
		}
		return storage, nil
	}

	return repository.NewCart(pool), nil
}
