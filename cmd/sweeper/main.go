package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"storefront-be/internal/cache"
	"storefront-be/internal/cart"
	"storefront-be/internal/checkout"
	"storefront-be/internal/config"
	"storefront-be/internal/cron"
	"storefront-be/internal/db"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/notification"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/product"
	"storefront-be/internal/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const lockKeyFormat = "storefront:sweeper:lock:%s"

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database := db.InitDB(cfg)
	defer database.Close()

	rdb, err := cache.NewRedis(ctx, cfg)
	if err != nil {
		log.Fatal("failed to bootstrap redis", zap.Error(err))
	}
	defer rdb.Close()

	registry, err := buildRegistry(cfg, database, rdb, prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("failed to register jobs", zap.Error(err))
	}

	lock, err := cron.NewRedisLock(rdb, lockKey(cfg.AppEnv), 0)
	if err != nil {
		log.Fatal("failed to create sweeper lock", zap.Error(err))
	}

	service, err := cron.NewService(cron.ServiceParams{
		Registry: registry,
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.SweepInterval,
	})
	if err != nil {
		log.Fatal("failed to create cron service", zap.Error(err))
	}

	ctx = logger.WithFields(ctx, zap.String("env", cfg.AppEnv), zap.String("service", "sweeper"))
	logger.FromCtx(ctx).Info("starting sweeper", zap.Duration("interval", cfg.SweepInterval))

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.FromCtx(ctx).Fatal("sweeper stopped unexpectedly", zap.Error(err))
	}
	logger.FromCtx(ctx).Info("sweeper shutting down gracefully")
}

// buildRegistry wires the pending order sweep and the notification cleanup.
func buildRegistry(cfg *config.Config, database *sql.DB, rdb *redis.Client, reg prometheus.Registerer) (*cron.Registry, error) {
	storeRepo := store.NewRepository(database)
	orderRepo := order.NewRepository(database)
	notificationRepo := notification.NewRepository(database)
	gateway := payment.WithBreaker(payment.NewTossGateway(cfg.TossSecretKey, cfg.TossBaseURL))

	reconciler := checkout.NewReconciler(checkout.ReconcilerParams{
		Orders:   orderRepo,
		Payments: payment.NewRepository(database),
		Gateway:  gateway,
		Carts:    cart.NewService(cart.NewRepository(rdb), product.NewService(product.NewRepository(database))),
		Stores:   storeRepo,
		Notifier: notification.NewService(notificationRepo, notification.NewHub()),
		Metrics:  metrics.NewCheckoutMetrics(reg),
	})

	pending, err := cron.NewPendingOrderJob(cron.PendingOrderJobParams{
		Orders:     orderRepo,
		Gateway:    gateway,
		Reconciler: reconciler,
		Timeout:    cfg.PendingOrderTimeout,
	})
	if err != nil {
		return nil, err
	}

	cleanup, err := cron.NewNotificationCleanupJob(cron.NotificationCleanupJobParams{
		Repository: notificationRepo,
	})
	if err != nil {
		return nil, err
	}

	return cron.NewRegistry(pending, cleanup), nil
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
