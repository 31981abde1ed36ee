package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-be/internal/cache"
	"storefront-be/internal/cart"
	"storefront-be/internal/checkout"
	"storefront-be/internal/config"
	"storefront-be/internal/coupon"
	"storefront-be/internal/db"
	"storefront-be/internal/graph"
	"storefront-be/internal/httpapi"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/middleware"
	"storefront-be/internal/notification"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/product"
	"storefront-be/internal/purchaserequest"
	"storefront-be/internal/store"
	"storefront-be/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

var (
	initDBFunc      = db.InitDB
	initRedisFunc   = cache.NewRedis
	startServerFunc = serve
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database := initDBFunc(cfg)
	defer database.Close()

	rdb, err := initRedisFunc(ctx, cfg)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer rdb.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	limiter := middleware.NewRateLimiter(cfg.InternalSecretKey)
	go limiter.Cleanup(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           newServer(cfg, database, rdb, reg, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.L().Info("http server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
	return startServerFunc(ctx, srv)
}

// serve runs srv until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
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

	logger.L().Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newServer wires repositories, services, the GraphQL API and the payment
// callbacks into a handler.
func newServer(cfg *config.Config, database *sql.DB, rdb *redis.Client, reg *prometheus.Registry, limiter *middleware.RateLimiter) http.Handler {
	checkoutMetrics := metrics.NewCheckoutMetrics(reg)

	userSvc := user.NewService(user.NewRepository(database))
	storeRepo := store.NewRepository(database)
	productSvc := product.NewService(product.NewRepository(database))
	cartSvc := cart.NewService(cart.NewRepository(rdb), productSvc)
	couponSvc := coupon.NewService(coupon.NewRepository(database))
	purchaseRequestSvc := purchaserequest.NewService(purchaserequest.NewRepository(database))

	notificationSvc := notification.NewService(notification.NewRepository(database), notification.NewHub())

	orderRepo := order.NewRepository(database)
	paymentRepo := payment.NewRepository(database)
	orderSvc := order.NewService(orderRepo, storeRepo, paymentRepo, notificationSvc)

	checkoutSvc := checkout.NewService(checkout.ServiceParams{
		Carts:      cartSvc,
		Products:   productSvc,
		Coupons:    couponSvc,
		Orders:     orderRepo,
		Stores:     storeRepo,
		Metrics:    checkoutMetrics,
		SuccessURL: cfg.PaymentSuccessURL,
		FailURL:    cfg.PaymentFailURL,
	})

	reconciler := checkout.NewReconciler(checkout.ReconcilerParams{
		Orders:   orderRepo,
		Payments: paymentRepo,
		Gateway:  payment.WithBreaker(payment.NewTossGateway(cfg.TossSecretKey, cfg.TossBaseURL)),
		Carts:    cartSvc,
		Stores:   storeRepo,
		Notifier: notificationSvc,
		Metrics:  checkoutMetrics,
	})

	resolver := &graph.Resolver{
		UserSvc:            userSvc,
		StoreRepo:          storeRepo,
		ProductSvc:         productSvc,
		CartSvc:            cartSvc,
		CouponSvc:          couponSvc,
		CheckoutSvc:        checkoutSvc,
		OrderSvc:           orderSvc,
		NotificationSvc:    notificationSvc,
		PurchaseRequestSvc: purchaseRequestSvc,
		SecureCookies:      cfg.IsProduction(),
	}

	api := httpapi.NewHandler(httpapi.Deps{
		Reconciler:    reconciler,
		Orders:        orderSvc,
		Notifications: notificationSvc,
		AllowedOrigin: cfg.CORSOrigin,
	})

	return setupRouter(graph.NewHandler(resolver), api, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), cfg.CORSOrigin, limiter)
}

func setupRouter(gql http.Handler, api *httpapi.Handler, metricsHandler http.Handler, corsOrigin string, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.CORS(corsOrigin))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", metricsHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)
		r.Use(limiter.Middleware)

		r.Handle("/query", gql)
		api.Mount(r)
	})

	return r
}
