package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hanafy/storefront/internal/adapter/handler"
	"github.com/hanafy/storefront/internal/adapter/notify"
	"github.com/hanafy/storefront/internal/adapter/storage"
	"github.com/hanafy/storefront/internal/config"
	"github.com/hanafy/storefront/internal/core/service"
	"github.com/hanafy/storefront/internal/metrics"
	"github.com/hanafy/storefront/internal/port"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// MySQL
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("open mysql", zap.Error(err))
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("ping mysql", zap.Error(err))
	}
	logger.Info("connected to mysql")

	// Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		PoolSize: 100,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("ping redis", zap.Error(err))
	}
	logger.Info("connected to redis")

	// Metrics
	registry := prometheus.NewRegistry()
	commerceMetrics := metrics.NewCommerce(registry)
	serverMetrics := metrics.NewServer(registry)

	// Notification transport
	var notifier port.Notifier
	var kafkaNotifier *notify.KafkaNotifier
	if len(cfg.KafkaBrokers) > 0 {
		kafkaNotifier = notify.NewKafkaNotifier(cfg.KafkaBrokers, cfg.NotifyTopic)
		notifier = kafkaNotifier
		logger.Info("notifications via kafka", zap.Strings("brokers", cfg.KafkaBrokers))
	} else {
		notifier = notify.NewLogNotifier(logger)
		logger.Info("no kafka brokers configured, notifications go to the log")
	}
	dispatcher := notify.NewDispatcher(notifier, notify.Options{
		QueueSize:   cfg.NotifyQueueSize,
		Workers:     cfg.NotifyWorkers,
		MaxAttempts: cfg.NotifyRetries,
		Backoff:     cfg.NotifyBackoff,
	}, logger, commerceMetrics)

	// Adapters
	cartStore := storage.NewRedisCartStore(rdb, cfg.CartTTL)
	catalogRepo := storage.NewMySQLCatalog(db)
	categoryRepo := storage.NewMySQLCategories(db)
	promoRepo := storage.NewMySQLPromos(db)
	orderRepo := storage.NewMySQLOrders(db)
	userRepo := storage.NewMySQLUsers(db)
	settingsRepo := storage.NewMySQLSettings(db)

	// Services
	settingsService := service.NewSettingsService(settingsRepo)
	cartService := service.NewCartService(cartStore, catalogRepo, logger)
	promoService := service.NewPromoService(promoRepo)
	catalogService := service.NewCatalogService(catalogRepo, categoryRepo)
	userService := service.NewUserService(userRepo, cfg.AdminEmail, cfg.AdminPassword)
	orderService := service.NewOrderService(
		orderRepo, catalogRepo, settingsService, cartService,
		dispatcher, cfg.AdminEmail, logger, commerceMetrics,
	)

	// HTTP
	httpHandler := handler.NewHTTPHandler(
		catalogService, cartService, promoService,
		orderService, userService, settingsService, logger,
	)
	mux := http.NewServeMux()
	httpHandler.Register(mux)
	mux.Handle("GET /metrics", metrics.Handler(registry))

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.Instrument(serverMetrics, mux),
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("http server", zap.Error(err))
		}
	}()

	// Graceful shutdown: stop taking requests, then drain the notification
	// queue, then close connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	logger.Info("http server stopped")

	dispatcher.Close()
	logger.Info("notification dispatcher drained")

	if kafkaNotifier != nil {
		kafkaNotifier.Close()
	}
	rdb.Close()
	db.Close()
	logger.Info("connections closed")
}
