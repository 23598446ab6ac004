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

	"github.com/asadalimcj/zearsports/internal/config"
	"github.com/asadalimcj/zearsports/internal/db"
	httpapi "github.com/asadalimcj/zearsports/internal/http"
	"github.com/asadalimcj/zearsports/internal/notifier"
	"github.com/asadalimcj/zearsports/internal/port"
	"github.com/asadalimcj/zearsports/internal/repository"
	"github.com/asadalimcj/zearsports/internal/service"
	"github.com/asadalimcj/zearsports/internal/session"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("storefront stopped", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			return fmt.Errorf("db.RunMigrations: %w", err)
		}
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db.NewPool: %w", err)
	}
	defer pool.Close()

	catalog := repository.NewCatalog(pool)
	orders := repository.NewOrder(pool)
	users := repository.NewUser(pool)

	n, closeNotifier, err := newNotifier(cfg, logger)
	if err != nil {
		return err
	}
	defer closeNotifier()

	dispatcher := notifier.NewDispatcher(n, cfg.NotifyTimeout, logger)

	carts := session.NewStore(cfg.SessionTTL, logger)
	go carts.Run(ctx, cfg.SessionSweepInterval)

	cartSvc := service.NewCartService(catalog, cfg.Pricing)
	checkout := service.NewCheckoutService(catalog, orders, dispatcher,
		service.NewTimestampOrderNumbers(cfg.OrderNumberPrefix), cfg.Pricing,
		service.CheckoutConfig{
			MissingProducts:        cfg.MissingProducts,
			MaxOrderNumberAttempts: cfg.OrderNumberAttempts,
		}, logger)

	accounts, err := service.NewAccountService(users, orders, service.AccountConfig{BcryptCost: cfg.BcryptCost}, logger)
	if err != nil {
		return fmt.Errorf("service.NewAccountService: %w", err)
	}

	handler := httpapi.NewHandler(catalog, carts, carts, httpapi.Services{
		Cart:     cartSvc,
		Checkout: checkout,
		Reviews:  service.NewReviewService(catalog, logger),
		// contact messages go out synchronously so the sender learns about failures
		Contact:  service.NewContactService(n, logger),
		Accounts: accounts,
	}, httpapi.Options{
		SessionCookie:  cfg.SessionCookie,
		SessionTTL:     cfg.SessionTTL,
		RequestTimeout: cfg.RequestTimeout,
	}, logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(handler),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("storefront listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Warn("pending notifications abandoned", zap.Error(err))
	}

	return nil
}

// newNotifier publishes to RabbitMQ when a broker is configured and only logs otherwise.
func newNotifier(cfg config.Config, logger *zap.Logger) (port.Notifier, func(), error) {
	if cfg.RabbitMQURL == "" {
		logger.Warn("RABBITMQ_URL not set, order confirmations will only be logged")
		return notifier.NewLogNotifier(cfg.StoreEmail, logger), func() {}, nil
	}

	conn, err := amqp.DialConfig(cfg.RabbitMQURL, amqp.Config{
		Dial: amqp.DefaultDial(10 * time.Second),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}

	if err := notifier.DeclareExchange(ch, cfg.NotifyExchange); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	closeFn := func() {
		_ = ch.Close()
		_ = conn.Close()
	}
	return notifier.NewRabbitNotifier(ch, cfg.NotifyExchange, cfg.StoreEmail, logger), closeFn, nil
}
