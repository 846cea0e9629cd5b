package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/farellandr/vakansik/config"
	"github.com/farellandr/vakansik/internal/events"
	"github.com/farellandr/vakansik/internal/gateway"
	"github.com/farellandr/vakansik/internal/handlers"
	"github.com/farellandr/vakansik/internal/middleware"
	"github.com/farellandr/vakansik/internal/notify"
	"github.com/farellandr/vakansik/internal/payments"
	"github.com/farellandr/vakansik/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds the long-lived dependencies shared by the HTTP server and the
// operator commands.
type App struct {
	DB        *gorm.DB
	Payments  *payments.Service
	publisher events.Publisher
	redis     *redis.Client
	logger    *zap.Logger
}

func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	db, err := config.InitDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var statuses payments.StatusLookup
	if xenditClient, err := config.InitXenditClient(cfg); err != nil {
		logger.Warn("Xendit SDK client not configured, reconciliation disabled", zap.Error(err))
	} else {
		statuses = gateway.NewStatusClient(xenditClient)
	}

	var mailer notify.Mailer
	if cfg.ResendAPIKey != "" {
		mailer = notify.NewResendMailer(cfg.ResendAPIKey, cfg.EmailFrom)
	} else {
		logger.Warn("RESEND_API_KEY not set, emails will only be logged")
		mailer = notify.NewLogMailer(logger.With(zap.String("component", "mailer")))
	}
	notifier := notify.NewNotifier(mailer, cfg.AdminEmailList(), logger.With(zap.String("component", "notifier")))

	rdb := config.InitRedis(cfg)
	var guard notify.Guard = notify.AlwaysNotify{}
	if cfg.NotifyDedupe {
		if rdb == nil {
			logger.Warn("NOTIFY_DEDUPE is set but REDIS_ADDR is empty, replays will re-send emails")
		} else {
			guard = notify.NewRedisGuard(rdb, cfg.DedupeTTL)
		}
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if brokers := cfg.KafkaBrokerList(); len(brokers) > 0 {
		publisher = events.NewKafkaProducer(brokers, cfg.KafkaOrderTopic, logger.With(zap.String("component", "kafka")))
	}

	svc := payments.NewService(payments.Dependencies{
		Orders:    repository.NewOrderRepository(db),
		Trips:     repository.NewTripRepository(db),
		Users:     repository.NewUserRepository(db),
		Gateway:   gateway.NewClient(cfg.XenditBaseURL, cfg.XenditSecretKey, cfg.XenditAPIVersion, &http.Client{Timeout: 30 * time.Second}),
		Statuses:  statuses,
		Notifier:  notifier,
		Guard:     guard,
		Publisher: publisher,
	}, payments.Options{
		CallbackToken: cfg.XenditCallbackToken,
		DisplayName:   cfg.PaymentDisplayName,
		ReturnURLs: payments.ReturnURLs{
			Success: cfg.PaymentSuccessURL,
			Cancel:  cfg.PaymentCancelURL,
			Failure: cfg.PaymentFailureURL,
		},
	}, logger.With(zap.String("component", "payments")))

	return &App{
		DB:        db,
		Payments:  svc,
		publisher: publisher,
		redis:     rdb,
		logger:    logger,
	}, nil
}

func (a *App) Close() {
	if err := a.publisher.Close(); err != nil {
		a.logger.Error("Failed to close event publisher", zap.Error(err))
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.logger.Error("Failed to close database", zap.Error(err))
		}
	}
}

func (a *App) ping() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func Start(cfg *config.Config, logger *zap.Logger) error {
	app, err := NewApp(cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := config.RunMigrations(app.DB); err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	setupRoutes(r, app, cfg, logger)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "apikey", "x-client-info", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func setupRoutes(r *gin.Engine, app *App, cfg *config.Config, logger *zap.Logger) {
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger.With(zap.String("component", "http"))))
	r.Use(middleware.PaymentsMiddleware(app.Payments))

	r.GET("/healthz", handlers.Health(app.ping))

	functions := r.Group("/functions/v1")
	{
		functions.POST("/create-payment-request", handlers.CreatePaymentRequest)
		functions.POST("/payment-webhook", handlers.PaymentWebhook)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		orders := protected.Group("/orders")
		{
			orders.GET("/:id", handlers.GetOrder)
			orders.GET("/:id/qr", handlers.GetOrderQR)
		}
	}
}
