package config

import (
	"fmt"
	"time"

	"github.com/farellandr/vakansik/internal/helpers"
	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"
	"github.com/xendit/xendit-go/v6"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	XenditSecretKey     string `envconfig:"XENDIT_SECRET_KEY"`
	XenditBaseURL       string `envconfig:"XENDIT_BASE_URL" default:"https://api.xendit.co"`
	XenditAPIVersion    string `envconfig:"XENDIT_API_VERSION" default:"2024-11-11"`
	XenditCallbackToken string `envconfig:"XENDIT_CALLBACK_TOKEN"`

	PaymentDisplayName string `envconfig:"PAYMENT_DISPLAY_NAME" default:"Vakansik"`
	PaymentSuccessURL  string `envconfig:"PAYMENT_SUCCESS_URL" default:"vakansik://payment/success"`
	PaymentCancelURL   string `envconfig:"PAYMENT_CANCEL_URL" default:"vakansik://payment/cancel"`
	PaymentFailureURL  string `envconfig:"PAYMENT_FAILURE_URL" default:"vakansik://payment/failure"`

	ResendAPIKey string `envconfig:"RESEND_API_KEY"`
	EmailFrom    string `envconfig:"EMAIL_FROM" default:"Vakansik <noreply@vakansik.com>"`
	AdminEmails  string `envconfig:"ADMIN_EMAILS"`

	JWTSecret string `envconfig:"JWT_SECRET"`

	KafkaBrokers    string `envconfig:"KAFKA_BROKERS"`
	KafkaOrderTopic string `envconfig:"KAFKA_ORDER_TOPIC" default:"order-events"`

	RedisAddr    string        `envconfig:"REDIS_ADDR"`
	NotifyDedupe bool          `envconfig:"NOTIFY_DEDUPE" default:"false"`
	DedupeTTL    time.Duration `envconfig:"NOTIFY_DEDUPE_TTL" default:"720h"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	ReconcileAfter time.Duration `envconfig:"RECONCILE_AFTER" default:"15m"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}
	return &cfg, nil
}

func (c *Config) AdminEmailList() []string {
	return helpers.SplitCSV(c.AdminEmails)
}

func (c *Config) KafkaBrokerList() []string {
	return helpers.SplitCSV(c.KafkaBrokers)
}

func (c *Config) CORSOrigins() []string {
	origins := helpers.SplitCSV(c.CORSAllowedOrigins)
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func NewLogger(level string) (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func InitXenditClient(cfg *Config) (*xendit.APIClient, error) {
	if cfg.XenditSecretKey == "" {
		return nil, fmt.Errorf("XENDIT_SECRET_KEY is not set")
	}
	client := xendit.NewClient(cfg.XenditSecretKey)

	return client, nil
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// InitRedis returns nil when no address is configured.
func InitRedis(cfg *Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
}
