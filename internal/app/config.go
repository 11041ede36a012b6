package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinema-tickets/internal/reservation"
	appvalidator "github.com/metinatakli/cinema-tickets/internal/validator"
)

const (
	ReservationBackendPostgres = "postgres"
	ReservationBackendAMQP     = "amqp"
	ReservationBackendLog      = "log"
)

type Config struct {
	Port               int    `validate:"min=1,max=65535"`
	Env                string `validate:"oneof=dev staging prod test"`
	Currency           string `validate:"currency"`
	ReservationBackend string `validate:"oneof=postgres amqp log"`
	OtelCollectorUrl   string
	DB                 DBConfig
	Redis              RedisConfig
	Stripe             StripeConfig
	AMQP               AMQPConfig
	RateLimit          RateLimitConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int `validate:"min=1"`
	MaxIdleTime  time.Duration
	Migrate      bool
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int `validate:"min=1"`
	MaxIdleConns int `validate:"min=0"`
	MaxIdleTime  time.Duration
}

type StripeConfig struct {
	SecretKey     string
	PaymentMethod string
}

type AMQPConfig struct {
	URL   string
	Queue string
}

type RateLimitConfig struct {
	Enabled        bool
	Prefix         string
	Capacity       int `validate:"min=1"`
	RefillTokens   int `validate:"min=1"`
	RefillInterval time.Duration
	TTL            time.Duration
}

// Validate checks field constraints and the dependencies between backends and their connection settings.
func (cfg Config) Validate(v *validator.Validate) error {
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %s", appvalidator.Describe(err))
	}

	var errs []error

	switch cfg.ReservationBackend {
	case ReservationBackendPostgres:
		if cfg.DB.DSN == "" {
			errs = append(errs, errors.New("db-dsn is required for the postgres reservation backend"))
		}
	case ReservationBackendAMQP:
		if cfg.AMQP.URL == "" {
			errs = append(errs, errors.New("amqp-url is required for the amqp reservation backend"))
		}
	}

	if cfg.RateLimit.Enabled && cfg.Redis.URL == "" {
		errs = append(errs, errors.New("redis-url is required when rate limiting is enabled"))
	}

	if cfg.DB.Migrate && cfg.DB.DSN == "" {
		errs = append(errs, errors.New("db-dsn is required to run migrations"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}

	return nil
}

// parseFlags reads the command line into a Config. Environment variables
// supply the defaults, so a .env file loaded beforehand acts as a base layer.
func parseFlags(fs *flag.FlagSet, args []string) (Config, bool, error) {
	var cfg Config

	fs.IntVar(&cfg.Port, "port", envInt("PORT", 3000), "server port")
	fs.StringVar(&cfg.Env, "env", envString("APP_ENV", "dev"), "Environment (dev|staging|prod)")
	fs.StringVar(&cfg.Currency, "currency", envString("CURRENCY", "gbp"), "ISO 4217 currency used for charges")
	fs.StringVar(&cfg.ReservationBackend, "reservation-backend", envString("RESERVATION_BACKEND", ReservationBackendLog), "Seat reservation backend (postgres|amqp|log)")
	fs.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", envString("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")

	fs.StringVar(&cfg.DB.DSN, "db-dsn", envString("DB_DSN", ""), "PostgreSQL DSN")
	fs.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", envInt("DB_MAX_OPEN_CONNS", 25), "PostgreSQL max open connections")
	fs.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", envDuration("DB_MAX_IDLE_TIME", 15*time.Minute), "PostgreSQL max idle time for connections")
	fs.BoolVar(&cfg.DB.Migrate, "db-migrate", envBool("DB_MIGRATE", false), "Apply database migrations on startup")

	fs.StringVar(&cfg.Redis.URL, "redis-url", envString("REDIS_URL", ""), "Redis URL")
	fs.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", envInt("REDIS_MAX_OPEN_CONNS", 25), "Redis max open connections")
	fs.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", envInt("REDIS_MAX_IDLE_CONNS", 10), "Redis max idle connections")
	fs.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", envDuration("REDIS_MAX_IDLE_TIME", 2*time.Minute), "Redis max idle time for connections")

	fs.StringVar(&cfg.Stripe.SecretKey, "stripe-key", envString("STRIPE_SECRET_KEY", ""), "Stripe secret key")
	fs.StringVar(&cfg.Stripe.PaymentMethod, "stripe-payment-method", envString("STRIPE_PAYMENT_METHOD", "pm_card_visa"), "Stripe payment method attached to intents")

	fs.StringVar(&cfg.AMQP.URL, "amqp-url", envString("AMQP_URL", ""), "RabbitMQ URL")
	fs.StringVar(&cfg.AMQP.Queue, "amqp-queue", envString("AMQP_QUEUE", reservation.DefaultQueue), "Queue receiving seat reservation commands")

	fs.BoolVar(&cfg.RateLimit.Enabled, "ratelimit-enabled", envBool("RATE_LIMIT_ENABLED", false), "Enable the Redis token bucket rate limiter")
	fs.StringVar(&cfg.RateLimit.Prefix, "ratelimit-prefix", envString("RATE_LIMIT_PREFIX", "rl"), "Redis key prefix for rate limit buckets")
	fs.IntVar(&cfg.RateLimit.Capacity, "ratelimit-capacity", envInt("RATE_LIMIT_CAPACITY", 20), "Token bucket capacity")
	fs.IntVar(&cfg.RateLimit.RefillTokens, "ratelimit-refill-tokens", envInt("RATE_LIMIT_REFILL_TOKENS", 1), "Tokens added per refill interval")
	fs.DurationVar(&cfg.RateLimit.RefillInterval, "ratelimit-refill-interval", envDuration("RATE_LIMIT_REFILL_INTERVAL", time.Second), "Token bucket refill interval")
	fs.DurationVar(&cfg.RateLimit.TTL, "ratelimit-ttl", envDuration("RATE_LIMIT_TTL", 10*time.Minute), "Idle bucket expiry")

	displayVersion := fs.Bool("version", false, "Display version and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, false, err
	}

	cfg.Currency = strings.ToLower(cfg.Currency)

	return cfg, *displayVersion, nil
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
