package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DBHost     string `envconfig:"DB_HOST"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBURL      string `envconfig:"DB_URL"`

	AppPort string `envconfig:"APP_PORT" default:"8080"`
	AppEnv  string `envconfig:"APP_ENV" default:"development"`

	CORSOrigin string `envconfig:"CORS_ORIGIN" default:"http://localhost:3000"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	JWTSecret         string `envconfig:"JWT_SECRET"`
	InternalSecretKey string `envconfig:"INTERNAL_SECRET_KEY"`

	TossSecretKey string `envconfig:"TOSS_SECRET_KEY"`
	TossBaseURL   string `envconfig:"TOSS_BASE_URL" default:"https://api.tosspayments.com"`

	// Public URLs the gateway redirects the browser to after payment.
	PaymentSuccessURL string `envconfig:"PAYMENT_SUCCESS_URL"`
	PaymentFailURL    string `envconfig:"PAYMENT_FAIL_URL"`

	PendingOrderTimeout time.Duration `envconfig:"PENDING_ORDER_TIMEOUT" default:"30m"`
	SweepInterval       time.Duration `envconfig:"SWEEP_INTERVAL" default:"5m"`
}

// Load reads .env (if present) and the process environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.DBHost == "" && cfg.DBURL == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
