package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "COPPERLINE_DB_DSN"
	EnvDBHost = "COPPERLINE_DB_HOST"
	EnvDBUser = "COPPERLINE_DB_USER"
	EnvDBName = "COPPERLINE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Stripe       StripeConfig
	Catalog      CatalogConfig
	QuoteLimit   QuoteRateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}
	if cfg.DB.Driver != "sqlite" {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"COPPERLINE_APP_ENV" required:"true"`
	Port         string `envconfig:"COPPERLINE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"COPPERLINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"COPPERLINE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"COPPERLINE_DB_DSN"`
	Driver string `envconfig:"COPPERLINE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"COPPERLINE_DB_HOST"`
	LegacyPort     int    `envconfig:"COPPERLINE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"COPPERLINE_DB_USER"`
	LegacyPassword string `envconfig:"COPPERLINE_DB_PASSWORD"`
	LegacyName     string `envconfig:"COPPERLINE_DB_NAME"`
	LegacySSLMode  string `envconfig:"COPPERLINE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"COPPERLINE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"COPPERLINE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"COPPERLINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"COPPERLINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"COPPERLINE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"COPPERLINE_REDIS_ADDR"`
	Password     string        `envconfig:"COPPERLINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"COPPERLINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"COPPERLINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"COPPERLINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"COPPERLINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"COPPERLINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"COPPERLINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type StripeConfig struct {
	APIKey string `envconfig:"COPPERLINE_STRIPE_API_KEY"`
	Secret string `envconfig:"COPPERLINE_STRIPE_SECRET"`
	Env    string `envconfig:"COPPERLINE_STRIPE_ENV" default:"test"`

	WebhookIdempotencyTTL time.Duration `envconfig:"COPPERLINE_STRIPE_WEBHOOK_IDEMPOTENCY_TTL" default:"720h"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type CatalogConfig struct {
	Currency                    string `envconfig:"COPPERLINE_CATALOG_CURRENCY" default:"USD"`
	MaxCustomPersonalizations   int    `envconfig:"COPPERLINE_CATALOG_MAX_CUSTOM_PERSONALIZATIONS" default:"5"`
	SyncEnabled                 bool   `envconfig:"COPPERLINE_CATALOG_SYNC_ENABLED" default:"true"`
	SyncOnPublishedProductsOnly bool   `envconfig:"COPPERLINE_CATALOG_SYNC_PUBLISHED_ONLY" default:"true"`
}

type QuoteRateLimitConfig struct {
	Window time.Duration `envconfig:"COPPERLINE_QUOTE_RATE_LIMIT_WINDOW" default:"1m"`
	Limit  int64         `envconfig:"COPPERLINE_QUOTE_RATE_LIMIT" default:"120"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"COPPERLINE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"COPPERLINE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
