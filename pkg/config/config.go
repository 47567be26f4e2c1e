package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	envPrefix = "itpd"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Mail    MailConfig
	Forms   FormsConfig
	Catalog CatalogConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ITPD_APP_ENV" default:"development"`
	Port         string `envconfig:"ITPD_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"ITPD_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ITPD_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"ITPD_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"ITPD_DB_DSN" default:"catalog.db"`

	MaxOpenConns    int           `envconfig:"ITPD_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"ITPD_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"ITPD_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ITPD_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) validate() error {
	switch db.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported db driver %q", db.Driver)
	}
	if db.DSN == "" {
		return fmt.Errorf("database DSN is required")
	}
	return nil
}

// RedisConfig backs the form rate limiter. Leaving URL and Address
// empty disables rate limiting entirely.
type RedisConfig struct {
	URL          string        `envconfig:"ITPD_REDIS_URL"`
	Address      string        `envconfig:"ITPD_REDIS_ADDR"`
	Password     string        `envconfig:"ITPD_REDIS_PASSWORD"`
	DB           int           `envconfig:"ITPD_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ITPD_REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"ITPD_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ITPD_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ITPD_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

// MailConfig configures outbound notification delivery. An empty API
// key selects the log-only sender, matching the site's behavior when
// no delivery backend is configured.
type MailConfig struct {
	SendgridAPIKey   string `envconfig:"ITPD_SENDGRID_API_KEY"`
	OwnerEmail       string `envconfig:"ITPD_MAIL_OWNER_EMAIL" default:"sales@surplustelecom.example"`
	FromEmail        string `envconfig:"ITPD_MAIL_FROM_EMAIL" default:"noreply@surplustelecom.example"`
	SiteName         string `envconfig:"ITPD_MAIL_SITE_NAME" default:"IT Pro Direct"`
	SendCustomerCopy bool   `envconfig:"ITPD_MAIL_SEND_CUSTOMER_COPY" default:"false"`
}

type FormsConfig struct {
	// PhoneMinDigits is the minimum digit count accepted on order
	// requests. Zero means presence-only.
	PhoneMinDigits int `envconfig:"ITPD_FORMS_PHONE_MIN_DIGITS" default:"0"`

	RateLimitWindow time.Duration `envconfig:"ITPD_FORMS_RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitIP     int           `envconfig:"ITPD_FORMS_RATE_LIMIT_IP" default:"10"`
	RateLimitEmail  int           `envconfig:"ITPD_FORMS_RATE_LIMIT_EMAIL" default:"5"`
}

type CatalogConfig struct {
	SeedPath    string `envconfig:"ITPD_CATALOG_SEED_PATH" default:"data/products.json"`
	AutoMigrate bool   `envconfig:"ITPD_CATALOG_AUTO_MIGRATE" default:"false"`
}
