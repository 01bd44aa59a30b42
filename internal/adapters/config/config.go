package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"hermes/pkg/errors"
)

type Config struct {
	App           AppConfig
	Delta         DeltaConfig
	Redis         RedisConfig
	Transport     TransportConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"hermes"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`

	// MetricsAddr enables the Prometheus endpoint when set (e.g. ":9090")
	MetricsAddr string `envconfig:"METRICS_ADDR"`
}

// DeltaConfig holds Delta Exchange API credentials and endpoint selection.
// Public market data works without credentials; private endpoints require them.
type DeltaConfig struct {
	APIKey  string `envconfig:"DELTA_API_KEY"`
	Secret  string `envconfig:"DELTA_API_SECRET"`
	Testnet bool   `envconfig:"DELTA_TESTNET" default:"false"`
	BaseURL string `envconfig:"DELTA_BASE_URL"` // overrides testnet/mainnet selection
}

type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TransportConfig tunes the shared signed-HTTP transport
type TransportConfig struct {
	RequestsPerMinute int           `envconfig:"TRANSPORT_REQUESTS_PER_MINUTE" default:"200"`
	MaxRetries        int           `envconfig:"TRANSPORT_MAX_RETRIES" default:"3"`
	Timeout           time.Duration `envconfig:"TRANSPORT_TIMEOUT" default:"10s"`
	CatalogCacheTTL   time.Duration `envconfig:"TRANSPORT_CATALOG_CACHE_TTL" default:"5m"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from the environment, loading .env first when present
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process config")
	}

	if cfg.ErrorTracking.Enabled && cfg.ErrorTracking.SentryDSN == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "SENTRY_DSN required when error tracking is enabled")
	}

	return &cfg, nil
}
