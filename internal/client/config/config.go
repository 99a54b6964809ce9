package config

import "time"

// Storage backends accepted by StorageBackend.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds runtime settings for the footcap client.
//
// Units: the three durations are time.Duration values; JSON accepts "300ms"
// style strings, env vars use Go duration syntax.
type Config struct {
	DatabasePath   string `env:"FOOTCAP_DATABASE_PATH"`
	StorageBackend string `env:"FOOTCAP_STORAGE_BACKEND"`
	RedisAddr      string `env:"FOOTCAP_REDIS_ADDR"`
	RedisPassword  string `env:"FOOTCAP_REDIS_PASSWORD"`
	RedisPrefix    string `env:"FOOTCAP_REDIS_PREFIX"`

	// CatalogPath overrides the embedded product catalog when set.
	CatalogPath string `env:"FOOTCAP_CATALOG_PATH"`

	// SessionTTL bounds how long a persisted session survives restarts.
	SessionTTL time.Duration `env:"FOOTCAP_SESSION_TTL"`

	NotificationTTL time.Duration `env:"FOOTCAP_NOTIFICATION_TTL"`
	ModalCloseDelay time.Duration `env:"FOOTCAP_MODAL_CLOSE_DELAY"`

	Locale         string `env:"FOOTCAP_LOCALE"`
	CurrencySymbol string `env:"FOOTCAP_CURRENCY_SYMBOL"`
	LogLevel       string `env:"FOOTCAP_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "footcap.db"
	c.StorageBackend = BackendSQLite
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "footcap:"
	c.SessionTTL = 30 * 24 * time.Hour
	c.NotificationTTL = 2 * time.Second
	c.ModalCloseDelay = 300 * time.Millisecond
	c.Locale = "en-IN"
	c.CurrencySymbol = "₹"
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, then a JSON file (if -c/-config
// is given), then FOOTCAP_* environment variables (a .env file is honoured),
// then command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
