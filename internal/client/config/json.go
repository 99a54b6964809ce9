package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/footcap/internal/flagx"
	"github.com/dmitrijs2005/footcap/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Empty fields leave the
// corresponding Config value untouched.
type JsonConfig struct {
	DatabasePath    string         `json:"database_path"`
	StorageBackend  string         `json:"storage_backend"`
	RedisAddr       string         `json:"redis_addr"`
	RedisPassword   string         `json:"redis_password"`
	RedisPrefix     string         `json:"redis_prefix"`
	CatalogPath     string         `json:"catalog_path"`
	SessionTTL      timex.Duration `json:"session_ttl"`
	NotificationTTL timex.Duration `json:"notification_ttl"`
	ModalCloseDelay timex.Duration `json:"modal_close_delay"`
	Locale          string         `json:"locale"`
	CurrencySymbol  string         `json:"currency_symbol"`
	LogLevel        string         `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config. It panics on read
// or decode errors; a missing flag is not an error.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}
	jc.apply(cfg)
}

func (jc JsonConfig) apply(cfg *Config) {
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.StorageBackend, jc.StorageBackend)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisPassword, jc.RedisPassword)
	setString(&cfg.RedisPrefix, jc.RedisPrefix)
	setString(&cfg.CatalogPath, jc.CatalogPath)
	setString(&cfg.Locale, jc.Locale)
	setString(&cfg.CurrencySymbol, jc.CurrencySymbol)
	setString(&cfg.LogLevel, jc.LogLevel)

	if jc.SessionTTL.Duration != 0 {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	if jc.NotificationTTL.Duration != 0 {
		cfg.NotificationTTL = jc.NotificationTTL.Duration
	}
	if jc.ModalCloseDelay.Duration != 0 {
		cfg.ModalCloseDelay = jc.ModalCloseDelay.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
