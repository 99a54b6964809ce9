// Package config loads runtime configuration for the footcap client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. FOOTCAP_* environment variables, after loading ./.env if present.
//  4. Command-line flags.
//
// Supported flags
//
//	-d string   path of the SQLite database file
//	-s string   storage backend: sqlite, memory or redis
//	-r string   redis address (host:port)
//	-p string   product catalog JSON file
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
//	{
//	  "database_path": "footcap.db",
//	  "storage_backend": "sqlite",
//	  "redis_addr": "127.0.0.1:6379",
//	  "catalog_path": "",
//	  "session_ttl": "720h",
//	  "notification_ttl": "2s",
//	  "modal_close_delay": "300ms",
//	  "locale": "en-IN",
//	  "currency_symbol": "₹",
//	  "log_level": "info"
//	}
package config
