package config

import (
	"flag"
	"io"
	"os"

	"github.com/dmitrijs2005/footcap/internal/flagx"
)

// parseFlags overlays cfg with the client's own flags. os.Args is filtered
// first so -c/-config (handled by parseJson) does not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-r", "-p", "-l"})

	fs := flag.NewFlagSet("footcap", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the SQLite database file")
	fs.StringVar(&cfg.StorageBackend, "s", cfg.StorageBackend, "storage backend (sqlite, memory, redis)")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.CatalogPath, "p", cfg.CatalogPath, "product catalog JSON file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
