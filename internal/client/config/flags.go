package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/remood/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the ReMood API
//	-d string   path of the local SQLite database
//	-t int      request timeout in seconds
//	-k string   key backend: sqlite or keyring
//	-l string   log level
//	-w int      decryption workers
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with -c and -e.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-k", "-l", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the ReMood API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.KeyBackend, "k", cfg.KeyBackend, "where to keep the encryption key: sqlite or keyring")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.IntVar(&cfg.DecryptWorkers, "w", cfg.DecryptWorkers, "number of concurrent decryptions")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
