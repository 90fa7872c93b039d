package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/remood/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

const (
	envServerURL      = "REMOOD_SERVER_URL"
	envDatabasePath   = "REMOOD_DB_PATH"
	envRequestTimeout = "REMOOD_REQUEST_TIMEOUT"
	envKeyBackend     = "REMOOD_KEY_BACKEND"
	envLogLevel       = "REMOOD_LOG_LEVEL"
	envLogFormat      = "REMOOD_LOG_FORMAT"
	envDecryptWorkers = "REMOOD_DECRYPT_WORKERS"
)

// loadEnvFile loads a dotenv file into the process environment. Variables
// already set win over the file. The file named by -e/-env must exist; the
// default ./.env is optional.
func loadEnvFile() {
	path := flagx.EnvFileFlags()
	required := path != ""
	if !required {
		path = defaultEnvFile
	}

	err := godotenv.Load(path)
	if err != nil && (required || !errors.Is(err, fs.ErrNotExist)) {
		panic(err)
	}
}

// parseEnv overlays Config with REMOOD_* environment variables. Unset or
// empty variables leave the field alone; malformed numbers panic like the
// other loaders.
func parseEnv(cfg *Config) {
	loadEnvFile()

	if v := os.Getenv(envServerURL); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv(envDatabasePath); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv(envRequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv(envKeyBackend); v != "" {
		cfg.KeyBackend = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(envLogFormat); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv(envDecryptWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.DecryptWorkers = n
	}
}
