// Package config loads runtime configuration for the ReMood CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: an optional dotenv file (./.env, or the file given with
//     -e/-env) followed by REMOOD_* variables.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the ReMood API
//	-d string   path of the local SQLite database
//	-t int      request timeout (seconds)
//	-k string   key backend: sqlite or keyring
//	-l string   log level
//	-w int      decryption workers
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8000",
//	  "database_path": "remood.db",
//	  "request_timeout": "30s",
//	  "key_backend": "sqlite",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "decrypt_workers": 8
//	}
package config
