// Package config loads runtime configuration for the sx client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c or -config.
//  3. Environment: SX_BASE_URL, SX_CLIENT_DB, SX_API_KEY.
//  4. Command-line flags (see parseFlags), which override everything else.
//
// Supported flags
//
//	-s string   sx server base URL
//	-d string   path of the local sqlite store
//	-v string   listing variant: owner or public
//	-o string   directory export.zip is written to
//	-l string   listen address of the local dashboard
//	-t int      request timeout in seconds (0 disables)
//	-log string log level
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "30s" or integer
// nanoseconds:
//
//	{
//	  "server_url": "https://sx.example.com",
//	  "db_path": "/home/me/.sxclient.db",
//	  "variant": "owner",
//	  "export_dir": "/home/me/Downloads",
//	  "listen_addr": "127.0.0.1:8090",
//	  "request_timeout": "30s",
//	  "log_level": "debug"
//	}
//
// The API key is never read from JSON; use the token command or SX_API_KEY.
package config
