package config

import "os"

// envLookup is a test seam for os.LookupEnv.
var envLookup = os.LookupEnv

func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup("SX_BASE_URL"); ok && v != "" {
		cfg.ServerURL = v
	}
	if v, ok := lookup("SX_CLIENT_DB"); ok && v != "" {
		cfg.DBPath = v
	}
	if v, ok := lookup("SX_API_KEY"); ok {
		cfg.APIKey = v
	}
}
