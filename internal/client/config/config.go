package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/sxclient/internal/client/models"
	"github.com/dmitrijs2005/sxclient/internal/flagx"
)

// Config holds runtime settings for the sx client.
//
// Fields:
//   - ServerURL: base URL of the sx server, e.g. http://localhost:8080.
//   - DBPath: sqlite file holding the access token.
//   - Variant: "owner" or "public" listing.
//   - ExportDir: directory export.zip is written to.
//   - ListenAddr: address the local dashboard listens on.
//   - RequestTimeout: per-request timeout; zero means none.
//   - LogLevel: debug, info, warn or error.
//   - APIKey: token taken from the environment, used to seed an empty store.
type Config struct {
	ServerURL      string
	DBPath         string
	Variant        models.Variant
	ExportDir      string
	ListenAddr     string
	RequestTimeout time.Duration
	LogLevel       string
	APIKey         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.DBPath = "sxclient.db"
	c.Variant = models.VariantOwner
	c.ExportDir = "."
	c.ListenAddr = "127.0.0.1:8090"
	c.RequestTimeout = 0
	c.LogLevel = "info"
}

// knownFlags lists every global flag, including the config path ones.
var knownFlags = []string{"-s", "-d", "-v", "-o", "-l", "-t", "-log", "-c", "-config"}

// LoadConfig builds a Config from defaults, then the JSON file (if any),
// then the environment, then command-line flags. Later sources win.
// The arguments that are not global flags are returned as the command line.
func LoadConfig(args []string) (*Config, []string, error) {
	flags, rest := flagx.Split(args, knownFlags)

	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, flagx.ConfigPath(flags)); err != nil {
		return nil, nil, fmt.Errorf("config file: %w", err)
	}
	parseEnv(cfg, envLookup)
	if err := parseFlags(cfg, flags); err != nil {
		return nil, nil, fmt.Errorf("flags: %w", err)
	}

	return cfg, rest, nil
}
