package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/sxclient/internal/client/models"
)

// parseFlags populates cfg from the already filtered global flags.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var configPath string
	fs.StringVar(&configPath, "c", "", "path to config file (short)")
	fs.StringVar(&configPath, "config", "", "path to config file")

	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "sx server base URL")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path of the local sqlite store")
	variant := fs.String("v", string(cfg.Variant), "listing variant: owner or public")
	fs.StringVar(&cfg.ExportDir, "o", cfg.ExportDir, "directory export.zip is written to")
	fs.StringVar(&cfg.ListenAddr, "l", cfg.ListenAddr, "listen address of the local dashboard")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout in seconds (0 disables)")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["v"] {
		v, err := models.ParseVariant(*variant)
		if err != nil {
			return err
		}
		cfg.Variant = v
	}
	if set["t"] {
		cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	}

	return nil
}
