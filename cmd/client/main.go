package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/sxclient/internal/buildinfo"
	"github.com/dmitrijs2005/sxclient/internal/client/cli"
	"github.com/dmitrijs2005/sxclient/internal/client/client"
	"github.com/dmitrijs2005/sxclient/internal/client/config"
	"github.com/dmitrijs2005/sxclient/internal/client/services"
	"github.com/dmitrijs2005/sxclient/internal/client/storage"
	"github.com/dmitrijs2005/sxclient/internal/client/view"
	"github.com/dmitrijs2005/sxclient/internal/client/web"
	"github.com/dmitrijs2005/sxclient/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, rest, err := config.LoadConfig(args)
	if err != nil {
		return err
	}

	log := logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	if logging.ParseLevel(cfg.LogLevel) > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	tokens := services.NewTokenService(db)
	if seeded, err := tokens.Seed(ctx, cfg.APIKey); err != nil {
		return fmt.Errorf("seed token: %w", err)
	} else if seeded {
		log.Info(ctx, "token taken from environment")
	}

	api := client.NewHTTPClient(cfg.ServerURL, tokens, cfg.RequestTimeout, log)
	dash := services.NewDashboardService(api, tokens, view.GridOptions{
		Variant: cfg.Variant,
		BaseURL: cfg.ServerURL,
	}, log)

	router := web.NewRouter(web.NewHandler(dash, log), cfg.ListenAddr, log)
	serve := func(ctx context.Context) error {
		return web.Serve(ctx, cfg.ListenAddr, router, log)
	}

	if len(rest) == 0 {
		buildinfo.PrintBuildData(os.Stdout)
	}

	app := cli.NewApp(cfg, dash, serve, os.Stdin, os.Stdout)
	return app.Run(ctx, rest)
}
