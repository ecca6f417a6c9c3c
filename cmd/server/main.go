package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/Fodders-Dev/RadioAtlas/config"
	"github.com/Fodders-Dev/RadioAtlas/internal/engine"
	"github.com/Fodders-Dev/RadioAtlas/internal/engine/bandcamp"
	"github.com/Fodders-Dev/RadioAtlas/internal/engine/direct"
	"github.com/Fodders-Dev/RadioAtlas/internal/engine/soundcloud"
	"github.com/Fodders-Dev/RadioAtlas/internal/engine/youtube"
	"github.com/Fodders-Dev/RadioAtlas/internal/extractor"
	"github.com/Fodders-Dev/RadioAtlas/internal/fetcher"
	"github.com/Fodders-Dev/RadioAtlas/internal/server"
)

func main() {
	port := flag.String("port", "", "Server port (overrides config and PORT env)")
	configPath := flag.String("config", "./config/config.yaml", "Path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)}))
	slog.SetDefault(logger)

	// One-time engine wiring: fetcher and per-site services. The
	// YouTube service is registered only so its identity can be
	// recognized and refused.
	client := fetcher.New()
	eng := engine.New(
		youtube.New(),
		soundcloud.New(client, cfg.SoundCloud.ClientID),
		bandcamp.New(client),
		direct.New(client),
	)
	ex := extractor.New(eng, youtube.ServiceID)

	srv := server.New(cfg, ex)

	if *port == "" {
		*port = cfg.Server.Port
	}

	slog.Info("Starting extractor server", "port", *port)
	if err := srv.Start(*port); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
