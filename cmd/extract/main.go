// Command extract resolves a single URL and prints the flattened
// extraction result as JSON on stdout. Every failure is folded into
// the error-variant response so the output shape is always the same.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Fodders-Dev/RadioAtlas/config"
	"github.com/Fodders-Dev/RadioAtlas/internal/domain"
	"github.com/Fodders-Dev/RadioAtlas/internal/engine"
	"github.com/Fodders-Dev/RadioAtlas/internal/engine/bandcamp"
	"github.com/Fodders-Dev/RadioAtlas/internal/engine/direct"
	"github.com/Fodders-Dev/RadioAtlas/internal/engine/soundcloud"
	"github.com/Fodders-Dev/RadioAtlas/internal/engine/youtube"
	"github.com/Fodders-Dev/RadioAtlas/internal/extractor"
	"github.com/Fodders-Dev/RadioAtlas/internal/fetcher"
)

func main() {
	configPath := flag.String("config", "./config/config.yaml", "Path to config file")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <url>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	url := flag.Arg(0)
	if url == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	// Keep stdout clean for the JSON result; logs go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)}))
	slog.SetDefault(logger)

	client := fetcher.New()
	eng := engine.New(
		youtube.New(),
		soundcloud.New(client, cfg.SoundCloud.ClientID),
		bandcamp.New(client),
		direct.New(client),
	)
	ex := extractor.New(eng, youtube.ServiceID)

	result, err := ex.Extract(context.Background(), url)
	if err != nil {
		result = domain.ErrorResponse(err.Error())
	}

	out, err := json.Marshal(result)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to encode result:", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
