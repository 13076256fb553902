package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/elemental-vibe/internal/llm"
	"github.com/jonathan/elemental-vibe/internal/narrative"
	"github.com/jonathan/elemental-vibe/internal/server"
	"github.com/jonathan/elemental-vibe/internal/server/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort   int
	serveAPIKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: "Start an HTTP server exposing readings, radar charts and narratives. " +
		"Without a Gemini API key the narrative endpoints answer 503 and everything else still works.",
	RunE: runServe,
}

// newServer is replaced in tests
var newServer = server.New

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	tier, opts, err := narrativeOptions(cfg.Variant, cfg.Tier, cfg.MinDuration.Std())
	if err != nil {
		return err
	}
	rateLimit, err := ratelimit.LoadConfig()
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	opts = append(opts, narrative.WithMetrics(narrative.MustNewMetrics(registry)))

	var client llm.Client
	if apiKey := firstNonEmpty(serveAPIKey, cfg.APIKey); apiKey != "" {
		client, err = newClient(ctx, tier, cfg.Model, apiKey)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		logger.Info("Narratives enabled", zap.String("model", client.GetModel(tier)))
	} else {
		logger.Warn("No API key configured, narrative endpoints are disabled")
	}

	srv, err := newServer(server.Config{
		Port:             servePort,
		Client:           client,
		NarrativeOptions: opts,
		Assets:           assetTable(),
		RadarSize:        cfg.RadarSize,
		Registry:         registry,
		RateLimit:        rateLimit,
		Logger:           logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
