package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/CSCSoftware/woohoo/config"
	mcpServer "github.com/CSCSoftware/woohoo/mcp"
	"github.com/CSCSoftware/woohoo/woo"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to the store configuration file")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error")
	flag.Parse()

	// All non-MCP output goes to stderr; stdout carries the protocol
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(*logLevel),
	}))

	// A bad config is fatal; the server never starts with broken credentials
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	client, err := woo.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create WooCommerce client: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle OS signals for clean shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		fmt.Fprintln(os.Stderr, "Shutting down...")
		cancel()
	}()

	logger.Info("woohoo - WooCommerce MCP server", "store", cfg.StoreURL, "api_version", cfg.APIVersion)

	// Create and run MCP server (blocks on stdin/stdout)
	server := mcpServer.NewServer(client, logger)
	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
		os.Exit(1)
	}
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
