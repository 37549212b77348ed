package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"memberdesk/internal/commands"
	"memberdesk/internal/config"
)

func main() {
	configDir, err := config.GetGlobalConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting config directory: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		// Continue with defaults so 'config init' can repair the file
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = &config.Config{ServerURL: config.DefaultServerURL}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
