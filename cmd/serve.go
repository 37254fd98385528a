package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jarvis0/jarvis/api"
	"github.com/jarvis0/jarvis/internal/app"
	"github.com/jarvis0/jarvis/internal/config"
	"github.com/jarvis0/jarvis/internal/log"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP chat backend",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides configuration)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// A missing .env file is the normal case, not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := log.New(log.Config{})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			logger.Warn("shutdown error", "error", closeErr)
		}
	}()

	addr := cfg.Addr
	if cmd != nil {
		if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
			addr = flagAddr
		}
	}

	printBanner(a, addr)

	server := api.NewServer(a, logger.With("component", "api"))
	if err := server.Run(ctx, addr); err != nil {
		return fmt.Errorf("HTTP server: %w", err)
	}
	return nil
}

// printBanner prints the startup status summary to stdout.
func printBanner(a *app.App, addr string) {
	fmt.Fprintln(os.Stdout, "Starting JARVIS backend")
	fmt.Fprintf(os.Stdout, "  provider:  %s\n", a.Status.Provider)
	if a.Status.EmbedderReady {
		fmt.Fprintf(os.Stdout, "  embedder:  %s\n", a.Status.EmbedderModel)
	} else {
		fmt.Fprintln(os.Stdout, "  embedder:  unavailable")
	}
	if a.Status.VectorDB {
		fmt.Fprintf(os.Stdout, "  vector db: %s\n", a.Status.VectorStore)
	} else {
		fmt.Fprintln(os.Stdout, "  vector db: inactive (keyword search)")
	}
	if a.Status.Demo() {
		fmt.Fprintln(os.Stdout, "  mode:      demo (scripted replies)")
	}
	fmt.Fprintf(os.Stdout, "  listening: %s\n", addr)
}
