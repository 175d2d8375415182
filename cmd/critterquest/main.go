// Package main is the entry point for CritterQuest.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/critterquest/internal/telemetry"
)

var rootCmd = &cobra.Command{
	Use:   "critterquest",
	Short: "CritterQuest terminal monster battler",
	Long: `CritterQuest is a turn-based monster battling game. Explore a small town,
meet wild critters in the grass, and battle or capture them.`,
	SilenceUsage: true,
}

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_CRITTERQUEST_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	setupOTelEnv()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
// Without an API key nothing is set and telemetry stays off.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_CRITTERQUEST_API_KEY")
	if apiKey == "" {
		return
	}

	dataset := os.Getenv("HONEYCOMB_CRITTERQUEST_DATASET")
	if dataset == "" {
		dataset = "critterquest"
	}

	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	// The .env file may hold an unexpanded variable reference, so the
	// header is built here
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}

// startTelemetry sets up tracing for one command run. The returned function
// flushes and shuts it down; it is safe to call when setup was skipped.
func startTelemetry(ctx context.Context, command string) func() {
	if !telemetry.Enabled() {
		return func() {}
	}

	shutdown, err := telemetry.Setup(ctx, attribute.String("critterquest.command", command))
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Continuing without observability")
		return func() {}
	}

	return func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}
}
