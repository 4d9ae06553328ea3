package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/consular-labs/dossier-core/internal/core/ports/driving"
	"github.com/consular-labs/dossier-core/internal/core/services"
)

var version = "dev"

// dossier-core reads one extraction set as JSON, either from the file
// named as the first argument or from stdin, and prints the full analysis
// report as indented JSON.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(getEnv("LOG_LEVEL", "info")),
	}))
	logger.Info("dossier-core starting", "version", version)

	input, err := readInput()
	if err != nil {
		logger.Error("failed to read input", "error", err)
		os.Exit(1)
	}

	var set driving.ExtractionSet
	if err := json.Unmarshal(input, &set); err != nil {
		logger.Error("invalid extraction set", "error", err)
		os.Exit(1)
	}

	svc := services.NewDossierService(
		services.NewPassportService(),
		services.NewClassifierService(),
		services.NewEligibilityService(),
		services.NewCoherenceService(),
		logger,
	)

	report, err := svc.Analyze(set)
	if err != nil {
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	if err := out.Encode(report); err != nil {
		logger.Error("failed to write report", "error", err)
		os.Exit(1)
	}
}

func readInput() ([]byte, error) {
	if len(os.Args) > 1 {
		return os.ReadFile(os.Args[1])
	}
	return io.ReadAll(os.Stdin)
}

func logLevel(value string) slog.Level {
	switch strings.ToLower(value) {
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

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
