package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/epeers/varstress/internal/catalog"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	PGURL              string
	Port               string
	CatalogFile        string
	OutputDir          string
	LogLevel           log.Level
	ConfidenceFallback bool
	RunTTL             time.Duration

	// Reference data: the built-in catalogs, overlaid by CatalogFile when set.
	Risk catalog.Config
}

// Load reads configuration from environment variables. A .env file in the
// working directory is read first; variables already set in the shell win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	outputDir := os.Getenv("OUTPUT_DIR")
	if outputDir == "" {
		outputDir = "."
	}

	level := log.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		parsed, err := log.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
		}
		level = parsed
	}

	fallback := false
	if raw := os.Getenv("CONFIDENCE_FALLBACK"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid CONFIDENCE_FALLBACK %q: %w", raw, err)
		}
		fallback = parsed
	}

	runTTL := 24 * time.Hour
	if raw := os.Getenv("RUN_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RUN_TTL %q: %w", raw, err)
		}
		runTTL = parsed
	}

	catalogFile := os.Getenv("CATALOG_FILE")
	risk := catalog.DefaultConfig()
	if catalogFile != "" {
		loaded, err := catalog.LoadFile(catalogFile)
		if err != nil {
			return nil, err
		}
		risk = loaded
	}

	return &Config{
		PGURL:              os.Getenv("PG_URL"),
		Port:               port,
		CatalogFile:        catalogFile,
		OutputDir:          outputDir,
		LogLevel:           level,
		ConfidenceFallback: fallback,
		RunTTL:             runTTL,
		Risk:               risk,
	}, nil
}
