// Command varcalc runs one interactive VaR and stress calculation, writes the
// result tables as CSV and prints a summary.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/epeers/varstress/config"
	"github.com/epeers/varstress/internal/export"
	"github.com/epeers/varstress/internal/input"
	"github.com/epeers/varstress/internal/models"
	"github.com/epeers/varstress/internal/services"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	if err := run(context.Background(), cfg, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	riskSvc, err := services.NewRiskService(cfg.Risk, nil, cfg.ConfidenceFallback)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "--- VaR and Stress Calculation ---")
	collected, err := input.NewCollector(in, out, cfg.Risk, cfg.ConfidenceFallback).Collect()
	if err != nil {
		return fmt.Errorf("failed to read inputs: %w", err)
	}

	ctx, _ = services.NewWarningContext(ctx)
	services.AddWarnings(ctx, collected.Warnings)

	report, err := riskSvc.Run(ctx, 0, &models.RiskRequest{
		NetAssetValue: collected.NetAssetValue,
		HorizonDays:   collected.HorizonDays,
		Confidence:    collected.Confidence.Option,
		Allocations:   collected.Allocations,
	})
	if err != nil {
		return err
	}

	paths, err := export.ExportReport(ctx, cfg.OutputDir, report)
	if err != nil {
		return err
	}
	if err := export.PrintSummary(out, report); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nFiles written: %s and %s\n", paths[0], paths[1])
	return nil
}
