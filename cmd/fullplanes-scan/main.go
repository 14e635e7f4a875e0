package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kleinski/full-planes/internal/app"
	"github.com/kleinski/full-planes/internal/models"
	"github.com/kleinski/full-planes/internal/services/report"
)

func main() {
	var (
		configPath   = flag.String("config", os.Getenv("FULLPLANES_CONFIG"), "Path to TOML config file")
		origins      = flag.String("origins", "", "Comma-separated origin IATA codes (default: configured list)")
		destinations = flag.String("destinations", "", "Comma-separated destination IATA codes (default: configured list)")
		days         = flag.Int("days", 0, "Number of days to sweep from the start date (default: configured value)")
		startDate    = flag.String("start", "", "First travel date YYYY-MM-DD (default: today)")
		maxSeats     = flag.Int("max-seats", 0, "Keep only flights with at most this many remaining seats (default: configured value)")
		output       = flag.String("out", "", "Output path for the HTML report (default: configured value)")
	)
	flag.Parse()

	a, err := app.New(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	opts := models.ScanOptions{
		Origins:      a.Config.Scan.Origins,
		Destinations: a.Config.Scan.Destinations,
		Days:         a.Config.Scan.Days,
		StartDate:    *startDate,
		SeatCeiling:  a.Config.Scan.SeatCeiling,
	}
	if *origins != "" {
		opts.Origins = splitCodes(*origins)
	}
	if *destinations != "" {
		opts.Destinations = splitCodes(*destinations)
	}
	if *days > 0 {
		opts.Days = *days
	}
	if *maxSeats > 0 {
		opts.SeatCeiling = *maxSeats
	}

	reportPath := a.Config.Scan.ReportPath
	if *output != "" {
		reportPath = *output
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := a.ScanService.Scan(ctx, opts)
	if err != nil {
		a.Logger.Error().Err(err).Msg("Sweep failed")
		os.Exit(1)
	}

	if err := report.WriteHTML(result, reportPath); err != nil {
		a.Logger.Error().Err(err).Msg("Failed to write report")
		os.Exit(1)
	}

	a.Logger.Info().
		Str("path", reportPath).
		Int("offers", len(result.Offers)).
		Int("failed", result.Failed).
		Msg("Report written")
}

func splitCodes(s string) []string {
	var codes []string
	for _, part := range strings.Split(s, ",") {
		if code := strings.ToUpper(strings.TrimSpace(part)); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
