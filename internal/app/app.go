// Package app wires configuration, clients and services together.
package app

import (
	"fmt"

	"github.com/kleinski/full-planes/internal/clients/amadeus"
	"github.com/kleinski/full-planes/internal/common"
	"github.com/kleinski/full-planes/internal/interfaces"
	"github.com/kleinski/full-planes/internal/quota"
	"github.com/kleinski/full-planes/internal/refdata"
	"github.com/kleinski/full-planes/internal/services/scan"
	"github.com/kleinski/full-planes/internal/services/search"
)

// App holds the application state and services.
type App struct {
	Config *common.Config
	Logger *common.Logger

	Client        interfaces.FlightClient
	Quota         *quota.Ledger
	SearchService interfaces.SearchService
	ScanService   interfaces.ScanService
}

// New creates the application from configuration. configPath may be empty,
// in which case defaults plus environment overrides apply.
func New(configPath string) (*App, error) {
	var paths []string
	if configPath != "" {
		paths = append(paths, configPath)
	}

	cfg, err := common.LoadConfig(paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(cfg.Logging.Level)

	logger.Info().
		Str("version", common.GetVersion()).
		Str("environment", cfg.Environment).
		Msg("Initializing Full Planes")

	ledger := quota.NewLedger(cfg.Quota.Path, cfg.Quota.DailyLimit, logger)

	client := amadeus.NewClient(
		cfg.Amadeus.ClientID,
		cfg.Amadeus.ClientSecret,
		amadeus.WithAuthURL(cfg.Amadeus.AuthURL),
		amadeus.WithSearchURL(cfg.Amadeus.SearchURL),
		amadeus.WithRateLimit(cfg.Amadeus.RateLimit),
		amadeus.WithTimeout(cfg.Amadeus.GetTimeout()),
		amadeus.WithLogger(logger),
	)

	searchSvc := search.NewService(
		client,
		ledger,
		refdata.AllAirportNames(),
		refdata.AirlineNames,
		logger,
		search.WithWorkers(cfg.Search.Workers),
		search.WithMaxSpanDays(cfg.Search.MaxSpanDays),
	)

	scanSvc := scan.NewService(client, ledger, logger)

	return &App{
		Config:        cfg,
		Logger:        logger,
		Client:        client,
		Quota:         ledger,
		SearchService: searchSvc,
		ScanService:   scanSvc,
	}, nil
}
