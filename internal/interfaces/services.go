package interfaces

import (
	"context"

	"github.com/kleinski/full-planes/internal/models"
)

// SearchService runs a multi-day flight-availability search.
type SearchService interface {
	// Run expands the request into per-day queries, executes them under a
	// bounded worker pool, and returns the merged, filtered, sorted and
	// enriched offers. The first query failure aborts the whole search.
	Run(ctx context.Context, req models.SearchRequest) ([]models.EnrichedFlightOffer, error)

	// RemainingQuota reports today's unused upstream call budget.
	RemainingQuota() int
}

// ScanService sweeps many origin/destination/day combinations for nearly
// fully booked flights.
type ScanService interface {
	Scan(ctx context.Context, opts models.ScanOptions) (*models.ScanReport, error)
}
