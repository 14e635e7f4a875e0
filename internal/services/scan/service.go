// Package scan sweeps many origin/destination/day combinations for
// nearly fully booked flights.
package scan

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kleinski/full-planes/internal/common"
	"github.com/kleinski/full-planes/internal/interfaces"
	"github.com/kleinski/full-planes/internal/models"
	"github.com/kleinski/full-planes/internal/services/search"
)

// DefaultWorkers bounds concurrent sweep queries. The client's rate
// limiter paces the actual request rate underneath.
const DefaultWorkers = 5

const dateLayout = "2006-01-02"

// Service runs availability sweeps. Unlike the interactive search it
// tolerates individual query failures and reports them as warnings.
type Service struct {
	client  interfaces.FlightClient
	quota   interfaces.QuotaLedger
	logger  *common.Logger
	workers int
	now     func() time.Time
}

// NewService creates a new scan service.
func NewService(client interfaces.FlightClient, quota interfaces.QuotaLedger, logger *common.Logger) *Service {
	return &Service{
		client:  client,
		quota:   quota,
		logger:  logger,
		workers: DefaultWorkers,
		now:     time.Now,
	}
}

// Scan reserves quota for the whole sweep, fetches one token, and queries
// every origin × destination × day combination under the worker pool.
// Offers with more remaining seats than the ceiling are dropped.
func (s *Service) Scan(ctx context.Context, opts models.ScanOptions) (*models.ScanReport, error) {
	if len(opts.Origins) == 0 || len(opts.Destinations) == 0 {
		return nil, fmt.Errorf("at least one origin and one destination are required")
	}
	if opts.Days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", opts.Days)
	}

	start := s.now()
	if opts.StartDate != "" {
		parsed, err := time.Parse(dateLayout, opts.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date %q", opts.StartDate)
		}
		start = parsed
	}

	queries := make([]models.SearchQuery, 0, len(opts.Origins)*len(opts.Destinations)*opts.Days)
	for day := 0; day < opts.Days; day++ {
		date := start.AddDate(0, 0, day).Format(dateLayout)
		for _, origin := range opts.Origins {
			for _, destination := range opts.Destinations {
				queries = append(queries, models.SearchQuery{
					Origin:      origin,
					Destination: destination,
					Date:        date,
				})
			}
		}
	}

	ok, err := s.quota.Reserve(len(queries))
	if err != nil {
		return nil, fmt.Errorf("quota reservation failed: %w", err)
	}
	if !ok {
		return nil, search.ErrQuotaExceeded
	}

	token, err := s.client.Token(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("queries", len(queries)).
		Int("workers", s.workers).
		Msg("Starting availability sweep")

	type result struct {
		idx    int
		offers []models.FlightOffer
		err    error
	}

	jobs := make(chan int)
	results := make(chan result, len(queries))

	var wg sync.WaitGroup
	workers := s.workers
	if workers > len(queries) {
		workers = len(queries)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				offers, err := s.client.SearchOffers(ctx, token, queries[idx])
				results <- result{idx: idx, offers: offers, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for idx := range queries {
			select {
			case <-ctx.Done():
				return
			case jobs <- idx:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	report := &models.ScanReport{
		GeneratedAt: s.now(),
		Options:     opts,
		Queried:     len(queries),
	}

	for res := range results {
		if res.err != nil {
			q := queries[res.idx]
			report.Failed++
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("%s->%s on %s: %v", q.Origin, q.Destination, q.Date, res.err))
			s.logger.Warn().
				Str("origin", q.Origin).
				Str("destination", q.Destination).
				Str("date", q.Date).
				Err(res.err).
				Msg("Sweep query failed")
			continue
		}
		for _, o := range res.offers {
			if opts.SeatCeiling > 0 && o.SeatsRemaining > opts.SeatCeiling {
				continue
			}
			report.Offers = append(report.Offers, o)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("sweep cancelled: %w", err)
	}

	sort.SliceStable(report.Offers, func(i, j int) bool {
		a, b := report.Offers[i], report.Offers[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Origin != b.Origin {
			return a.Origin < b.Origin
		}
		if a.Destination != b.Destination {
			return a.Destination < b.Destination
		}
		return a.DepartureTime < b.DepartureTime
	})

	sort.Strings(report.Warnings)

	s.logger.Info().
		Int("offers", len(report.Offers)).
		Int("failed", report.Failed).
		Msg("Availability sweep completed")

	return report, nil
}

// Ensure Service implements ScanService
var _ interfaces.ScanService = (*Service)(nil)
