// Package search provides the multi-day flight-availability orchestrator.
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kleinski/full-planes/internal/common"
	"github.com/kleinski/full-planes/internal/interfaces"
	"github.com/kleinski/full-planes/internal/models"
)

const (
	// DefaultWorkers bounds the per-day query fan-out independent of the
	// range size, to respect upstream rate limits.
	DefaultWorkers = 5

	// DefaultMaxSpanDays caps the inclusive search range.
	DefaultMaxSpanDays = 7

	dateLayout = "2006-01-02"
)

// ErrQuotaExceeded is returned when the daily API call budget cannot cover
// the requested range. No network activity has happened when it is returned.
var ErrQuotaExceeded = errors.New("daily API call limit reached")

// ValidationError reports an invalid search request. It is produced before
// any quota or network interaction.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Service orchestrates per-day offer queries under a bounded worker pool.
type Service struct {
	client  interfaces.FlightClient
	quota   interfaces.QuotaLedger
	logger  *common.Logger
	workers int
	maxSpan int

	airportNames map[string]string
	airlineNames map[string]string
}

// ServiceOption configures the service
type ServiceOption func(*Service)

// WithWorkers sets the worker pool size
func WithWorkers(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithMaxSpanDays sets the inclusive date range cap
func WithMaxSpanDays(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.maxSpan = n
		}
	}
}

// NewService creates a new search orchestrator.
func NewService(
	client interfaces.FlightClient,
	quota interfaces.QuotaLedger,
	airportNames map[string]string,
	airlineNames map[string]string,
	logger *common.Logger,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		client:       client,
		quota:        quota,
		logger:       logger,
		workers:      DefaultWorkers,
		maxSpan:      DefaultMaxSpanDays,
		airportNames: airportNames,
		airlineNames: airlineNames,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// validate normalizes and checks the request, returning the parsed range.
func (s *Service) validate(req *models.SearchRequest) (time.Time, time.Time, error) {
	req.Origin = strings.ToUpper(strings.TrimSpace(req.Origin))
	req.Destination = strings.ToUpper(strings.TrimSpace(req.Destination))

	if req.Origin == "" || req.Destination == "" || req.StartDate == "" || req.EndDate == "" {
		return time.Time{}, time.Time{}, &ValidationError{Message: "origin, destination, start date and end date are required"}
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, &ValidationError{Message: fmt.Sprintf("invalid start date %q", req.StartDate)}
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, &ValidationError{Message: fmt.Sprintf("invalid end date %q", req.EndDate)}
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, &ValidationError{Message: "the end date cannot be before the start date"}
	}

	if int(end.Sub(start).Hours()/24) >= s.maxSpan {
		return time.Time{}, time.Time{}, &ValidationError{Message: fmt.Sprintf("the date range cannot exceed %d days", s.maxSpan)}
	}

	if req.MaxSeats < 0 {
		return time.Time{}, time.Time{}, &ValidationError{Message: "max seats must not be negative"}
	}

	return start, end, nil
}

// Run executes one logical search: reserve quota, fetch a token, fan out one
// query per day, merge, filter, sort and enrich. The first query failure
// cancels the remaining queries and fails the whole search; partial
// multi-day results are never returned.
func (s *Service) Run(ctx context.Context, req models.SearchRequest) ([]models.EnrichedFlightOffer, error) {
	start, end, err := s.validate(&req)
	if err != nil {
		return nil, err
	}

	days := int(end.Sub(start).Hours()/24) + 1

	ok, err := s.quota.Reserve(days)
	if err != nil {
		return nil, fmt.Errorf("quota reservation failed: %w", err)
	}
	if !ok {
		return nil, ErrQuotaExceeded
	}

	token, err := s.client.Token(ctx)
	if err != nil {
		return nil, err
	}

	queries := make([]models.SearchQuery, days)
	for i := range queries {
		queries[i] = models.SearchQuery{
			Origin:      req.Origin,
			Destination: req.Destination,
			Date:        start.AddDate(0, 0, i).Format(dateLayout),
		}
	}

	perDay, err := s.fanOut(ctx, token, queries)
	if err != nil {
		return nil, err
	}

	// Concatenate in day order so equal-key offers keep discovery order
	// through the stable sort below.
	var offers []models.FlightOffer
	for _, dayOffers := range perDay {
		offers = append(offers, dayOffers...)
	}

	if req.MaxSeats > 0 {
		kept := offers[:0]
		for _, o := range offers {
			if o.SeatsRemaining < req.MaxSeats {
				kept = append(kept, o)
			}
		}
		offers = kept
	}

	sort.SliceStable(offers, func(i, j int) bool {
		if offers[i].Date != offers[j].Date {
			return offers[i].Date < offers[j].Date
		}
		return offers[i].DepartureTime < offers[j].DepartureTime
	})

	s.logger.Info().
		Str("origin", req.Origin).
		Str("destination", req.Destination).
		Int("days", days).
		Int("offers", len(offers)).
		Msg("Search completed")

	return Enrich(offers, s.airportNames, s.airlineNames), nil
}

// fanOut runs all queries under the bounded worker pool, sharing one token.
// On the first failure the remaining queries are cancelled and all collected
// results are discarded.
func (s *Service) fanOut(ctx context.Context, token string, queries []models.SearchQuery) ([][]models.FlightOffer, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := s.workers
	if workers > len(queries) {
		workers = len(queries)
	}

	perDay := make([][]models.FlightOffer, len(queries))
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				offers, err := s.client.SearchOffers(ctx, token, queries[idx])
				if err != nil {
					fail(err)
					return
				}
				perDay[idx] = offers
			}
		}()
	}

	for idx := range queries {
		select {
		case <-ctx.Done():
		case jobs <- idx:
			continue
		}
		break
	}
	close(jobs)

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return perDay, nil
}

// RemainingQuota reports today's unused upstream call budget.
func (s *Service) RemainingQuota() int {
	return s.quota.Remaining()
}

// Ensure Service implements SearchService
var _ interfaces.SearchService = (*Service)(nil)
