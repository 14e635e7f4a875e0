// Package interfaces defines the service and client contracts for Full Planes
package interfaces

import (
	"context"

	"github.com/kleinski/full-planes/internal/models"
)

// FlightClient is the upstream flight-offers API boundary. It owns the
// cached bearer credential and performs single-day offer queries.
type FlightClient interface {
	// Token returns a bearer token with at least 60s of validity remaining,
	// refreshing it against the authorization endpoint when needed.
	Token(ctx context.Context) (string, error)

	// SearchOffers runs one non-stop, one-adult offer query. An upstream
	// 400 means "no offers" and yields an empty slice without error.
	SearchOffers(ctx context.Context, token string, query models.SearchQuery) ([]models.FlightOffer, error)
}

// QuotaLedger is the persisted daily call budget shared across requests.
type QuotaLedger interface {
	// Reserve consumes n calls from today's budget. It returns false without
	// mutating anything when the budget would be exceeded, and false with an
	// error when the reservation could not be persisted (fail closed).
	Reserve(n int) (bool, error)

	// Remaining reports today's unused budget without consuming it.
	Remaining() int
}
