// Package amadeus provides a client for the Amadeus Flight Offers API
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/kleinski/full-planes/internal/common"
	"github.com/kleinski/full-planes/internal/interfaces"
	"github.com/kleinski/full-planes/internal/models"
)

const (
	DefaultAuthURL   = "https://test.api.amadeus.com/v1/security/oauth2/token"
	DefaultSearchURL = "https://test.api.amadeus.com/v2/shopping/flight-offers"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second

	// defaultTokenLifetime applies when the auth response omits expires_in.
	// Amadeus tokens usually last 1799 seconds.
	defaultTokenLifetime = 1799 * time.Second

	// tokenSafetyMargin is the minimum validity a cached token must still
	// have to be handed out without a refresh.
	tokenSafetyMargin = 60 * time.Second

	// defaultSeats applies when numberOfBookableSeats is absent from a
	// segment: assume plentiful, not zero.
	defaultSeats = 99

	maxAttempts = 3
)

// AuthError indicates missing credentials or a failed token exchange.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("amadeus auth error: %s", e.Message)
}

// APIError indicates a failed offer query. RateLimited is set when all
// attempts were answered with 429.
type APIError struct {
	StatusCode  int
	Message     string
	RateLimited bool
}

func (e *APIError) Error() string {
	if e.RateLimited {
		return fmt.Sprintf("amadeus API rate limit exhausted after %d attempts: %s", maxAttempts, e.Message)
	}
	return fmt.Sprintf("amadeus API error: %s (status: %d)", e.Message, e.StatusCode)
}

// Client implements the FlightClient interface against the Amadeus API.
// It holds the single process-wide credential slot.
type Client struct {
	authURL      string
	searchURL    string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	logger       *common.Logger
	limiter      *rate.Limiter
	backoffBase  time.Duration
	now          func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithAuthURL sets the token exchange endpoint
func WithAuthURL(u string) ClientOption {
	return func(c *Client) {
		c.authURL = u
	}
}

// WithSearchURL sets the flight-offers endpoint
func WithSearchURL(u string) ClientOption {
	return func(c *Client) {
		c.searchURL = u
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the outbound request rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRetryBackoff sets the base delay of the 429 retry backoff.
// The n-th retry waits base << n.
func WithRetryBackoff(base time.Duration) ClientOption {
	return func(c *Client) {
		c.backoffBase = base
	}
}

// NewClient creates a new Amadeus client
func NewClient(clientID, clientSecret string, opts ...ClientOption) *Client {
	c := &Client{
		authURL:      DefaultAuthURL,
		searchURL:    DefaultSearchURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter:     rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		backoffBase: time.Second,
		now:         time.Now,
		logger:      common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Token returns the cached bearer token when it still has more than 60s of
// validity, and performs a client-credentials exchange otherwise.
func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt.Add(-tokenSafetyMargin)) {
		c.logger.Debug().Msg("Using cached Amadeus API token")
		return c.token, nil
	}

	if c.clientID == "" || c.clientSecret == "" {
		return "", &AuthError{Message: "client id and secret are not configured"}
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &AuthError{Message: fmt.Sprintf("failed to create token request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &AuthError{Message: fmt.Sprintf("token exchange failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return "", &AuthError{Message: fmt.Sprintf("token exchange returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", &AuthError{Message: fmt.Sprintf("failed to decode token response: %v", err)}
	}
	if tokenResp.AccessToken == "" {
		return "", &AuthError{Message: "token response contained no access_token"}
	}

	lifetime := defaultTokenLifetime
	if tokenResp.ExpiresIn > 0 {
		lifetime = time.Duration(tokenResp.ExpiresIn) * time.Second
	}

	c.token = tokenResp.AccessToken
	c.expiresAt = c.now().Add(lifetime)

	c.logger.Info().
		Dur("lifetime", lifetime).
		Msg("Obtained and cached new Amadeus API token")

	return c.token, nil
}

// SearchOffers runs one non-stop, one-adult offer query for the given tuple.
// A 400 response means the API found no offers and yields an empty result.
// A 429 is retried up to 3 total attempts with exponential backoff.
func (c *Client) SearchOffers(ctx context.Context, token string, query models.SearchQuery) ([]models.FlightOffer, error) {
	params := url.Values{}
	params.Set("originLocationCode", query.Origin)
	params.Set("destinationLocationCode", query.Destination)
	params.Set("departureDate", query.Date)
	params.Set("adults", "1")
	params.Set("nonStop", "true")

	reqURL := c.searchURL + "?" + params.Encode()

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &APIError{Message: fmt.Sprintf("rate limit wait: %v", err)}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, &APIError{Message: fmt.Sprintf("failed to create request: %v", err)}
		}
		req.Header.Set("Authorization", "Bearer "+token)

		c.logger.Debug().
			Str("origin", query.Origin).
			Str("destination", query.Destination).
			Str("date", query.Date).
			Int("attempt", attempt+1).
			Msg("Amadeus offer query")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, &APIError{Message: fmt.Sprintf("request failed for %s->%s on %s: %v", query.Origin, query.Destination, query.Date, err)}
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			if attempt == maxAttempts-1 {
				c.logger.Warn().
					Str("origin", query.Origin).
					Str("destination", query.Destination).
					Str("date", query.Date).
					Msg("Giving up after repeated rate limiting")
				return nil, &APIError{
					StatusCode:  resp.StatusCode,
					Message:     fmt.Sprintf("%s->%s on %s", query.Origin, query.Destination, query.Date),
					RateLimited: true,
				}
			}

			wait := c.backoffBase << attempt // 1s, 2s
			c.logger.Debug().
				Dur("wait", wait).
				Int("attempt", attempt+1).
				Msg("Rate limit hit, backing off")

			select {
			case <-ctx.Done():
				return nil, &APIError{Message: fmt.Sprintf("search cancelled: %v", ctx.Err())}
			case <-time.After(wait):
			}
			continue
		}

		// The API answers 400 when no offers exist for the query.
		if resp.StatusCode == http.StatusBadRequest {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return []models.FlightOffer{}, nil
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				Message:    fmt.Sprintf("%s->%s on %s: %s", query.Origin, query.Destination, query.Date, strings.TrimSpace(string(body))),
			}
		}

		offers, err := parseOffers(resp.Body, query)
		resp.Body.Close()
		if err != nil {
			return nil, &APIError{Message: fmt.Sprintf("failed to decode offers: %v", err)}
		}
		return offers, nil
	}

	return nil, &APIError{Message: fmt.Sprintf("search failed for %s->%s on %s", query.Origin, query.Destination, query.Date)}
}

// offersResponse mirrors the subset of the flight-offers payload we consume.
type offersResponse struct {
	Data []struct {
		Itineraries []struct {
			Segments []struct {
				Departure struct {
					At string `json:"at"`
				} `json:"departure"`
				Arrival struct {
					At string `json:"at"`
				} `json:"arrival"`
				CarrierCode string `json:"carrierCode"`
				Number      string `json:"number"`
				Duration    string `json:"duration"`
				Seats       *int   `json:"numberOfBookableSeats"`
			} `json:"segments"`
		} `json:"itineraries"`
		Price struct {
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
	} `json:"data"`
}

// parseOffers extracts one FlightOffer per upstream offer, reading the first
// segment of the first itinerary (the non-stop assumption).
func parseOffers(r io.Reader, query models.SearchQuery) ([]models.FlightOffer, error) {
	var resp offersResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, err
	}

	offers := make([]models.FlightOffer, 0, len(resp.Data))
	for _, offer := range resp.Data {
		if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
			continue
		}
		segment := offer.Itineraries[0].Segments[0]

		seats := defaultSeats
		if segment.Seats != nil {
			seats = *segment.Seats
		}

		offers = append(offers, models.FlightOffer{
			Date:           query.Date,
			DepartureTime:  clockTime(segment.Departure.At),
			ArrivalTime:    clockTime(segment.Arrival.At),
			Origin:         query.Origin,
			Destination:    query.Destination,
			Duration:       formatDuration(segment.Duration),
			CarrierCode:    segment.CarrierCode,
			FlightNumber:   segment.CarrierCode + " " + segment.Number,
			SeatsRemaining: seats,
			PriceAmount:    offer.Price.Total,
			PriceCurrency:  offer.Price.Currency,
		})
	}

	return offers, nil
}

// clockTime extracts the time-of-day component of an ISO-8601 timestamp
// such as "2025-06-01T10:30:00".
func clockTime(at string) string {
	if idx := strings.IndexByte(at, 'T'); idx >= 0 {
		return at[idx+1:]
	}
	return at
}

var durationReplacer = strings.NewReplacer("PT", "", "H", "h ", "M", "m")

// formatDuration converts an ISO-8601 duration token ("PT8H30M") into the
// compact display form "8h 30m".
func formatDuration(iso string) string {
	return strings.TrimSpace(durationReplacer.Replace(iso))
}

// Ensure Client implements FlightClient
var _ interfaces.FlightClient = (*Client)(nil)
