package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleinski/full-planes/internal/app"
	"github.com/kleinski/full-planes/internal/clients/amadeus"
	"github.com/kleinski/full-planes/internal/common"
	"github.com/kleinski/full-planes/internal/models"
	"github.com/kleinski/full-planes/internal/quota"
	"github.com/kleinski/full-planes/internal/services/search"
)

// stubSearch returns canned flights or a canned error.
type stubSearch struct {
	flights   []models.EnrichedFlightOffer
	err       error
	remaining int
	lastReq   models.SearchRequest
}

func (s *stubSearch) Run(ctx context.Context, req models.SearchRequest) ([]models.EnrichedFlightOffer, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.flights, nil
}

func (s *stubSearch) RemainingQuota() int {
	return s.remaining
}

func enrichedOffer() models.EnrichedFlightOffer {
	return models.EnrichedFlightOffer{
		FlightOffer: models.FlightOffer{
			Date:           "2025-06-01",
			DepartureTime:  "10:30:00",
			ArrivalTime:    "19:00:00",
			Origin:         "FRA",
			Destination:    "JFK",
			Duration:       "8h 30m",
			CarrierCode:    "LH",
			FlightNumber:   "LH 400",
			SeatsRemaining: 4,
		},
		OriginFullName:      "Frankfurt am Main",
		DestinationFullName: "New York JFK",
		AirlineName:         "Lufthansa",
	}
}

func newTestServer(t *testing.T, stub *stubSearch) *Server {
	t.Helper()

	logger := common.NewSilentLogger()
	cfg := common.NewDefaultConfig()

	a := &app.App{
		Config:        cfg,
		Logger:        logger,
		Quota:         quota.NewLedger(filepath.Join(t.TempDir(), "quota.json"), 1000, logger),
		SearchService: stub,
	}

	return NewServer(a)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubSearch{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestVersionEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubSearch{})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "version")
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t, &stubSearch{remaining: 123})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Flight Availability Search")
	assert.Contains(t, body, "Remaining API calls today: 123")
	assert.Contains(t, body, `value="FRA"`)
}

func TestIndexPageShowsErrorBanner(t *testing.T) {
	srv := newTestServer(t, &stubSearch{})

	req := httptest.NewRequest(http.MethodGet, "/?error=Something+failed", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something failed")
}

func TestIndexUnknownPathIs404(t *testing.T) {
	srv := newTestServer(t, &stubSearch{})

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func searchForm() url.Values {
	form := url.Values{}
	form.Set("origin", "FRA")
	form.Set("destination", "JFK")
	form.Set("start_date", "2025-06-01")
	form.Set("end_date", "2025-06-03")
	return form
}

func postForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestSearchPageRendersResults(t *testing.T) {
	stub := &stubSearch{flights: []models.EnrichedFlightOffer{enrichedOffer()}}
	srv := newTestServer(t, stub)

	rec := postForm(srv, "/search", searchForm())

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Lufthansa")
	assert.Contains(t, body, "LH 400")
	assert.Contains(t, body, "/export/csv?id=")
}

func TestSearchPageParsesMaxSeats(t *testing.T) {
	stub := &stubSearch{}
	srv := newTestServer(t, stub)

	form := searchForm()
	form.Set("max_seats", "5")
	rec := postForm(srv, "/search", form)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, stub.lastReq.MaxSeats)
}

func TestSearchPageValidationRedirectsBack(t *testing.T) {
	stub := &stubSearch{err: &search.ValidationError{Message: "the end date cannot be before the start date"}}
	srv := newTestServer(t, stub)

	rec := postForm(srv, "/search", searchForm())

	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/", loc.Path)
	assert.Contains(t, loc.Query().Get("error"), "end date")
	assert.Equal(t, "FRA", loc.Query().Get("origin"))
}

func TestSearchPageQuotaExceededRedirectsBack(t *testing.T) {
	stub := &stubSearch{err: search.ErrQuotaExceeded}
	srv := newTestServer(t, stub)

	rec := postForm(srv, "/search", searchForm())

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "error=")
}

func TestSearchPageUpstreamErrorShowsErrorPage(t *testing.T) {
	stub := &stubSearch{err: &amadeus.APIError{StatusCode: 500, Message: "boom"}}
	srv := newTestServer(t, stub)

	rec := postForm(srv, "/search", searchForm())

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
}

func TestExportCSVRoundTrip(t *testing.T) {
	stub := &stubSearch{flights: []models.EnrichedFlightOffer{enrichedOffer()}}
	srv := newTestServer(t, stub)

	rec := postForm(srv, "/search", searchForm())
	require.Equal(t, http.StatusOK, rec.Code)

	// Pull the export ID out of the rendered page.
	body := rec.Body.String()
	idx := strings.Index(body, "/export/csv?id=")
	require.GreaterOrEqual(t, idx, 0)
	id := body[idx+len("/export/csv?id="):]
	id = id[:strings.IndexByte(id, '"')]

	req := httptest.NewRequest(http.MethodGet, "/export/csv?id="+id, nil)
	csvRec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(csvRec, req)

	require.Equal(t, http.StatusOK, csvRec.Code)
	assert.Equal(t, "text/csv", csvRec.Header().Get("Content-Type"))
	assert.Contains(t, csvRec.Body.String(), "Datum,Abflug,Ankunft")
	assert.Contains(t, csvRec.Body.String(), "LH 400")
}

func TestExportCSVUnknownIDRedirects(t *testing.T) {
	srv := newTestServer(t, &stubSearch{})

	req := httptest.NewRequest(http.MethodGet, "/export/csv?id=unknown", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestSearchAPISuccess(t *testing.T) {
	stub := &stubSearch{flights: []models.EnrichedFlightOffer{enrichedOffer()}}
	srv := newTestServer(t, stub)

	req := httptest.NewRequest(http.MethodGet, "/api/search?origin=FRA&destination=JFK&start_date=2025-06-01&end_date=2025-06-03", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count   int                          `json:"count"`
		Flights []models.EnrichedFlightOffer `json:"flights"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Flights, 1)
	assert.Equal(t, "Lufthansa", body.Flights[0].AirlineName)
}

func TestSearchAPIErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &search.ValidationError{Message: "bad"}, http.StatusBadRequest, "validation_error"},
		{"quota", search.ErrQuotaExceeded, http.StatusTooManyRequests, "quota_exceeded"},
		{"auth", &amadeus.AuthError{Message: "no creds"}, http.StatusBadGateway, "auth_error"},
		{"rate limited", &amadeus.APIError{StatusCode: 429, RateLimited: true}, http.StatusBadGateway, "rate_limit_exhausted"},
		{"upstream", &amadeus.APIError{StatusCode: 500}, http.StatusBadGateway, "upstream_error"},
		{"internal", errors.New("weird"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &stubSearch{err: tt.err})

			req := httptest.NewRequest(http.MethodGet, "/api/search?origin=FRA&destination=JFK&start_date=2025-06-01&end_date=2025-06-01", nil)
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestSearchAPIBadMaxSeats(t *testing.T) {
	srv := newTestServer(t, &stubSearch{})

	req := httptest.NewRequest(http.MethodGet, "/api/search?origin=FRA&destination=JFK&start_date=2025-06-01&end_date=2025-06-01&max_seats=lots", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuotaEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubSearch{remaining: 880})

	req := httptest.NewRequest(http.MethodGet, "/api/quota", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"limit":1000,"remaining":880}`, rec.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &stubSearch{})

	req := httptest.NewRequest(http.MethodDelete, "/search", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := common.NewSilentLogger()
	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(fmt.Errorf("handler blew up"))
	})
	handler := applyMiddleware(panicky, logger)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
