package server

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kleinski/full-planes/internal/models"
	"github.com/kleinski/full-planes/internal/refdata"
	"github.com/kleinski/full-planes/internal/services/report"
)

// indexData feeds the search form template.
type indexData struct {
	Error          string
	Airports       []refdata.Airport
	Destinations   []refdata.Airport
	Search         models.SearchRequest
	RemainingQuota int
}

// resultsData feeds the results page template.
type resultsData struct {
	Flights         []models.EnrichedFlightOffer
	Request         models.SearchRequest
	OriginFull      string
	DestinationFull string
	ExportID        string
}

// handleIndex renders the search form, pre-filled from query parameters.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	today := time.Now().Format("2006-01-02")
	q := r.URL.Query()

	req := models.SearchRequest{
		Origin:      q.Get("origin"),
		Destination: q.Get("destination"),
		StartDate:   q.Get("start_date"),
		EndDate:     q.Get("end_date"),
	}
	if req.StartDate == "" {
		req.StartDate = today
	}
	if req.EndDate == "" {
		req.EndDate = today
	}
	if ms := q.Get("max_seats"); ms != "" {
		if n, err := strconv.Atoi(ms); err == nil && n > 0 {
			req.MaxSeats = n
		}
	}

	s.renderPage(w, http.StatusOK, indexTemplate, indexData{
		Error:          q.Get("error"),
		Airports:       refdata.GermanAirports,
		Destinations:   refdata.DestinationAirports,
		Search:         req,
		RemainingQuota: s.app.SearchService.RemainingQuota(),
	})
}

// handleSearchPage processes the form, runs the search and renders results.
func (s *Server) handleSearchPage(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "Invalid form data.", nil)
		return
	}

	req := models.SearchRequest{
		Origin:      r.PostFormValue("origin"),
		Destination: r.PostFormValue("destination"),
		StartDate:   r.PostFormValue("start_date"),
		EndDate:     r.PostFormValue("end_date"),
	}
	if ms := r.PostFormValue("max_seats"); ms != "" {
		n, err := strconv.Atoi(ms)
		if err != nil || n < 0 {
			s.redirectWithError(w, r, "Max seats must be a number.", &req)
			return
		}
		req.MaxSeats = n
	}

	flights, err := s.app.SearchService.Run(r.Context(), req)
	if err != nil {
		status, _ := statusForError(err)
		if status == http.StatusBadRequest || status == http.StatusTooManyRequests {
			s.redirectWithError(w, r, err.Error(), &req)
			return
		}
		s.logger.Error().Err(err).Msg("Search failed")
		s.renderPage(w, http.StatusBadGateway, errorTemplate, map[string]string{
			"Message": err.Error(),
		})
		return
	}

	airportNames := refdata.AllAirportNames()
	data := resultsData{
		Flights:         flights,
		Request:         req,
		OriginFull:      lookupName(airportNames, req.Origin),
		DestinationFull: lookupName(airportNames, req.Destination),
		ExportID:        s.results.Put(flights),
	}

	s.renderPage(w, http.StatusOK, resultsTemplate, data)
}

// handleExportCSV streams a stored result set as a CSV download.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id := r.URL.Query().Get("id")
	flights, ok := s.results.Get(id)
	if !ok || len(flights) == 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data, err := report.FormatCSV(flights)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to build CSV export")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=flug-report.csv`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handleSearchAPI runs a search for programmatic callers.
func (s *Server) handleSearchAPI(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	req := models.SearchRequest{
		Origin:      q.Get("origin"),
		Destination: q.Get("destination"),
		StartDate:   q.Get("start_date"),
		EndDate:     q.Get("end_date"),
	}
	if ms := q.Get("max_seats"); ms != "" {
		n, err := strconv.Atoi(ms)
		if err != nil || n < 0 {
			WriteErrorWithCode(w, http.StatusBadRequest, "max_seats must be a non-negative integer", "validation_error")
			return
		}
		req.MaxSeats = n
	}

	flights, err := s.app.SearchService.Run(r.Context(), req)
	if err != nil {
		status, code := statusForError(err)
		WriteErrorWithCode(w, status, err.Error(), code)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(flights),
		"flights": flights,
	})
}

// handleQuota reports today's remaining upstream call budget.
func (s *Server) handleQuota(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{
		"limit":     s.app.Quota.Limit(),
		"remaining": s.app.SearchService.RemainingQuota(),
	})
}

// redirectWithError sends the browser back to the form with an error banner
// and the previous inputs preserved.
func (s *Server) redirectWithError(w http.ResponseWriter, r *http.Request, message string, req *models.SearchRequest) {
	params := url.Values{}
	params.Set("error", message)
	if req != nil {
		params.Set("origin", req.Origin)
		params.Set("destination", req.Destination)
		params.Set("start_date", req.StartDate)
		params.Set("end_date", req.EndDate)
		if req.MaxSeats > 0 {
			params.Set("max_seats", strconv.Itoa(req.MaxSeats))
		}
	}
	http.Redirect(w, r, "/?"+params.Encode(), http.StatusSeeOther)
}

func lookupName(names map[string]string, code string) string {
	if name, ok := names[code]; ok {
		return name
	}
	return code
}
