// Package models defines the shared data structures for Full Planes
package models

// SearchQuery identifies one origin/destination/day request against the
// flight-offers API. Immutable; one per calendar day in a search range.
type SearchQuery struct {
	Origin      string
	Destination string
	Date        string // YYYY-MM-DD
}

// SearchRequest carries the caller-supplied parameters of one logical search.
type SearchRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"` // YYYY-MM-DD
	EndDate     string `json:"end_date"`   // YYYY-MM-DD
	MaxSeats    int    `json:"max_seats"`  // 0 = no seat ceiling
}

// FlightOffer is one non-stop offer parsed from an upstream response.
type FlightOffer struct {
	Date           string `json:"date"`
	DepartureTime  string `json:"departure_time"`
	ArrivalTime    string `json:"arrival_time"`
	Origin         string `json:"from"`
	Destination    string `json:"to"`
	Duration       string `json:"duration"`
	CarrierCode    string `json:"carrier_code"`
	FlightNumber   string `json:"flight"`
	SeatsRemaining int    `json:"seats"`
	PriceAmount    string `json:"price_amount"`
	PriceCurrency  string `json:"price_currency"`
}

// Price returns the display form "123.45 EUR".
func (o FlightOffer) Price() string {
	if o.PriceAmount == "" {
		return ""
	}
	return o.PriceAmount + " " + o.PriceCurrency
}

// EnrichedFlightOffer is a FlightOffer joined with reference data for display.
type EnrichedFlightOffer struct {
	FlightOffer
	OriginFullName      string `json:"from_full"`
	DestinationFullName string `json:"to_full"`
	AirlineName         string `json:"airline_name"`
}
