package models

import "time"

// ScanOptions configures a booked-flights availability sweep.
type ScanOptions struct {
	Origins      []string
	Destinations []string
	Days         int // days ahead of the start date to cover, inclusive of day 0
	StartDate    string
	SeatCeiling  int // keep offers with SeatsRemaining <= ceiling; 0 keeps everything
}

// ScanReport aggregates the result of one sweep for report rendering.
type ScanReport struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Options     ScanOptions   `json:"options"`
	Queried     int           `json:"queried"`
	Failed      int           `json:"failed"`
	Warnings    []string      `json:"warnings,omitempty"`
	Offers      []FlightOffer `json:"offers"`
}
