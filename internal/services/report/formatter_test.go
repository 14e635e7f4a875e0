package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kleinski/full-planes/internal/models"
)

func sampleOffer() models.EnrichedFlightOffer {
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
			PriceAmount:    "450.00",
			PriceCurrency:  "EUR",
		},
		OriginFullName:      "Frankfurt am Main",
		DestinationFullName: "New York JFK",
		AirlineName:         "Lufthansa",
	}
}

func TestFormatCSVHeaderAndRows(t *testing.T) {
	data, err := FormatCSV([]models.EnrichedFlightOffer{sampleOffer()})
	if err != nil {
		t.Fatalf("FormatCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header plus one row", len(lines))
	}

	wantHeader := "Datum,Abflug,Ankunft,Von,Nach,Dauer,Fluggesellschaft,Flugnr.,Freie Plaetze"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}

	wantRow := "2025-06-01,10:30:00,19:00:00,Frankfurt am Main,New York JFK,8h 30m,Lufthansa,LH 400,4"
	if lines[1] != wantRow {
		t.Errorf("row = %q, want %q", lines[1], wantRow)
	}
}

func TestFormatCSVEmpty(t *testing.T) {
	data, err := FormatCSV(nil)
	if err != nil {
		t.Fatalf("FormatCSV failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Errorf("empty export should contain only the header, got %d lines", len(lines))
	}
}

func TestRenderHTMLContainsOffers(t *testing.T) {
	r := &models.ScanReport{
		GeneratedAt: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		Queried:     10,
		Failed:      1,
		Offers:      []models.FlightOffer{sampleOffer().FlightOffer},
	}

	data, err := RenderHTML(r)
	if err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}
	html := string(data)

	for _, want := range []string{
		"<title>Flight Availability Report</title>",
		"2025-06-01 08:00",
		"10 queries, 1 failed",
		"LH 400",
		"450.00 EUR",
		"8h 30m",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRenderHTMLEmptyReport(t *testing.T) {
	r := &models.ScanReport{GeneratedAt: time.Now()}

	data, err := RenderHTML(r)
	if err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}
	if !strings.Contains(string(data), "No flights found for the specified criteria.") {
		t.Error("empty report should carry the no-flights row")
	}
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	r := &models.ScanReport{GeneratedAt: time.Now()}

	if err := WriteHTML(r, path); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if !strings.Contains(string(data), "<!DOCTYPE html>") {
		t.Error("written report is not an HTML document")
	}
}
