package search

import (
	"fmt"

	"github.com/kleinski/full-planes/internal/models"
)

// Enrich joins offers with the airport and airline reference tables.
// Unresolved airport codes fall back to the bare code; unresolved carrier
// codes fall back to a placeholder embedding the code. Pure and
// deterministic; no network or mutable-state access.
func Enrich(offers []models.FlightOffer, airportNames, airlineNames map[string]string) []models.EnrichedFlightOffer {
	enriched := make([]models.EnrichedFlightOffer, len(offers))
	for i, o := range offers {
		enriched[i] = models.EnrichedFlightOffer{
			FlightOffer:         o,
			OriginFullName:      lookupAirport(airportNames, o.Origin),
			DestinationFullName: lookupAirport(airportNames, o.Destination),
			AirlineName:         lookupAirline(airlineNames, o.CarrierCode),
		}
	}
	return enriched
}

func lookupAirport(names map[string]string, code string) string {
	if name, ok := names[code]; ok {
		return name
	}
	return code
}

func lookupAirline(names map[string]string, code string) string {
	if name, ok := names[code]; ok {
		return name
	}
	return fmt.Sprintf("Unknown airline (%s)", code)
}
