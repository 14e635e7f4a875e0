package refdata

import "testing"

func TestAirportNamesSkipsSeparatorRows(t *testing.T) {
	names := AirportNames(DestinationAirports)

	if _, ok := names["---"]; ok {
		t.Error("separator rows must not appear in the lookup")
	}
	if got := names["VIE"]; got != "Wien – Flughafen Wien-Schwechat" {
		t.Errorf("VIE = %q", got)
	}
}

func TestAllAirportNamesCoversBothTables(t *testing.T) {
	names := AllAirportNames()

	if _, ok := names["FRA"]; !ok {
		t.Error("departure airports missing from the lookup")
	}
	if _, ok := names["TBS"]; !ok {
		t.Error("destination airports missing from the lookup")
	}
}

func TestGermanAirportsHaveUniqueCodes(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range GermanAirports {
		if seen[a.IATA] {
			t.Errorf("duplicate IATA code %s", a.IATA)
		}
		seen[a.IATA] = true
		if len(a.IATA) != 3 {
			t.Errorf("IATA code %q is not three letters", a.IATA)
		}
	}
}
