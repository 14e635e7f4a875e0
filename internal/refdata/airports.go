// Package refdata holds the static airport and airline reference tables.
package refdata

// Airport is one selectable airport. Separator rows carry only a name and
// the pseudo code "---" for visual grouping in dropdowns.
type Airport struct {
	City string `json:"city,omitempty"`
	Name string `json:"name"`
	IATA string `json:"iata"`
}

// GermanAirports lists the selectable departure airports.
var GermanAirports = []Airport{
	{City: "Berlin", Name: "Flughafen Berlin Brandenburg \"Willy Brandt\"", IATA: "BER"},
	{City: "Bremen", Name: "Bremen Airport Hans Koschnick", IATA: "BRE"},
	{City: "Dortmund", Name: "Dortmund Airport 21", IATA: "DTM"},
	{City: "Dresden", Name: "Flughafen Dresden International", IATA: "DRS"},
	{City: "Düsseldorf", Name: "Düsseldorf Airport", IATA: "DUS"},
	{City: "Erfurt", Name: "Flughafen Erfurt-Weimar", IATA: "ERF"},
	{City: "Frankfurt", Name: "Flughafen Frankfurt am Main", IATA: "FRA"},
	{City: "Frankfurt", Name: "Flughafen Frankfurt-Hahn", IATA: "HHN"},
	{City: "Friedrichshafen", Name: "Bodensee-Airport Friedrichshafen", IATA: "FDH"},
	{City: "Hamburg", Name: "Hamburg Airport Helmut Schmidt", IATA: "HAM"},
	{City: "Hannover", Name: "Hannover Airport", IATA: "HAJ"},
	{City: "Karlsruhe", Name: "Flughafen Karlsruhe/Baden-Baden", IATA: "FKB"},
	{City: "Köln/Bonn", Name: "Köln Bonn Airport \"Konrad Adenauer\"", IATA: "CGN"},
	{City: "Leipzig/Halle", Name: "Flughafen Leipzig/Halle", IATA: "LEJ"},
	{City: "Memmingen", Name: "Memmingen Airport", IATA: "FMM"},
	{City: "München", Name: "Flughafen München \"Franz Josef Strauß\"", IATA: "MUC"},
	{City: "Münster/Osnabrück", Name: "Flughafen Münster/Osnabrück", IATA: "FMO"},
	{City: "Nürnberg", Name: "Albrecht Dürer Airport Nürnberg", IATA: "NUE"},
	{City: "Paderborn/Lippstadt", Name: "Flughafen Paderborn/Lippstadt", IATA: "PAD"},
	{City: "Rostock", Name: "Flughafen Rostock-Laage", IATA: "RLG"},
	{City: "Saarbrücken", Name: "Flughafen Saarbrücken", IATA: "SCN"},
	{City: "Stuttgart", Name: "Flughafen Stuttgart", IATA: "STR"},
	{City: "Weeze", Name: "Airport Weeze", IATA: "NRN"},
}

// DestinationAirports lists the selectable destination airports,
// grouped by Schengen membership.
var DestinationAirports = []Airport{
	{IATA: "---", Name: "Schengen-Raum"},
	{City: "Wien", Name: "Flughafen Wien-Schwechat", IATA: "VIE"},
	{City: "Paris", Name: "Flughafen Paris-Charles-de-Gaulle", IATA: "CDG"},
	{City: "Madrid", Name: "Flughafen Adolfo Suárez Madrid-Barajas", IATA: "MAD"},
	{IATA: "---", Name: "Nicht-Schengen-Raum"},
	{City: "Tiflis", Name: "Internationaler Flughafen Tiflis", IATA: "TBS"},
	{City: "Skopje", Name: "Internationaler Flughafen Skopje", IATA: "SKP"},
	{City: "Tirana", Name: "Flughafen Tirana Nënë Tereza", IATA: "TIA"},
	{City: "Belgrad", Name: "Flughafen Belgrad Nikola Tesla", IATA: "BEG"},
	{City: "Pristina", Name: "Flughafen Pristina", IATA: "PRN"},
	{City: "Bălți", Name: "Internationaler Flughafen Bălți-Leadoveni", IATA: "RMO"},
	{City: "Sarajevo", Name: "Flughafen Sarajevo", IATA: "SJJ"},
	{City: "Jerewan", Name: "Internationaler Flughafen Swartnoz", IATA: "EVN"},
	{City: "Sofia", Name: "Flughafen Sofia", IATA: "SOF"},
	{City: "Moskau", Name: "Sheremetyevo International Airport", IATA: "SVO"},
	{City: "Podgorica", Name: "Flughafen Podgorica", IATA: "TGD"},
}

// AirlineNames maps common airline IATA codes to display names.
var AirlineNames = map[string]string{
	"LH": "Lufthansa",
	"EW": "Eurowings",
	"DE": "Condor",
	"FR": "Ryanair",
	"U2": "EasyJet",
	"A3": "Aegean Airlines",
	"AF": "Air France",
	"OS": "Austrian Airlines",
	"IB": "Iberia",
	"KL": "KLM Royal Dutch Airlines",
	"LX": "Swiss International Air Lines",
	"SN": "Brussels Airlines",
	"TP": "TAP Air Portugal",
	"TK": "Turkish Airlines",
	"W6": "Wizz Air",
	"JU": "Air Serbia",
	"A9": "Georgian Airways",
	"SU": "Aeroflot",
}

// AirportNames builds the IATA -> "City – Full Name" lookup used for
// enrichment. Separator rows without a city are skipped.
func AirportNames(lists ...[]Airport) map[string]string {
	names := make(map[string]string)
	for _, list := range lists {
		for _, a := range list {
			if a.City == "" {
				continue
			}
			names[a.IATA] = a.City + " – " + a.Name
		}
	}
	return names
}

// AllAirportNames returns the lookup over both departure and destination tables.
func AllAirportNames() map[string]string {
	return AirportNames(GermanAirports, DestinationAirports)
}
