package server

import (
	"html/template"
	"net/http"
)

// renderPage executes a page template, falling back to a plain 500 when the
// template itself fails.
func (s *Server) renderPage(w http.ResponseWriter, statusCode int, tmpl *template.Template, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error().Err(err).Str("template", tmpl.Name()).Msg("Template execution failed")
	}
}

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))
var resultsTemplate = template.Must(template.New("results").Parse(resultsHTML))
var errorTemplate = template.Must(template.New("error").Parse(errorHTML))

const pageStyle = `
        body { font-family: sans-serif; margin: 2em; background-color: #f4f4f9; color: #333; }
        h1 { color: #333; }
        form { background: white; padding: 1.5em; border-radius: 6px; box-shadow: 0 2px 5px rgba(0,0,0,0.1); max-width: 560px; }
        label { display: block; margin-top: 1em; font-weight: bold; }
        select, input { width: 100%; padding: 8px; margin-top: 4px; box-sizing: border-box; }
        button { margin-top: 1.5em; padding: 10px 24px; background-color: #007bff; color: white; border: none; border-radius: 4px; cursor: pointer; font-size: 1em; }
        button:hover { background-color: #0056b3; }
        table { width: 100%; border-collapse: collapse; box-shadow: 0 2px 5px rgba(0,0,0,0.1); background: white; }
        th, td { padding: 12px; border: 1px solid #ddd; text-align: left; white-space: nowrap; }
        thead { background-color: #007bff; color: white; }
        tbody tr:nth-child(even) { background-color: #f2f2f2; }
        tbody tr:hover { background-color: #ddd; }
        .error { background-color: #f8d7da; color: #721c24; padding: 1em; border-radius: 4px; margin-bottom: 1em; max-width: 560px; }
        .meta { color: #666; }
        a.button { display: inline-block; margin-top: 1em; padding: 10px 24px; background-color: #28a745; color: white; text-decoration: none; border-radius: 4px; }
        a.button:hover { background-color: #1e7e34; }
        a.back { color: #007bff; }
`

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Full Planes - Flight Availability Search</title>
    <style>` + pageStyle + `</style>
</head>
<body>
    <h1>Flight Availability Search</h1>
    <p class="meta">Remaining API calls today: {{.RemainingQuota}}</p>
{{- if .Error}}
    <div class="error">{{.Error}}</div>
{{- end}}
    <form method="POST" action="/search">
        <label for="origin">From</label>
        <select name="origin" id="origin" required>
            <option value="">Select airport</option>
{{- range .Airports}}
{{- if eq .IATA "---"}}
            <option disabled>──────────</option>
{{- else}}
            <option value="{{.IATA}}"{{if eq .IATA $.Search.Origin}} selected{{end}}>{{.City}} ({{.IATA}})</option>
{{- end}}
{{- end}}
        </select>

        <label for="destination">To</label>
        <select name="destination" id="destination" required>
            <option value="">Select airport</option>
{{- range .Destinations}}
{{- if eq .IATA "---"}}
            <option disabled>──────────</option>
{{- else}}
            <option value="{{.IATA}}"{{if eq .IATA $.Search.Destination}} selected{{end}}>{{.City}} ({{.IATA}})</option>
{{- end}}
{{- end}}
        </select>

        <label for="start_date">First travel date</label>
        <input type="date" name="start_date" id="start_date" value="{{.Search.StartDate}}" required>

        <label for="end_date">Last travel date</label>
        <input type="date" name="end_date" id="end_date" value="{{.Search.EndDate}}" required>

        <label for="max_seats">Only flights with fewer than ... bookable seats (optional)</label>
        <input type="number" name="max_seats" id="max_seats" min="1" max="99"{{if gt .Search.MaxSeats 0}} value="{{.Search.MaxSeats}}"{{end}}>

        <button type="submit">Search</button>
    </form>
</body>
</html>
`

const resultsHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Search Results - Full Planes</title>
    <style>` + pageStyle + `</style>
</head>
<body>
    <h1>Flights {{.OriginFull}} &rarr; {{.DestinationFull}}</h1>
    <p class="meta">{{.Request.StartDate}} to {{.Request.EndDate}}{{if gt .Request.MaxSeats 0}}, fewer than {{.Request.MaxSeats}} seats{{end}} &mdash; {{len .Flights}} flights</p>
    <p><a class="back" href="/">&larr; New search</a></p>
{{- if .Flights}}
    <table>
        <thead>
            <tr>
                <th>Date</th>
                <th>Departure</th>
                <th>Arrival</th>
                <th>From</th>
                <th>To</th>
                <th>Duration</th>
                <th>Airline</th>
                <th>Flight No.</th>
                <th>Free Seats</th>
                <th>Price</th>
            </tr>
        </thead>
        <tbody>
{{- range .Flights}}
            <tr>
                <td>{{.Date}}</td>
                <td>{{.DepartureTime}}</td>
                <td>{{.ArrivalTime}}</td>
                <td>{{.OriginFullName}}</td>
                <td>{{.DestinationFullName}}</td>
                <td>{{.Duration}}</td>
                <td>{{.AirlineName}}</td>
                <td>{{.FlightNumber}}</td>
                <td>{{.SeatsRemaining}}</td>
                <td>{{.Price}}</td>
            </tr>
{{- end}}
        </tbody>
    </table>
    <a class="button" href="/export/csv?id={{.ExportID}}">Download CSV</a>
{{- else}}
    <p>No flights found for the specified criteria.</p>
{{- end}}
</body>
</html>
`

const errorHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Error - Full Planes</title>
    <style>` + pageStyle + `</style>
</head>
<body>
    <h1>Something went wrong</h1>
    <div class="error">{{.Message}}</div>
    <p><a class="back" href="/">&larr; Back to search</a></p>
</body>
</html>
`
