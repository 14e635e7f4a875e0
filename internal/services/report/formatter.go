// Package report formats search results for export: CSV downloads and
// static HTML availability reports.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"os"

	"github.com/kleinski/full-planes/internal/models"
)

// csvHeader matches the columns of the original export.
var csvHeader = []string{
	"Datum", "Abflug", "Ankunft", "Von", "Nach", "Dauer",
	"Fluggesellschaft", "Flugnr.", "Freie Plaetze",
}

// FormatCSV renders enriched offers as a CSV document.
func FormatCSV(offers []models.EnrichedFlightOffer) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, o := range offers {
		row := []string{
			o.Date,
			o.DepartureTime,
			o.ArrivalTime,
			o.OriginFullName,
			o.DestinationFullName,
			o.Duration,
			o.AirlineName,
			o.FlightNumber,
			fmt.Sprintf("%d", o.SeatsRemaining),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}

var reportTemplate = template.Must(template.New("report").Parse(reportHTML))

// RenderHTML renders a scan report as a standalone sortable HTML page.
func RenderHTML(r *models.ScanReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, r); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteHTML renders the report and writes it to path.
func WriteHTML(r *models.ScanReport, path string) error {
	data, err := RenderHTML(r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

const reportHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Flight Availability Report</title>
    <style>
        body { font-family: sans-serif; margin: 2em; background-color: #f4f4f9; }
        h1 { color: #333; }
        table { width: 100%; border-collapse: collapse; box-shadow: 0 2px 5px rgba(0,0,0,0.1); }
        th, td { padding: 12px; border: 1px solid #ddd; text-align: left; white-space: nowrap; }
        thead { background-color: #007bff; color: white; position: sticky; top: 0; }
        thead th { cursor: pointer; user-select: none; }
        thead th:hover { background-color: #0056b3; }
        tbody tr:nth-child(even) { background-color: #f2f2f2; }
        tbody tr:hover { background-color: #ddd; }
        .th-sort-asc::after, .th-sort-desc::after { content: ''; display: inline-block; margin-left: 0.5em; border: 4px solid transparent; }
        .th-sort-asc::after { border-bottom-color: white; }
        .th-sort-desc::after { border-top-color: white; }
        .meta { color: #666; }
    </style>
</head>
<body>
    <h1>Flight Availability Report</h1>
    <p class="meta">Generated {{.GeneratedAt.Format "2006-01-02 15:04"}} &mdash; {{.Queried}} queries, {{.Failed}} failed.</p>
    <table>
        <thead>
            <tr>
                <th>Date</th>
                <th>Departure</th>
                <th>Arrival</th>
                <th>From</th>
                <th>To</th>
                <th>Duration</th>
                <th>Flight No.</th>
                <th>Available Seats</th>
                <th>Price</th>
            </tr>
        </thead>
        <tbody>
{{- if not .Offers}}
            <tr><td colspan="9" style="text-align:center;">No flights found for the specified criteria.</td></tr>
{{- end}}
{{- range .Offers}}
            <tr>
                <td>{{.Date}}</td>
                <td>{{.DepartureTime}}</td>
                <td>{{.ArrivalTime}}</td>
                <td>{{.Origin}}</td>
                <td>{{.Destination}}</td>
                <td>{{.Duration}}</td>
                <td>{{.FlightNumber}}</td>
                <td>{{.SeatsRemaining}}</td>
                <td>{{.Price}}</td>
            </tr>
{{- end}}
        </tbody>
    </table>
    <script>
        function sortTableByColumn(table, column, asc = true) {
            const dirModifier = asc ? 1 : -1;
            const tBody = table.tBodies[0];
            const rows = Array.from(tBody.querySelectorAll("tr"));

            const sortedRows = rows.sort((a, b) => {
                const aColText = a.querySelector("td:nth-child(" + (column + 1) + ")").textContent.trim();
                const bColText = b.querySelector("td:nth-child(" + (column + 1) + ")").textContent.trim();

                const aNum = parseFloat(aColText.replace(/[^0-9.-]+/g, ""));
                const bNum = parseFloat(bColText.replace(/[^0-9.-]+/g, ""));

                if (!isNaN(aNum) && !isNaN(bNum)) {
                    return (aNum - bNum) * dirModifier;
                }

                return aColText.localeCompare(bColText) * dirModifier;
            });

            tBody.innerHTML = "";
            tBody.append(...sortedRows);

            table.querySelectorAll("th").forEach(th => th.classList.remove("th-sort-asc", "th-sort-desc"));
            table.querySelector("th:nth-child(" + (column + 1) + ")").classList.toggle("th-sort-asc", asc);
            table.querySelector("th:nth-child(" + (column + 1) + ")").classList.toggle("th-sort-desc", !asc);
        }

        document.querySelectorAll("table thead th").forEach(headerCell => {
            headerCell.addEventListener("click", () => {
                const tableElement = headerCell.closest("table");
                const headerIndex = Array.from(headerCell.parentElement.children).indexOf(headerCell);
                const currentIsAscending = headerCell.classList.contains("th-sort-asc");
                sortTableByColumn(tableElement, headerIndex, !currentIsAscending);
            });
        });
    </script>
</body>
</html>
`
