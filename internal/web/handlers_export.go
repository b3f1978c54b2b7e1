package web

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Habeebu-abbi/fleetwatch/internal/compliance"
)

// handleAPIExport serializes one report table as CSV. The path value names
// the table, e.g. /api/export/customers.csv.
func (s *Server) handleAPIExport(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(r.PathValue("name"), ".csv")
	report := s.reports.BuildReport(r.Context())

	var header []string
	var rows [][]string
	switch name {
	case "schedule":
		t := toTableJSON(report.Schedule)
		header, rows = t.Columns, t.Rows
	case "customers":
		header, rows = groupCSV(report.CustomerVehicles, compliance.ColCustomer, "Total Vehicles")
	case "hubs":
		header, rows = groupCSV(report.HubTrips, compliance.ColHub, "Trip Count")
	case "drivers":
		header, rows = groupCSV(report.DriverTrips, compliance.ColDriver, "Total Trips")
	case "spocs":
		header, rows = groupCSV(report.SpocTrips, compliance.ColSpoc, "Total Trips")
	case "weekly":
		header, rows = pivotCSV(report.Weekly)
	case "today":
		header, rows = summaryCSV(report.TodaySummary)
	case "common-drivers":
		header = []string{compliance.ColDriver}
		for _, driver := range report.CommonDrivers {
			rows = append(rows, []string{driver})
		}
	default:
		http.Error(w, "unknown export", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", name))

	cw := csv.NewWriter(w)
	_ = cw.Write(header)
	_ = cw.WriteAll(rows)
	cw.Flush()
}

func groupCSV(groups []compliance.GroupRow, keyHeader, valueHeader string) ([]string, [][]string) {
	header := []string{keyHeader, valueHeader}
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, append(append([]string(nil), g.Key...), strconv.FormatFloat(g.Value, 'f', -1, 64)))
	}
	return header, rows
}

func summaryCSV(summary []compliance.SummaryRow) ([]string, [][]string) {
	header := []string{compliance.ColCustomer, compliance.ColDriver, compliance.ColSpoc, "Count"}
	rows := make([][]string, 0, len(summary))
	for _, row := range summary {
		rows = append(rows, []string{row.Customer, row.Driver, row.Spoc, strconv.Itoa(row.Count)})
	}
	return header, rows
}

func pivotCSV(pivot compliance.PivotReport) ([]string, [][]string) {
	header := []string{compliance.ColCustomer, compliance.ColDriver, compliance.ColSpoc}
	for _, d := range pivot.Dates {
		header = append(header, d.String())
	}
	rows := make([][]string, 0, len(pivot.Rows))
	for _, row := range pivot.Rows {
		out := []string{row.Customer, row.Driver, row.Spoc}
		for _, n := range row.Counts {
			out = append(out, strconv.Itoa(n))
		}
		rows = append(rows, out)
	}
	return header, rows
}
