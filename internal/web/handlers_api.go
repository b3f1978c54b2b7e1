package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/Habeebu-abbi/fleetwatch/internal/compliance"
	"github.com/Habeebu-abbi/fleetwatch/internal/table"
)

// JSON shapes consumed by the dashboard page. Aggregates become chart-ready
// label/value series; tables become column/row grids.

type tableJSON struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type seriesJSON struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type summaryJSON struct {
	Customer string `json:"customer"`
	Driver   string `json:"driver"`
	Spoc     string `json:"spoc"`
	Count    int    `json:"count"`
}

type pivotRowJSON struct {
	Customer string `json:"customer"`
	Driver   string `json:"driver"`
	Spoc     string `json:"spoc"`
	Counts   []int  `json:"counts"`
}

type pivotJSON struct {
	Dates []string       `json:"dates"`
	Rows  []pivotRowJSON `json:"rows"`
}

type reportJSON struct {
	GeneratedAt      string        `json:"generated_at"`
	Schedule         tableJSON     `json:"schedule"`
	CustomerVehicles seriesJSON    `json:"customer_vehicles"`
	HubTrips         seriesJSON    `json:"hub_trips"`
	DriverTrips      seriesJSON    `json:"driver_trips"`
	SpocTrips        seriesJSON    `json:"spoc_trips"`
	Weekly           pivotJSON     `json:"weekly"`
	Today            []summaryJSON `json:"today"`
	CommonDrivers    []string      `json:"common_drivers"`
}

func (s *Server) handleAPIReport(w http.ResponseWriter, r *http.Request) {
	report := s.reports.BuildReport(r.Context())
	writeJSON(w, http.StatusOK, toReportJSON(report))
}

func (s *Server) handleAPIChart(w http.ResponseWriter, r *http.Request) {
	report := s.reports.BuildReport(r.Context())

	var series seriesJSON
	switch r.PathValue("name") {
	case "customers":
		series = toSeries(report.CustomerVehicles)
	case "hubs":
		series = toSeries(report.HubTrips)
	case "drivers":
		series = toSeries(report.DriverTrips)
	case "spocs":
		series = toSeries(report.SpocTrips)
	case "weekly":
		writeJSON(w, http.StatusOK, toPivotJSON(report.Weekly))
		return
	default:
		http.Error(w, "unknown chart", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func toReportJSON(report *compliance.Report) reportJSON {
	return reportJSON{
		GeneratedAt:      report.GeneratedAt.Format(time.RFC3339),
		Schedule:         toTableJSON(report.Schedule),
		CustomerVehicles: toSeries(report.CustomerVehicles),
		HubTrips:         toSeries(report.HubTrips),
		DriverTrips:      toSeries(report.DriverTrips),
		SpocTrips:        toSeries(report.SpocTrips),
		Weekly:           toPivotJSON(report.Weekly),
		Today:            toSummaryJSON(report.TodaySummary),
		CommonDrivers:    emptyIfNil(report.CommonDrivers),
	}
}

func toTableJSON(t *table.Table) tableJSON {
	out := tableJSON{Columns: emptyIfNil(t.Columns()), Rows: [][]string{}}
	for i := 0; i < t.Len(); i++ {
		row := make([]string, len(out.Columns))
		for j, col := range out.Columns {
			row[j] = t.At(col, i).Text()
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func toSeries(rows []compliance.GroupRow) seriesJSON {
	series := seriesJSON{Labels: []string{}, Values: []float64{}}
	for _, row := range rows {
		series.Labels = append(series.Labels, strings.Join(row.Key, " / "))
		series.Values = append(series.Values, row.Value)
	}
	return series
}

func toSummaryJSON(rows []compliance.SummaryRow) []summaryJSON {
	out := make([]summaryJSON, 0, len(rows))
	for _, row := range rows {
		out = append(out, summaryJSON{
			Customer: row.Customer,
			Driver:   row.Driver,
			Spoc:     row.Spoc,
			Count:    row.Count,
		})
	}
	return out
}

func toPivotJSON(report compliance.PivotReport) pivotJSON {
	out := pivotJSON{Dates: []string{}, Rows: []pivotRowJSON{}}
	for _, d := range report.Dates {
		out.Dates = append(out.Dates, d.String())
	}
	for _, row := range report.Rows {
		out.Rows = append(out.Rows, pivotRowJSON{
			Customer: row.Customer,
			Driver:   row.Driver,
			Spoc:     row.Spoc,
			Counts:   row.Counts,
		})
	}
	return out
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
