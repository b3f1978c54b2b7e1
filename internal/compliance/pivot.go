package compliance

import (
	"sort"

	"github.com/Habeebu-abbi/fleetwatch/internal/table"
)

// PivotRow is one (Customer, Driver, Spoc) row of a date pivot. Counts is
// parallel to the report's Dates, zero-filled for dates with no trips.
type PivotRow struct {
	Customer string
	Driver   string
	Spoc     string
	Counts   []int
}

// PivotReport is a pivot of trip counts over a date window: one column per
// date, one row per key tuple, plus a Grand Total row of column sums.
type PivotReport struct {
	Dates []table.Date
	Rows  []PivotRow
}

// Pivot builds the date pivot of t over the given window. Dates keep the
// order they are supplied in; rows are ordered ascending by key tuple. Rows
// whose scheduled date is null or outside the window are excluded. An empty
// filtered input yields a report with the window dates and no rows; missing
// required columns yield no rows as well.
func Pivot(t *table.Table, window []table.Date) PivotReport {
	report := PivotReport{Dates: window}
	if !t.HasColumns(ColCustomer, ColDriver, ColSpoc, ColScheduledAt) {
		return report
	}

	dateIdx := make(map[table.Date]int, len(window))
	for i, d := range window {
		dateIdx[d] = i
	}

	groups := make(map[string]*PivotRow)
	for i := 0; i < t.Len(); i++ {
		d, ok := t.At(ColScheduledAt, i).Date()
		if !ok {
			continue
		}
		col, ok := dateIdx[d]
		if !ok {
			continue
		}
		tuple := []string{
			keyLabel(t.At(ColCustomer, i)),
			keyLabel(t.At(ColDriver, i)),
			keyLabel(t.At(ColSpoc, i)),
		}
		id := joinKey(tuple)
		g, ok := groups[id]
		if !ok {
			g = &PivotRow{Customer: tuple[0], Driver: tuple[1], Spoc: tuple[2], Counts: make([]int, len(window))}
			groups[id] = g
		}
		g.Counts[col]++
	}
	if len(groups) == 0 {
		return report
	}

	rows := make([]PivotRow, 0, len(groups)+1)
	for _, g := range groups {
		rows = append(rows, *g)
	}
	sort.Slice(rows, func(a, b int) bool {
		return lessTuple(
			[]string{rows[a].Customer, rows[a].Driver, rows[a].Spoc},
			[]string{rows[b].Customer, rows[b].Driver, rows[b].Spoc},
		)
	})

	totals := PivotRow{Customer: GrandTotalLabel, Counts: make([]int, len(window))}
	for _, row := range rows {
		for i, n := range row.Counts {
			totals.Counts[i] += n
		}
	}
	report.Rows = append(rows, totals)
	return report
}
