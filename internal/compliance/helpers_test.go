package compliance

import (
	"testing"
	"time"

	"github.com/Habeebu-abbi/fleetwatch/internal/table"
)

func mkDate(t *testing.T, s string) table.Date {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return table.DateOf(parsed)
}

type trip struct {
	customer string
	driver   string
	spoc     string
	day      string // "" means null date
}

func tripTable(t *testing.T, trips []trip) *table.Table {
	t.Helper()
	cells := map[string][]table.Cell{
		ColCustomer:    {},
		ColDriver:      {},
		ColSpoc:        {},
		ColScheduledAt: {},
	}
	for _, tr := range trips {
		cells[ColCustomer] = append(cells[ColCustomer], table.StringCell(tr.customer))
		cells[ColDriver] = append(cells[ColDriver], table.StringCell(tr.driver))
		cells[ColSpoc] = append(cells[ColSpoc], table.StringCell(tr.spoc))
		if tr.day == "" {
			cells[ColScheduledAt] = append(cells[ColScheduledAt], table.Cell{})
		} else {
			cells[ColScheduledAt] = append(cells[ColScheduledAt], table.DateCell(mkDate(t, tr.day)))
		}
	}
	return table.New([]string{ColCustomer, ColDriver, ColSpoc, ColScheduledAt}, cells)
}

func scheduleTable(t *testing.T, drivers []string, customers []string, vehicles []float64) *table.Table {
	t.Helper()
	cells := map[string][]table.Cell{}
	for _, d := range drivers {
		cells[ColDriver] = append(cells[ColDriver], table.StringCell(d))
	}
	for _, c := range customers {
		cells[ColCustomer] = append(cells[ColCustomer], table.StringCell(c))
	}
	for _, v := range vehicles {
		cells[ColTotalVehicles] = append(cells[ColTotalVehicles], table.NumberCell(v))
	}
	return table.New([]string{ColCustomer, ColDriver, ColTotalVehicles}, cells)
}
