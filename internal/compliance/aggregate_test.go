package compliance

import (
	"reflect"
	"testing"

	"github.com/Habeebu-abbi/fleetwatch/internal/table"
)

func TestCountBy_SingleKey(t *testing.T) {
	trips := tripTable(t, []trip{
		{driver: "A", day: "2024-01-01"},
		{driver: "B", day: "2024-01-01"},
		{driver: "A", day: "2024-01-02"},
	})

	got := CountBy(trips, ColDriver)
	want := []GroupRow{
		{Key: []string{"A"}, Value: 2},
		{Key: []string{"B"}, Value: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCountBy_MissingColumn(t *testing.T) {
	trips := tripTable(t, []trip{{driver: "A", day: "2024-01-01"}})

	if got := CountBy(trips, "Warehouse"); len(got) != 0 {
		t.Errorf("expected empty result for missing column, got %v", got)
	}
}

func TestCountBy_EmptyTable(t *testing.T) {
	if got := CountBy(tripTable(t, nil), ColDriver); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
	if got := CountBy(table.Empty(), ColDriver); len(got) != 0 {
		t.Errorf("expected empty result for empty table, got %v", got)
	}
}

func TestCountBy_NullKeyGroupsAsUnknown(t *testing.T) {
	cells := map[string][]table.Cell{
		ColDriver: {table.StringCell("A"), {}, {}},
	}
	tbl := table.New([]string{ColDriver}, cells)

	got := CountBy(tbl, ColDriver)
	want := []GroupRow{
		{Key: []string{UnknownLabel}, Value: 2},
		{Key: []string{"A"}, Value: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCountBy_GroupCountsSumToRowCount(t *testing.T) {
	trips := tripTable(t, []trip{
		{customer: "Acme", driver: "A", spoc: "S1", day: "2024-01-01"},
		{customer: "Acme", driver: "B", spoc: "S1", day: "2024-01-01"},
		{customer: "Globex", driver: "A", spoc: "S2", day: "2024-01-02"},
		{customer: "Globex", driver: "C", spoc: "S2"},
	})

	total := 0.0
	for _, g := range CountBy(trips, ColCustomer, ColDriver) {
		total += g.Value
	}
	if int(total) != trips.Len() {
		t.Errorf("group counts sum to %v, want %d", total, trips.Len())
	}
}

func TestCountBy_Idempotent(t *testing.T) {
	trips := tripTable(t, []trip{
		{customer: "Globex", driver: "B", day: "2024-01-01"},
		{customer: "Acme", driver: "A", day: "2024-01-02"},
		{customer: "Acme", driver: "A", day: "2024-01-03"},
	})

	first := CountBy(trips, ColCustomer, ColDriver)
	second := CountBy(trips, ColCustomer, ColDriver)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical output across runs, got %v then %v", first, second)
	}
	if first[0].Key[0] != "Acme" {
		t.Errorf("expected ascending key order, got %v first", first[0].Key)
	}
}

func TestSumBy_CustomerVehicles(t *testing.T) {
	schedule := scheduleTable(t,
		[]string{"A", "B", "C"},
		[]string{"Acme", "Globex", "Acme"},
		[]float64{3, 5, 2},
	)

	got := SumBy(schedule, ColTotalVehicles, ColCustomer)
	want := []GroupRow{
		{Key: []string{"Acme"}, Value: 5},
		{Key: []string{"Globex"}, Value: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSumBy_NullValuesContributeZero(t *testing.T) {
	cells := map[string][]table.Cell{
		ColCustomer:      {table.StringCell("Acme"), table.StringCell("Acme")},
		ColTotalVehicles: {table.NumberCell(4), {}},
	}
	tbl := table.New([]string{ColCustomer, ColTotalVehicles}, cells)

	got := SumBy(tbl, ColTotalVehicles, ColCustomer)
	if len(got) != 1 || got[0].Value != 4 {
		t.Errorf("expected single group with value 4, got %v", got)
	}
}

func TestSumBy_MissingSumColumn(t *testing.T) {
	cells := map[string][]table.Cell{ColCustomer: {table.StringCell("Acme")}}
	tbl := table.New([]string{ColCustomer}, cells)

	if got := SumBy(tbl, ColTotalVehicles, ColCustomer); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestWindowSummary_AppendsGrandTotal(t *testing.T) {
	trips := tripTable(t, []trip{
		{customer: "Acme", driver: "A", spoc: "S1", day: "2024-01-02"},
		{customer: "Acme", driver: "A", spoc: "S1", day: "2024-01-02"},
		{customer: "Globex", driver: "B", spoc: "S2", day: "2024-01-02"},
		{customer: "Globex", driver: "B", spoc: "S2", day: "2024-01-09"}, // outside window
		{customer: "Globex", driver: "C", spoc: "S2"},                   // null date
	})

	got := WindowSummary(trips, []table.Date{mkDate(t, "2024-01-02")})
	want := []SummaryRow{
		{Customer: "Acme", Driver: "A", Spoc: "S1", Count: 2},
		{Customer: "Globex", Driver: "B", Spoc: "S2", Count: 1},
		{Customer: GrandTotalLabel, Count: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestWindowSummary_EmptyWindowHasNoTotalRow(t *testing.T) {
	trips := tripTable(t, []trip{
		{customer: "Acme", driver: "A", spoc: "S1", day: "2024-01-02"},
	})

	if got := WindowSummary(trips, []table.Date{mkDate(t, "2024-03-01")}); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestWindowSummary_MissingColumns(t *testing.T) {
	cells := map[string][]table.Cell{ColDriver: {table.StringCell("A")}}
	tbl := table.New([]string{ColDriver}, cells)

	if got := WindowSummary(tbl, []table.Date{mkDate(t, "2024-01-02")}); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
