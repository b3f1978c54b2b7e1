package compliance

import (
	"reflect"
	"testing"

	"github.com/Habeebu-abbi/fleetwatch/internal/table"
)

func TestCommonDrivers_Intersection(t *testing.T) {
	schedule := scheduleTable(t,
		[]string{"A", "B", "C"},
		[]string{"Acme", "Acme", "Globex"},
		[]float64{1, 1, 1},
	)
	trips := tripTable(t, []trip{
		{driver: "B", day: "2024-01-01"},
		{driver: "B", day: "2024-01-01"}, // duplicate trip, one result entry
		{driver: "C", day: "2024-01-01"},
		{driver: "A", day: "2024-01-02"}, // wrong date
		{driver: "X", day: "2024-01-01"}, // not in schedule
	})

	got := CommonDrivers(schedule, trips, mkDate(t, "2024-01-01"))
	want := []string{"B", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCommonDrivers_CaseSensitive(t *testing.T) {
	schedule := scheduleTable(t, []string{"driver one"}, []string{"Acme"}, []float64{1})
	trips := tripTable(t, []trip{{driver: "Driver One", day: "2024-01-01"}})

	if got := CommonDrivers(schedule, trips, mkDate(t, "2024-01-01")); len(got) != 0 {
		t.Errorf("expected no match across case, got %v", got)
	}
}

func TestCommonDrivers_MissingDriverColumn(t *testing.T) {
	noDrivers := table.New([]string{ColCustomer}, map[string][]table.Cell{
		ColCustomer: {table.StringCell("Acme")},
	})
	trips := tripTable(t, []trip{{driver: "A", day: "2024-01-01"}})

	if got := CommonDrivers(noDrivers, trips, mkDate(t, "2024-01-01")); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
	if got := CommonDrivers(tripTable(t, nil), noDrivers, mkDate(t, "2024-01-01")); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestCommonDrivers_NullDriversSkipped(t *testing.T) {
	schedule := table.New([]string{ColDriver}, map[string][]table.Cell{
		ColDriver: {{}, table.StringCell("A")},
	})
	trips := table.New([]string{ColDriver, ColScheduledAt}, map[string][]table.Cell{
		ColDriver:      {{}, table.StringCell("A")},
		ColScheduledAt: {table.DateCell(mkDate(t, "2024-01-01")), table.DateCell(mkDate(t, "2024-01-01"))},
	})

	got := CommonDrivers(schedule, trips, mkDate(t, "2024-01-01"))
	want := []string{"A"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCommonDrivers_NoOverlap(t *testing.T) {
	schedule := scheduleTable(t, []string{"A"}, []string{"Acme"}, []float64{1})
	trips := tripTable(t, []trip{{driver: "B", day: "2024-01-01"}})

	if got := CommonDrivers(schedule, trips, mkDate(t, "2024-01-01")); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}
