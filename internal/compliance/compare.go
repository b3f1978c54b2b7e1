package compliance

import (
	"sort"

	"github.com/Habeebu-abbi/fleetwatch/internal/table"
)

// CommonDrivers intersects the driver identifiers of the schedule dataset
// with those of trip rows scheduled on the given date. The result is the set
// of drivers non-compliant both today (schedule) and on the target date
// (trips), ascending and deduplicated. Either table lacking a Driver column,
// or no overlap, yields an empty slice; this never fails. Matching is exact
// and case-sensitive. Null driver cells are skipped on both sides.
func CommonDrivers(schedule, trips *table.Table, on table.Date) []string {
	if !schedule.HasColumn(ColDriver) || !trips.HasColumns(ColDriver, ColScheduledAt) {
		return nil
	}

	scheduled := make(map[string]bool, schedule.Len())
	for i := 0; i < schedule.Len(); i++ {
		c := schedule.At(ColDriver, i)
		if !c.IsNull() {
			scheduled[c.Text()] = true
		}
	}

	common := make(map[string]bool)
	for i := 0; i < trips.Len(); i++ {
		d, ok := trips.At(ColScheduledAt, i).Date()
		if !ok || d != on {
			continue
		}
		c := trips.At(ColDriver, i)
		if c.IsNull() {
			continue
		}
		if driver := c.Text(); scheduled[driver] {
			common[driver] = true
		}
	}
	if len(common) == 0 {
		return nil
	}

	drivers := make([]string, 0, len(common))
	for driver := range common {
		drivers = append(drivers, driver)
	}
	sort.Strings(drivers)
	return drivers
}
