package compliance

import (
	"time"

	"github.com/Habeebu-abbi/fleetwatch/internal/table"
)

// Report is the full compliance report rendered by the dashboard. It is
// recomputed from fresh dataset fetches on every render and holds no
// identity of its own.
type Report struct {
	GeneratedAt time.Time

	// Source tables, normalized. Empty when the fetch failed.
	Schedule *table.Table
	Trips    *table.Table

	// Vehicles lacking the app today, summed per customer.
	CustomerVehicles []GroupRow

	// Trip counts for the current month's non-deployed trips.
	HubTrips    []GroupRow
	DriverTrips []GroupRow
	SpocTrips   []GroupRow

	// Last-7-days pivot and today's (Customer, Driver, Spoc) summary.
	Weekly       PivotReport
	TodaySummary []SummaryRow

	// Drivers non-compliant both yesterday and today.
	CommonDrivers []string
}
