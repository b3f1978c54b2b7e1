// Package compliance computes driver app-deployment compliance reports from
// two normalized datasets: the real-time vehicle schedule (who lacks the app
// today) and the month's trip events. All functions are pure over their
// inputs; the Service at the bottom wires them to a dataset loader.
package compliance

import "github.com/Habeebu-abbi/fleetwatch/internal/table"

// Column names as the BI service labels them.
const (
	ColCustomer      = "Customer"
	ColDriver        = "Driver"
	ColHub           = "Hub"
	ColSpoc          = "Spoc"
	ColScheduledAt   = "Scheduled At"
	ColTotalVehicles = "Total Vehicles"
)

// GrandTotalLabel marks the synthetic totals row appended to summary and
// pivot outputs.
const GrandTotalLabel = "Grand Total"

// UnknownLabel stands in for a null grouping key. Rows with missing keys are
// kept as their own group rather than dropped.
const UnknownLabel = "(unknown)"

// ScheduleSchema declares the typed columns of the vehicle schedule dataset.
var ScheduleSchema = table.Schema{
	ColTotalVehicles: table.KindNumber,
}

// TripSchema declares the typed columns of the trip events dataset.
var TripSchema = table.Schema{
	ColScheduledAt: table.KindDate,
}
