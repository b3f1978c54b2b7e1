package compliance

import (
	"time"

	"github.com/Habeebu-abbi/fleetwatch/internal/table"
)

// Today returns the calendar date of the given instant.
func Today(now time.Time) table.Date {
	return table.DateOf(now)
}

// Yesterday returns the day before the given date.
func Yesterday(today table.Date) table.Date {
	return today.AddDays(-1)
}

// LastSevenDays returns the seven dates ending at today, oldest first.
func LastSevenDays(today table.Date) []table.Date {
	window := make([]table.Date, 7)
	for i := 0; i < 7; i++ {
		window[i] = today.AddDays(i - 6)
	}
	return window
}
