package compliance

import (
	"sort"

	"github.com/Habeebu-abbi/fleetwatch/internal/table"
)

// GroupRow is one group in an aggregate: the key tuple and its count or sum.
type GroupRow struct {
	Key   []string
	Value float64
}

// CountBy groups t by the given key columns and counts the rows in each
// group. Rows are ordered ascending by key tuple. A missing key column
// yields an empty result, not an error; a null key component is grouped
// under UnknownLabel.
func CountBy(t *table.Table, keys ...string) []GroupRow {
	return groupBy(t, "", keys)
}

// SumBy groups t by the given key columns and sums the named numeric column
// in each group. Null cells in the summed column contribute zero. Ordering
// and missing-column behavior match CountBy.
func SumBy(t *table.Table, sumCol string, keys ...string) []GroupRow {
	if !t.HasColumn(sumCol) {
		return nil
	}
	return groupBy(t, sumCol, keys)
}

func groupBy(t *table.Table, sumCol string, keys []string) []GroupRow {
	if len(keys) == 0 || !t.HasColumns(keys...) {
		return nil
	}

	type group struct {
		key   []string
		value float64
	}
	groups := make(map[string]*group)
	for i := 0; i < t.Len(); i++ {
		tuple := make([]string, len(keys))
		for j, k := range keys {
			tuple[j] = keyLabel(t.At(k, i))
		}
		id := joinKey(tuple)
		g, ok := groups[id]
		if !ok {
			g = &group{key: tuple}
			groups[id] = g
		}
		if sumCol == "" {
			g.value++
		} else if n, ok := t.At(sumCol, i).Number(); ok {
			g.value += n
		}
	}

	rows := make([]GroupRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, GroupRow{Key: g.key, Value: g.value})
	}
	sort.Slice(rows, func(a, b int) bool {
		return lessTuple(rows[a].Key, rows[b].Key)
	})
	return rows
}

// SummaryRow is one (Customer, Driver, Spoc) group in a date-windowed count.
type SummaryRow struct {
	Customer string
	Driver   string
	Spoc     string
	Count    int
}

// WindowSummary counts trip rows per (Customer, Driver, Spoc) restricted to
// rows whose scheduled date falls in the given window, and appends a Grand
// Total row with the overall count. Rows with a null or unparsable date are
// excluded. An empty filtered input yields an empty slice with no total row;
// missing required columns likewise yield an empty slice.
func WindowSummary(t *table.Table, window []table.Date) []SummaryRow {
	if !t.HasColumns(ColCustomer, ColDriver, ColSpoc, ColScheduledAt) {
		return nil
	}

	inWindow := dateSet(window)
	groups := make(map[string]*SummaryRow)
	for i := 0; i < t.Len(); i++ {
		d, ok := t.At(ColScheduledAt, i).Date()
		if !ok || !inWindow[d] {
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
			g = &SummaryRow{Customer: tuple[0], Driver: tuple[1], Spoc: tuple[2]}
			groups[id] = g
		}
		g.Count++
	}
	if len(groups) == 0 {
		return nil
	}

	rows := make([]SummaryRow, 0, len(groups)+1)
	total := 0
	for _, g := range groups {
		rows = append(rows, *g)
		total += g.Count
	}
	sort.Slice(rows, func(a, b int) bool {
		return lessTuple(
			[]string{rows[a].Customer, rows[a].Driver, rows[a].Spoc},
			[]string{rows[b].Customer, rows[b].Driver, rows[b].Spoc},
		)
	})
	rows = append(rows, SummaryRow{Customer: GrandTotalLabel, Count: total})
	return rows
}

func keyLabel(c table.Cell) string {
	if c.IsNull() {
		return UnknownLabel
	}
	return c.Text()
}

func dateSet(window []table.Date) map[table.Date]bool {
	set := make(map[table.Date]bool, len(window))
	for _, d := range window {
		set[d] = true
	}
	return set
}

// joinKey builds a map key from a tuple. The unit separator cannot appear in
// identifier data coming off the wire.
func joinKey(tuple []string) string {
	id := ""
	for i, part := range tuple {
		if i > 0 {
			id += "\x1f"
		}
		id += part
	}
	return id
}

func lessTuple(a, b []string) bool {
	for i := range a {
		if i >= len(b) {
			return false
		}
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
