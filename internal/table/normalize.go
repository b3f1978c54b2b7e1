package table

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// MalformedDatasetError reports a payload that violates the column-mapping
// contract or carries an error reported by the BI service itself.
type MalformedDatasetError struct {
	Reason string
}

func (e *MalformedDatasetError) Error() string {
	return "malformed dataset: " + e.Reason
}

// Timestamp layouts the BI service has been observed to emit.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Normalize turns a raw column mapping (as decoded from JSON) into a Table.
//
// Shorter columns are right-padded with null cells so every column shares the
// maximum length. Columns named in the schema are coerced best-effort: cells
// that fail to parse become null rather than failing the whole dataset.
// Column order in the result is ascending by name, since JSON objects carry
// no order of their own.
//
// It returns a MalformedDatasetError when the payload carries a service-
// reported "error" member or when a column value is not a sequence. An empty
// mapping is a valid empty table.
func Normalize(raw map[string]any, schema Schema) (*Table, error) {
	if errVal, ok := raw["error"]; ok {
		return nil, &MalformedDatasetError{Reason: fmt.Sprintf("service reported error: %v", errVal)}
	}

	cols := make([]string, 0, len(raw))
	seqs := make(map[string][]any, len(raw))
	for name, val := range raw {
		seq, ok := val.([]any)
		if !ok {
			return nil, &MalformedDatasetError{Reason: fmt.Sprintf("column %q is not a sequence", name)}
		}
		cols = append(cols, name)
		seqs[name] = seq
	}
	sort.Strings(cols)

	rows := 0
	for _, seq := range seqs {
		if len(seq) > rows {
			rows = len(seq)
		}
	}

	cells := make(map[string][]Cell, len(cols))
	for _, name := range cols {
		kind := schema[name]
		col := make([]Cell, rows)
		for i, v := range seqs[name] {
			col[i] = coerce(v, kind)
		}
		// trailing cells past the original length stay null
		cells[name] = col
	}

	return &Table{cols: cols, cells: cells, rows: rows}, nil
}

func coerce(v any, kind Kind) Cell {
	if v == nil {
		return Cell{}
	}
	switch kind {
	case KindNumber:
		return coerceNumber(v)
	case KindDate:
		return coerceDate(v)
	default:
		return coerceString(v)
	}
}

func coerceNumber(v any) Cell {
	switch n := v.(type) {
	case float64:
		return NumberCell(n)
	case int:
		return NumberCell(float64(n))
	case int64:
		return NumberCell(float64(n))
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return Cell{}
		}
		return NumberCell(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return Cell{}
		}
		return NumberCell(f)
	default:
		return Cell{}
	}
}

func coerceDate(v any) Cell {
	s, ok := v.(string)
	if !ok {
		return Cell{}
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateCell(DateOf(t))
		}
	}
	return Cell{}
}

func coerceString(v any) Cell {
	switch s := v.(type) {
	case string:
		return StringCell(s)
	case float64:
		return StringCell(strconv.FormatFloat(s, 'f', -1, 64))
	case bool:
		return StringCell(strconv.FormatBool(s))
	case json.Number:
		return StringCell(s.String())
	default:
		return StringCell(fmt.Sprintf("%v", v))
	}
}
