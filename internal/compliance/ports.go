package compliance

import "context"

// Loader fetches a named dataset from the BI service as a raw column
// mapping. Implementations own transport, auth, and retry concerns; the
// service treats any failure as an empty dataset.
type Loader interface {
	FetchTable(ctx context.Context, queryID int) (map[string]any, error)
}
