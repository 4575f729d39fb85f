package analytics

import (
	"hranalytics/internal/platform/querier"
)

// Store executes the analytics queries against Postgres. Aggregation
// happens in aggregate.go, not in SQL, so every query here returns
// raw rows.
type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

var _ StoreAPI = (*Store)(nil)
