// Package savedsearch defines the persisted named-search entity.
package savedsearch

import (
	"time"

	"github.com/troismondes/gigdex/internal/domain/criterion"
)

// MaxSnapshotPerType caps the denormalized result snapshot stored with a
// search, per sub-collection type.
const MaxSnapshotPerType = 500

// Snapshot is a capped copy of search results at save time, keyed by
// collection type (structures, personnes, ...).
type Snapshot map[string][]map[string]any

// SavedSearch is a persisted named criteria set, optionally with a cached
// result snapshot.
type SavedSearch struct {
	ID          string
	TenantID    string
	UserID      string
	Name        string
	Description string
	Criteria    []criterion.Criterion
	// Results is nil for plain saved searches.
	Results     Snapshot
	WithResults bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Cap truncates every snapshot list to MaxSnapshotPerType entries.
func (s Snapshot) Cap() Snapshot {
	if s == nil {
		return nil
	}
	capped := make(Snapshot, len(s))
	for kind, records := range s {
		if len(records) > MaxSnapshotPerType {
			records = records[:MaxSnapshotPerType]
		}
		capped[kind] = records
	}
	return capped
}
