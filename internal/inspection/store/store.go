// Package store is the persistence boundary for inspection records. The
// interface is deliberately narrow so domain logic stays testable against
// the in-memory implementation while production runs on Postgres.
package store

import (
	"context"
	"time"

	"donorcheck/internal/inspection/models"
	dErrors "donorcheck/pkg/domain-errors"
)

// ErrNotFound keeps storage 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "inspection record not found")

// RecentFilter scopes the duplicate window: same form date and inspector,
// newest first, at most Limit rows (0 means the implementation default).
type RecentFilter struct {
	FormDate      time.Time
	InspectorName string
	Limit         int
}

// DefaultRecentLimit bounds the duplicate window when the filter leaves
// Limit unset.
const DefaultRecentLimit = 10

// Store is the record store gateway. Insert and Update either fully succeed
// or fail visibly; no transactional guarantees beyond that are assumed by
// callers.
type Store interface {
	// Insert assigns id, submission time and creation time, then persists
	// the record. The stored record is returned.
	Insert(ctx context.Context, record models.InspectionRecord) (models.InspectionRecord, error)

	// QueryRecent returns the duplicate window for a filter.
	QueryRecent(ctx context.Context, filter RecentFilter) ([]models.InspectionRecord, error)

	// FetchByID returns ErrNotFound when the record is absent.
	FetchByID(ctx context.Context, id string) (models.InspectionRecord, error)

	// Update overwrites the record's display and audit fields. The id,
	// creation time and submission time in the given record are ignored in
	// favor of the stored ones. Returns ErrNotFound when absent.
	Update(ctx context.Context, id string, record models.InspectionRecord) error

	// ListAll returns every record, newest submission first.
	ListAll(ctx context.Context) ([]models.InspectionRecord, error)
}
