package store

import (
	"context"

	"github.com/hyperengineering/lifegrid/internal/types"
)

// Store is the document store behind the planner. Periods are whole-document
// records keyed by period ID: there are no partial updates. Every write of a
// period is a compare-and-set on the revision the document was read at.
type Store interface {
	// GetPeriod returns the period document, or ErrNotFound.
	GetPeriod(ctx context.Context, id string) (*types.Period, error)

	// GetOrCreatePeriod returns the stored document, or a fresh empty one
	// at revision 0 when none exists. Creation is lazy: the empty document
	// is not persisted until SavePeriods writes it.
	GetOrCreatePeriod(ctx context.Context, id string, level types.Level) (*types.Period, error)

	// ListPeriods returns every period document.
	ListPeriods(ctx context.Context) ([]*types.Period, error)

	// SavePeriods writes the given documents in one transaction. A document
	// whose stored revision no longer matches the revision it was read at
	// fails the whole transaction with ErrRevisionConflict. On success each
	// document's revision is advanced in place.
	SavePeriods(ctx context.Context, periods []*types.Period) error

	// GetRecord returns the daily record of a DAY period, or
	// ErrRecordNotFound.
	GetRecord(ctx context.Context, periodID string) (*types.DailyRecord, error)

	// PutRecord upserts the daily record of a DAY period.
	PutRecord(ctx context.Context, record *types.DailyRecord) error

	// ListEvents returns all annual events ordered by month and day.
	ListEvents(ctx context.Context) ([]types.AnnualEvent, error)

	// AddEvent stores a new annual event, assigning its ID.
	AddEvent(ctx context.Context, event types.AnnualEvent) (*types.AnnualEvent, error)

	// DeleteEvent removes an annual event, or returns ErrEventNotFound.
	DeleteEvent(ctx context.Context, id string) error

	// CountPeriods returns the number of stored period documents.
	CountPeriods(ctx context.Context) (int64, error)

	// GenerateSnapshot writes a consistent copy of the database to the
	// snapshot path.
	GenerateSnapshot(ctx context.Context) error

	// GetSnapshotPath returns the path of the latest snapshot file.
	GetSnapshotPath(ctx context.Context) (string, error)

	Close() error
}
