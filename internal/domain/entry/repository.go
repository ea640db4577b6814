package entry

import "context"

// Repository describes entry persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Entry, error)
	GetByID(ctx context.Context, entryID string) (Entry, bool, error)
	ListRoster(ctx context.Context, entryID string) ([]RosterAssignment, error)
	ListAllRosters(ctx context.Context) ([]RosterAssignment, error)
	UpdateCachedTotal(ctx context.Context, entryID string, total float64) error
}
