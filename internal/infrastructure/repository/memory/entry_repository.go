package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/playoffpool/playoff-pool/internal/domain/entry"
)

type EntryRepository struct {
	mu      sync.RWMutex
	order   []string
	byID    map[string]entry.Entry
	rosters []entry.RosterAssignment
}

func NewEntryRepository(entries []entry.Entry, rosters []entry.RosterAssignment) *EntryRepository {
	r := &EntryRepository{
		byID:    make(map[string]entry.Entry, len(entries)),
		rosters: rosters,
	}
	for _, e := range entries {
		r.order = append(r.order, e.ID)
		r.byID[e.ID] = e
	}

	return r
}

func (r *EntryRepository) List(_ context.Context) ([]entry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry.Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}

	return out, nil
}

func (r *EntryRepository) GetByID(_ context.Context, entryID string) (entry.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[entryID]
	return e, ok, nil
}

func (r *EntryRepository) ListRoster(_ context.Context, entryID string) ([]entry.RosterAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry.RosterAssignment, 0)
	for _, assignment := range r.rosters {
		if assignment.EntryID == entryID {
			out = append(out, assignment)
		}
	}

	return out, nil
}

func (r *EntryRepository) ListAllRosters(_ context.Context) ([]entry.RosterAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry.RosterAssignment, 0, len(r.rosters))
	out = append(out, r.rosters...)

	return out, nil
}

func (r *EntryRepository) UpdateCachedTotal(_ context.Context, entryID string, total float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[entryID]
	if !ok {
		return fmt.Errorf("update entry total: entry %s not found", entryID)
	}
	e.TotalPointsCached = total
	r.byID[entryID] = e

	return nil
}
