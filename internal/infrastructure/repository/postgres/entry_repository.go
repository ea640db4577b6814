package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/playoffpool/playoff-pool/internal/domain/entry"
	qb "github.com/playoffpool/playoff-pool/internal/platform/querybuilder"
)

type EntryRepository struct {
	db *sqlx.DB
}

var entrySelectColumns = []string{
	"id",
	"team_name",
	"participant_name",
	"email",
	"paid",
	"total_points_cached",
	"created_at",
	"updated_at",
}

var rosterSelectColumns = []string{
	"entry_id",
	"player_id",
	"slot",
}

func NewEntryRepository(db *sqlx.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) List(ctx context.Context) ([]entry.Entry, error) {
	query, args, err := qb.Select(entrySelectColumns...).From("entries").
		OrderBy("team_name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select entries query: %w", err)
	}

	var rows []entryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
	}

	out := make([]entry.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, entryFromRow(row))
	}

	return out, nil
}

func (r *EntryRepository) GetByID(ctx context.Context, entryID string) (entry.Entry, bool, error) {
	query, args, err := qb.Select(entrySelectColumns...).From("entries").
		Where(qb.Eq("id", entryID)).
		ToSQL()
	if err != nil {
		return entry.Entry{}, false, fmt.Errorf("build select entry by id query: %w", err)
	}

	var row entryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return entry.Entry{}, false, nil
		}
		return entry.Entry{}, false, fmt.Errorf("select entry by id: %w", err)
	}

	return entryFromRow(row), true, nil
}

func (r *EntryRepository) ListRoster(ctx context.Context, entryID string) ([]entry.RosterAssignment, error) {
	query, args, err := qb.Select(rosterSelectColumns...).From("entry_players").
		Where(qb.Eq("entry_id", entryID)).
		OrderBy("slot").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster query: %w", err)
	}

	var rows []rosterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select roster: %w", err)
	}

	return rosterFromRows(rows), nil
}

func (r *EntryRepository) ListAllRosters(ctx context.Context) ([]entry.RosterAssignment, error) {
	query, args, err := qb.Select(rosterSelectColumns...).From("entry_players").
		OrderBy("entry_id", "slot").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select all rosters query: %w", err)
	}

	var rows []rosterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select all rosters: %w", err)
	}

	return rosterFromRows(rows), nil
}

func (r *EntryRepository) UpdateCachedTotal(ctx context.Context, entryID string, total float64) error {
	query, args, err := qb.Update("entries").
		Set("total_points_cached", total).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", entryID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update entry total query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update entry total: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update entry total: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update entry total: entry %s not found", entryID)
	}

	return nil
}

func entryFromRow(row entryTableModel) entry.Entry {
	return entry.Entry{
		ID:                row.ID,
		TeamName:          row.TeamName,
		ParticipantName:   row.ParticipantName,
		Email:             row.Email,
		Paid:              row.Paid,
		TotalPointsCached: row.TotalPointsCached,
	}
}

func rosterFromRows(rows []rosterTableModel) []entry.RosterAssignment {
	out := make([]entry.RosterAssignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, entry.RosterAssignment{
			EntryID:  row.EntryID,
			PlayerID: row.PlayerID,
			Slot:     entry.Slot(row.Slot),
		})
	}
	return out
}
