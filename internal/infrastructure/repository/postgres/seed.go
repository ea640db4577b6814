package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/playoffpool/playoff-pool/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo pool into an empty database so a fresh
// deployment has teams, players and entries to import stats against.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM nfl_teams`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, t := range memory.SeedTeams() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO nfl_teams (id, name, abbreviation, conference, seed, made_playoffs)
VALUES (:id, :name, :abbreviation, :conference, :seed, :made_playoffs)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":            t.ID,
			"name":          t.Name,
			"abbreviation":  t.Abbreviation,
			"conference":    string(t.Conference),
			"seed":          intPtrToInt64Ptr(t.Seed),
			"made_playoffs": t.MadePlayoffs,
		})
		if err != nil {
			return fmt.Errorf("bind seed team %s query: %w", t.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	for _, p := range memory.SeedPlayers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (id, name, position, team_id, is_active, external_id)
VALUES (:id, :name, :position, :team_id, :is_active, :external_id)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":          p.ID,
			"name":        p.Name,
			"position":    string(p.Position),
			"team_id":     p.TeamID,
			"is_active":   p.IsActive,
			"external_id": nullableString(p.ExternalID),
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	for _, e := range memory.SeedEntries() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO entries (id, team_name, participant_name, email, paid)
VALUES (:id, :team_name, :participant_name, :email, :paid)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":               e.ID,
			"team_name":        e.TeamName,
			"participant_name": e.ParticipantName,
			"email":            e.Email,
			"paid":             e.Paid,
		})
		if err != nil {
			return fmt.Errorf("bind seed entry %s query: %w", e.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed entry %s: %w", e.ID, err)
		}
	}

	for _, assignment := range memory.SeedRosters() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO entry_players (entry_id, player_id, slot)
VALUES (:entry_id, :player_id, :slot)
ON CONFLICT (entry_id, slot) DO NOTHING`, map[string]any{
			"entry_id":  assignment.EntryID,
			"player_id": assignment.PlayerID,
			"slot":      string(assignment.Slot),
		})
		if err != nil {
			return fmt.Errorf("bind seed roster %s/%s query: %w", assignment.EntryID, assignment.Slot, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed roster %s/%s: %w", assignment.EntryID, assignment.Slot, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
