package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/playoffpool/playoff-pool/internal/domain/gamestat"
	qb "github.com/playoffpool/playoff-pool/internal/platform/querybuilder"
)

type GameStatRepository struct {
	db *sqlx.DB
}

var gameStatSelectColumns = []string{
	"id",
	"player_id",
	"game_id",
	"passing_yards",
	"passing_tds",
	"passing_two_pt",
	"rushing_yards",
	"rushing_tds",
	"rushing_two_pt",
	"receiving_yards",
	"receiving_tds",
	"receiving_two_pt",
	"receptions",
	"fg_made_0_39",
	"fg_made_40_49",
	"fg_made_50_59",
	"fg_made_60_plus",
	"xp_made",
	"def_interceptions",
	"sacks",
	"safeties",
	"def_fumble_recoveries",
	"def_special_teams_tds",
	"fumble_return_2pt_kick",
	"fumble_return_2pt",
	"int_return_2pt_kick",
	"int_return_2pt",
	"manual_override_points",
	"created_at",
	"updated_at",
}

func NewGameStatRepository(db *sqlx.DB) *GameStatRepository {
	return &GameStatRepository{db: db}
}

func (r *GameStatRepository) List(ctx context.Context) ([]gamestat.PlayerGameStat, error) {
	query, args, err := qb.Select(gameStatSelectColumns...).From("player_game_stats").
		OrderBy("player_id", "game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select game stats query: %w", err)
	}

	var rows []gameStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select game stats: %w", err)
	}

	out := make([]gamestat.PlayerGameStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameStatFromRow(row))
	}

	return out, nil
}

func (r *GameStatRepository) ListByPlayer(ctx context.Context, playerID string) ([]gamestat.PlayerGameStat, error) {
	query, args, err := qb.Select(gameStatSelectColumns...).From("player_game_stats").
		Where(qb.Eq("player_id", playerID)).
		OrderBy("game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select game stats by player query: %w", err)
	}

	var rows []gameStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select game stats by player: %w", err)
	}

	out := make([]gamestat.PlayerGameStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameStatFromRow(row))
	}

	return out, nil
}

func (r *GameStatRepository) Upsert(ctx context.Context, stat gamestat.PlayerGameStat) error {
	line := stat.Line
	insertModel := gameStatInsertModel{
		ID:       stat.ID,
		PlayerID: stat.PlayerID,
		GameID:   stat.GameID,

		PassingYards:   line.PassingYards,
		PassingTDs:     line.PassingTDs,
		PassingTwoPt:   line.PassingTwoPt,
		RushingYards:   line.RushingYards,
		RushingTDs:     line.RushingTDs,
		RushingTwoPt:   line.RushingTwoPt,
		ReceivingYards: line.ReceivingYards,
		ReceivingTDs:   line.ReceivingTDs,
		ReceivingTwoPt: line.ReceivingTwoPt,
		Receptions:     line.Receptions,

		FGMade0to39:  line.FGMade0to39,
		FGMade40to49: line.FGMade40to49,
		FGMade50to59: line.FGMade50to59,
		FGMade60Plus: line.FGMade60Plus,
		XPMade:       line.XPMade,

		DefInterceptions:    line.DefInterceptions,
		Sacks:               line.Sacks,
		Safeties:            line.Safeties,
		DefFumbleRecoveries: line.DefFumbleRecoveries,
		DefSpecialTeamsTDs:  line.DefSpecialTeamsTDs,
		FumbleReturn2PtKick: line.FumbleReturn2PtKick,
		FumbleReturn2Pt:     line.FumbleReturn2Pt,
		IntReturn2PtKick:    line.IntReturn2PtKick,
		IntReturn2Pt:        line.IntReturn2Pt,

		ManualOverridePoints: line.OverridePoints,
	}

	// The update list deliberately omits manual_override_points so an
	// admin-set per-game override is never clobbered by a re-import.
	suffix := `ON CONFLICT (player_id, game_id)
DO UPDATE SET
    passing_yards = EXCLUDED.passing_yards,
    passing_tds = EXCLUDED.passing_tds,
    passing_two_pt = EXCLUDED.passing_two_pt,
    rushing_yards = EXCLUDED.rushing_yards,
    rushing_tds = EXCLUDED.rushing_tds,
    rushing_two_pt = EXCLUDED.rushing_two_pt,
    receiving_yards = EXCLUDED.receiving_yards,
    receiving_tds = EXCLUDED.receiving_tds,
    receiving_two_pt = EXCLUDED.receiving_two_pt,
    receptions = EXCLUDED.receptions,
    fg_made_0_39 = EXCLUDED.fg_made_0_39,
    fg_made_40_49 = EXCLUDED.fg_made_40_49,
    fg_made_50_59 = EXCLUDED.fg_made_50_59,
    fg_made_60_plus = EXCLUDED.fg_made_60_plus,
    xp_made = EXCLUDED.xp_made,
    def_interceptions = EXCLUDED.def_interceptions,
    sacks = EXCLUDED.sacks,
    safeties = EXCLUDED.safeties,
    def_fumble_recoveries = EXCLUDED.def_fumble_recoveries,
    def_special_teams_tds = EXCLUDED.def_special_teams_tds,
    fumble_return_2pt_kick = EXCLUDED.fumble_return_2pt_kick,
    fumble_return_2pt = EXCLUDED.fumble_return_2pt,
    int_return_2pt_kick = EXCLUDED.int_return_2pt_kick,
    int_return_2pt = EXCLUDED.int_return_2pt,
    updated_at = NOW()`

	query, args, err := qb.InsertModel("player_game_stats", insertModel, suffix)
	if err != nil {
		return fmt.Errorf("build upsert game stat query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert game stat player=%s game=%s: %w", stat.PlayerID, stat.GameID, err)
	}

	return nil
}

func (r *GameStatRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM player_game_stats"); err != nil {
		return fmt.Errorf("delete all game stats: %w", err)
	}
	return nil
}

func gameStatFromRow(row gameStatTableModel) gamestat.PlayerGameStat {
	return gamestat.PlayerGameStat{
		ID:       row.ID,
		PlayerID: row.PlayerID,
		GameID:   row.GameID,
		Line: gamestat.StatLine{
			PassingYards:   row.PassingYards,
			PassingTDs:     row.PassingTDs,
			PassingTwoPt:   row.PassingTwoPt,
			RushingYards:   row.RushingYards,
			RushingTDs:     row.RushingTDs,
			RushingTwoPt:   row.RushingTwoPt,
			ReceivingYards: row.ReceivingYards,
			ReceivingTDs:   row.ReceivingTDs,
			ReceivingTwoPt: row.ReceivingTwoPt,
			Receptions:     row.Receptions,

			FGMade0to39:  row.FGMade0to39,
			FGMade40to49: row.FGMade40to49,
			FGMade50to59: row.FGMade50to59,
			FGMade60Plus: row.FGMade60Plus,
			XPMade:       row.XPMade,

			DefInterceptions:    row.DefInterceptions,
			Sacks:               row.Sacks,
			Safeties:            row.Safeties,
			DefFumbleRecoveries: row.DefFumbleRecoveries,
			DefSpecialTeamsTDs:  row.DefSpecialTeamsTDs,
			FumbleReturn2PtKick: row.FumbleReturn2PtKick,
			FumbleReturn2Pt:     row.FumbleReturn2Pt,
			IntReturn2PtKick:    row.IntReturn2PtKick,
			IntReturn2Pt:        row.IntReturn2Pt,

			OverridePoints: nullFloat64ToPtr(row.ManualOverridePoints),
		},
	}
}
