package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/playoffpool/playoff-pool/internal/domain/game"
	qb "github.com/playoffpool/playoff-pool/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

var gameSelectColumns = []string{
	"id",
	"round",
	"season_type",
	"week",
	"home_team_id",
	"away_team_id",
	"kickoff_at",
	"external_game_key",
	"final",
	"home_score",
	"away_score",
	"created_at",
	"updated_at",
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) List(ctx context.Context) ([]game.Game, error) {
	query, args, err := qb.Select(gameSelectColumns...).From("games").
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}

	return out, nil
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	query, args, err := qb.Select(gameSelectColumns...).From("games").
		Where(qb.Eq("id", gameID)).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build select game by id query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("select game by id: %w", err)
	}

	return gameFromRow(row), true, nil
}

func (r *GameRepository) GetByExternalKey(ctx context.Context, externalGameKey string) (game.Game, bool, error) {
	query, args, err := qb.Select(gameSelectColumns...).From("games").
		Where(qb.Eq("external_game_key", externalGameKey)).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build select game by external key query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("select game by external key: %w", err)
	}

	return gameFromRow(row), true, nil
}

func (r *GameRepository) Upsert(ctx context.Context, g game.Game) (game.Game, error) {
	insertModel := gameInsertModel{
		ID:              g.ID,
		Round:           string(g.Round),
		SeasonType:      string(g.SeasonType),
		Week:            intPtrToInt64Ptr(g.Week),
		HomeTeamID:      g.HomeTeamID,
		AwayTeamID:      g.AwayTeamID,
		KickoffAt:       g.KickoffAt,
		ExternalGameKey: nullableString(g.ExternalGameKey),
		Final:           g.Final,
		HomeScore:       intPtrToInt64Ptr(g.HomeScore),
		AwayScore:       intPtrToInt64Ptr(g.AwayScore),
	}

	if g.ExternalGameKey == "" {
		query, args, err := qb.InsertModel("games", insertModel, "")
		if err != nil {
			return game.Game{}, fmt.Errorf("build insert game query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return game.Game{}, fmt.Errorf("insert game: %w", err)
		}
		return g, nil
	}

	// Conflicts refresh the metadata only. The stored id and team pairing
	// stay, so stat rows keep pointing at the same game across re-imports.
	suffix := `ON CONFLICT (external_game_key)
DO UPDATE SET
    round = EXCLUDED.round,
    season_type = EXCLUDED.season_type,
    week = EXCLUDED.week,
    kickoff_at = EXCLUDED.kickoff_at,
    final = EXCLUDED.final,
    updated_at = NOW()`

	query, args, err := qb.InsertModel("games", insertModel, suffix)
	if err != nil {
		return game.Game{}, fmt.Errorf("build upsert game query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return game.Game{}, fmt.Errorf("upsert game external_game_key=%s: %w", g.ExternalGameKey, err)
	}

	stored, found, err := r.GetByExternalKey(ctx, g.ExternalGameKey)
	if err != nil {
		return game.Game{}, err
	}
	if !found {
		return game.Game{}, fmt.Errorf("upsert game external_game_key=%s: row missing after upsert", g.ExternalGameKey)
	}

	return stored, nil
}

func gameFromRow(row gameTableModel) game.Game {
	return game.Game{
		ID:              row.ID,
		Round:           game.Round(row.Round),
		SeasonType:      game.SeasonType(row.SeasonType),
		Week:            nullInt64ToIntPtr(row.Week),
		HomeTeamID:      row.HomeTeamID,
		AwayTeamID:      row.AwayTeamID,
		KickoffAt:       row.KickoffAt,
		ExternalGameKey: nullStringToString(row.ExternalGameKey),
		Final:           row.Final,
		HomeScore:       nullInt64ToIntPtr(row.HomeScore),
		AwayScore:       nullInt64ToIntPtr(row.AwayScore),
	}
}
