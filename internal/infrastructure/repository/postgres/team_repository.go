package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/playoffpool/playoff-pool/internal/domain/team"
	qb "github.com/playoffpool/playoff-pool/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

var teamSelectColumns = []string{
	"id",
	"name",
	"abbreviation",
	"conference",
	"seed",
	"made_playoffs",
	"eliminated_round",
	"external_id",
	"created_at",
	"updated_at",
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("nfl_teams").
		OrderBy("abbreviation").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) GetByAbbreviation(ctx context.Context, abbreviation string) (team.Team, bool, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("nfl_teams").
		Where(qb.Eq("abbreviation", team.NormalizeAbbreviation(abbreviation))).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team by abbreviation query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by abbreviation: %w", err)
	}

	return teamFromRow(row), true, nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:              row.ID,
		Name:            row.Name,
		Abbreviation:    row.Abbreviation,
		Conference:      team.Conference(row.Conference),
		Seed:            nullInt64ToIntPtr(row.Seed),
		MadePlayoffs:    row.MadePlayoffs,
		EliminatedRound: nullStringToString(row.EliminatedRound),
		ExternalID:      nullStringToString(row.ExternalID),
	}
}
