package postgres

import (
	"database/sql"
	"time"
)

type gameTableModel struct {
	ID              string         `db:"id"`
	Round           string         `db:"round"`
	SeasonType      string         `db:"season_type"`
	Week            sql.NullInt64  `db:"week"`
	HomeTeamID      string         `db:"home_team_id"`
	AwayTeamID      string         `db:"away_team_id"`
	KickoffAt       time.Time      `db:"kickoff_at"`
	ExternalGameKey sql.NullString `db:"external_game_key"`
	Final           bool           `db:"final"`
	HomeScore       sql.NullInt64  `db:"home_score"`
	AwayScore       sql.NullInt64  `db:"away_score"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

type gameInsertModel struct {
	ID              string    `db:"id"`
	Round           string    `db:"round"`
	SeasonType      string    `db:"season_type"`
	Week            *int64    `db:"week"`
	HomeTeamID      string    `db:"home_team_id"`
	AwayTeamID      string    `db:"away_team_id"`
	KickoffAt       time.Time `db:"kickoff_at"`
	ExternalGameKey *string   `db:"external_game_key"`
	Final           bool      `db:"final"`
	HomeScore       *int64    `db:"home_score"`
	AwayScore       *int64    `db:"away_score"`
}
