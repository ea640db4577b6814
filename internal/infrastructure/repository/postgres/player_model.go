package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID             string          `db:"id"`
	Name           string          `db:"name"`
	Position       string          `db:"position"`
	TeamID         string          `db:"team_id"`
	IsActive       bool            `db:"is_active"`
	ExternalID     sql.NullString  `db:"external_id"`
	OverridePoints sql.NullFloat64 `db:"playoff_override_points"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}
