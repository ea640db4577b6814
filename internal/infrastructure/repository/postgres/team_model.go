package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID              string         `db:"id"`
	Name            string         `db:"name"`
	Abbreviation    string         `db:"abbreviation"`
	Conference      string         `db:"conference"`
	Seed            sql.NullInt64  `db:"seed"`
	MadePlayoffs    bool           `db:"made_playoffs"`
	EliminatedRound sql.NullString `db:"eliminated_round"`
	ExternalID      sql.NullString `db:"external_id"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}
