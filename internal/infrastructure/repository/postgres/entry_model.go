package postgres

import "time"

type entryTableModel struct {
	ID                string    `db:"id"`
	TeamName          string    `db:"team_name"`
	ParticipantName   string    `db:"participant_name"`
	Email             string    `db:"email"`
	Paid              bool      `db:"paid"`
	TotalPointsCached float64   `db:"total_points_cached"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

type rosterTableModel struct {
	EntryID  string `db:"entry_id"`
	PlayerID string `db:"player_id"`
	Slot     string `db:"slot"`
}
