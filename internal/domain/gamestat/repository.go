package gamestat

import "context"

// Repository describes stat-row persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]PlayerGameStat, error)
	ListByPlayer(ctx context.Context, playerID string) ([]PlayerGameStat, error)
	// Upsert writes the row keyed on (PlayerID, GameID), fully replacing
	// every counting stat of an existing row. An admin-set per-game
	// override on the existing row survives the upsert.
	Upsert(ctx context.Context, stat PlayerGameStat) error
	// DeleteAll removes every stat row. Used by replace-mode imports.
	DeleteAll(ctx context.Context) error
}
