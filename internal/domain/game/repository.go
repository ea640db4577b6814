package game

import "context"

// Repository describes game persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Game, error)
	GetByID(ctx context.Context, gameID string) (Game, bool, error)
	GetByExternalKey(ctx context.Context, externalGameKey string) (Game, bool, error)
	// Upsert inserts the game or, when a game with the same external key
	// already exists, refreshes its round, season type, week and kickoff
	// while keeping the stored id and team pairing. It returns the stored
	// game either way.
	Upsert(ctx context.Context, g Game) (Game, error)
}
