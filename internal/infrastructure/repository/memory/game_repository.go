package memory

import (
	"context"
	"sync"

	"github.com/playoffpool/playoff-pool/internal/domain/game"
)

type GameRepository struct {
	mu      sync.RWMutex
	order   []string
	byID    map[string]game.Game
	idByKey map[string]string
}

func NewGameRepository(games []game.Game) *GameRepository {
	r := &GameRepository{
		byID:    make(map[string]game.Game, len(games)),
		idByKey: make(map[string]string, len(games)),
	}
	for _, g := range games {
		r.order = append(r.order, g.ID)
		r.byID[g.ID] = g
		if g.ExternalGameKey != "" {
			r.idByKey[g.ExternalGameKey] = g.ID
		}
	}

	return r
}

func (r *GameRepository) List(_ context.Context) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}

	return out, nil
}

func (r *GameRepository) GetByID(_ context.Context, gameID string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byID[gameID]
	return g, ok, nil
}

func (r *GameRepository) GetByExternalKey(_ context.Context, externalGameKey string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idByKey[externalGameKey]
	if !ok {
		return game.Game{}, false, nil
	}
	return r.byID[id], true, nil
}

func (r *GameRepository) Upsert(_ context.Context, g game.Game) (game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g.ExternalGameKey != "" {
		if id, ok := r.idByKey[g.ExternalGameKey]; ok {
			stored := r.byID[id]
			stored.Round = g.Round
			stored.SeasonType = g.SeasonType
			stored.Week = g.Week
			stored.KickoffAt = g.KickoffAt
			stored.Final = g.Final
			r.byID[id] = stored
			return stored, nil
		}
	}

	r.order = append(r.order, g.ID)
	r.byID[g.ID] = g
	if g.ExternalGameKey != "" {
		r.idByKey[g.ExternalGameKey] = g.ID
	}

	return g, nil
}
