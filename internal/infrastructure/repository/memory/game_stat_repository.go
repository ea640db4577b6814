package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/playoffpool/playoff-pool/internal/domain/gamestat"
)

type GameStatRepository struct {
	mu    sync.RWMutex
	byKey map[string]gamestat.PlayerGameStat
}

func NewGameStatRepository(stats []gamestat.PlayerGameStat) *GameStatRepository {
	byKey := make(map[string]gamestat.PlayerGameStat, len(stats))
	for _, s := range stats {
		byKey[statKey(s.PlayerID, s.GameID)] = s
	}

	return &GameStatRepository{byKey: byKey}
}

func (r *GameStatRepository) List(_ context.Context) ([]gamestat.PlayerGameStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gamestat.PlayerGameStat, 0, len(r.byKey))
	for _, s := range r.byKey {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PlayerID != out[j].PlayerID {
			return out[i].PlayerID < out[j].PlayerID
		}
		return out[i].GameID < out[j].GameID
	})

	return out, nil
}

func (r *GameStatRepository) ListByPlayer(_ context.Context, playerID string) ([]gamestat.PlayerGameStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gamestat.PlayerGameStat, 0)
	for _, s := range r.byKey {
		if s.PlayerID == playerID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameID < out[j].GameID })

	return out, nil
}

func (r *GameStatRepository) Upsert(_ context.Context, stat gamestat.PlayerGameStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := statKey(stat.PlayerID, stat.GameID)
	if existing, ok := r.byKey[key]; ok {
		stat.ID = existing.ID
		stat.Line.OverridePoints = existing.Line.OverridePoints
	}
	r.byKey[key] = stat

	return nil
}

func (r *GameStatRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byKey = make(map[string]gamestat.PlayerGameStat)

	return nil
}

func statKey(playerID, gameID string) string {
	return playerID + "|" + gameID
}
