package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/playoffpool/playoff-pool/internal/domain/entry"
	"github.com/playoffpool/playoff-pool/internal/domain/game"
	"github.com/playoffpool/playoff-pool/internal/domain/gamestat"
	"github.com/playoffpool/playoff-pool/internal/domain/player"
	"github.com/playoffpool/playoff-pool/internal/domain/team"
)

type stubTeamRepo struct {
	teams []team.Team
}

var _ team.Repository = (*stubTeamRepo)(nil)

func (r *stubTeamRepo) List(context.Context) ([]team.Team, error) {
	return r.teams, nil
}

func (r *stubTeamRepo) GetByAbbreviation(_ context.Context, abbr string) (team.Team, bool, error) {
	for _, t := range r.teams {
		if team.NormalizeAbbreviation(t.Abbreviation) == team.NormalizeAbbreviation(abbr) {
			return t, true, nil
		}
	}
	return team.Team{}, false, nil
}

type stubPlayerRepo struct {
	players []player.Player
}

var _ player.Repository = (*stubPlayerRepo)(nil)

func (r *stubPlayerRepo) List(context.Context) ([]player.Player, error) {
	return r.players, nil
}

func (r *stubPlayerRepo) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	for _, p := range r.players {
		if p.ID == playerID {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

type stubGameRepo struct {
	mu    sync.Mutex
	games map[string]game.Game
}

var _ game.Repository = (*stubGameRepo)(nil)

func newStubGameRepo() *stubGameRepo {
	return &stubGameRepo{games: make(map[string]game.Game)}
}

func (r *stubGameRepo) List(context.Context) ([]game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]game.Game, 0, len(r.games))
	for _, g := range r.games {
		out = append(out, g)
	}
	return out, nil
}

func (r *stubGameRepo) GetByID(_ context.Context, gameID string) (game.Game, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[gameID]
	return g, ok, nil
}

func (r *stubGameRepo) GetByExternalKey(_ context.Context, key string) (game.Game, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.games {
		if g.ExternalGameKey == key {
			return g, true, nil
		}
	}
	return game.Game{}, false, nil
}

func (r *stubGameRepo) Upsert(_ context.Context, g game.Game) (game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.games {
		if existing.ExternalGameKey == g.ExternalGameKey {
			existing.Round = g.Round
			existing.SeasonType = g.SeasonType
			existing.Week = g.Week
			r.games[id] = existing
			return existing, nil
		}
	}
	r.games[g.ID] = g
	return g, nil
}

type stubStatRepo struct {
	mu   sync.Mutex
	rows map[string]gamestat.PlayerGameStat

	upsertErr error
}

var _ gamestat.Repository = (*stubStatRepo)(nil)

func newStubStatRepo() *stubStatRepo {
	return &stubStatRepo{rows: make(map[string]gamestat.PlayerGameStat)}
}

func statKey(playerID, gameID string) string {
	return playerID + "|" + gameID
}

func (r *stubStatRepo) List(context.Context) ([]gamestat.PlayerGameStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]gamestat.PlayerGameStat, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	return out, nil
}

func (r *stubStatRepo) ListByPlayer(_ context.Context, playerID string) ([]gamestat.PlayerGameStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]gamestat.PlayerGameStat, 0)
	for _, row := range r.rows {
		if row.PlayerID == playerID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *stubStatRepo) Upsert(_ context.Context, stat gamestat.PlayerGameStat) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := statKey(stat.PlayerID, stat.GameID)
	if existing, ok := r.rows[key]; ok {
		stat.ID = existing.ID
		stat.Line.OverridePoints = existing.Line.OverridePoints
	}
	r.rows[key] = stat
	return nil
}

func (r *stubStatRepo) DeleteAll(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = make(map[string]gamestat.PlayerGameStat)
	return nil
}

type stubEntryRepo struct {
	entries []entry.Entry
	rosters []entry.RosterAssignment

	mu     sync.Mutex
	totals map[string]float64
}

var _ entry.Repository = (*stubEntryRepo)(nil)

func newStubEntryRepo(entries []entry.Entry, rosters []entry.RosterAssignment) *stubEntryRepo {
	return &stubEntryRepo{
		entries: entries,
		rosters: rosters,
		totals:  make(map[string]float64),
	}
}

func (r *stubEntryRepo) List(context.Context) ([]entry.Entry, error) {
	return r.entries, nil
}

func (r *stubEntryRepo) GetByID(_ context.Context, entryID string) (entry.Entry, bool, error) {
	for _, e := range r.entries {
		if e.ID == entryID {
			return e, true, nil
		}
	}
	return entry.Entry{}, false, nil
}

func (r *stubEntryRepo) ListRoster(_ context.Context, entryID string) ([]entry.RosterAssignment, error) {
	out := make([]entry.RosterAssignment, 0)
	for _, a := range r.rosters {
		if a.EntryID == entryID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubEntryRepo) ListAllRosters(context.Context) ([]entry.RosterAssignment, error) {
	return r.rosters, nil
}

func (r *stubEntryRepo) UpdateCachedTotal(_ context.Context, entryID string, total float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.totals[entryID] = total
	return nil
}

type seqIDGenerator struct {
	counter atomic.Int64
}

func (g *seqIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("id-%d", g.counter.Add(1)), nil
}

type recalcRecorder struct {
	calls atomic.Int32
	inner *RecalcService
}

func (r *recalcRecorder) RecalculateAll(ctx context.Context) error {
	r.calls.Add(1)
	if r.inner != nil {
		return r.inner.RecalculateAll(ctx)
	}
	return nil
}
