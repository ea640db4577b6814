package memory

import (
	"context"
	"sync"

	"github.com/playoffpool/playoff-pool/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	teams  []team.Team
	byAbbr map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	byAbbr := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		byAbbr[team.NormalizeAbbreviation(t.Abbreviation)] = t
	}

	return &TeamRepository{
		teams:  teams,
		byAbbr: byAbbr,
	}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	out = append(out, r.teams...)

	return out, nil
}

func (r *TeamRepository) GetByAbbreviation(_ context.Context, abbreviation string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byAbbr[team.NormalizeAbbreviation(abbreviation)]
	return t, ok, nil
}
