package usecase

import (
	"github.com/playoffpool/playoff-pool/internal/domain/player"
	"github.com/playoffpool/playoff-pool/internal/domain/team"
)

type resolveOutcome int

const (
	resolveNoMatch resolveOutcome = iota
	resolveMatched
	resolveAmbiguous
)

// resolverStrategy inspects one record against the index and reports a
// definite match, no match, or an ambiguous set of candidates. The
// chain stops at the first definite match; ambiguity also stops the
// chain and counts as unmatched, so a record never lands on a player
// picked arbitrarily.
type resolverStrategy func(idx *PlayerIndex, rec StatRecord) (player.Player, resolveOutcome)

// PlayerIndex is an immutable lookup table built once per import batch
// from the full roster of known players.
type PlayerIndex struct {
	byExternalID map[string]player.Player
	dstByTeam    map[string]player.Player
	byNameTeam   map[string]player.Player
	byName       map[string][]player.Player
	teamIDByAbbr map[string]string
	strategies   []resolverStrategy
}

// BuildPlayerIndex indexes players by external id, by defense team
// code, and by normalized name. Players whose team reference cannot be
// resolved to an abbreviation are indexed by name only.
func BuildPlayerIndex(players []player.Player, teams []team.Team) *PlayerIndex {
	abbrByTeamID := make(map[string]string, len(teams))
	teamIDByAbbr := make(map[string]string, len(teams))
	for _, t := range teams {
		abbr := team.NormalizeAbbreviation(t.Abbreviation)
		abbrByTeamID[t.ID] = abbr
		teamIDByAbbr[abbr] = t.ID
	}

	idx := &PlayerIndex{
		byExternalID: make(map[string]player.Player),
		dstByTeam:    make(map[string]player.Player),
		byNameTeam:   make(map[string]player.Player),
		byName:       make(map[string][]player.Player),
		teamIDByAbbr: teamIDByAbbr,
	}

	for _, p := range players {
		if p.ExternalID != "" {
			idx.byExternalID[p.ExternalID] = p
		}
		abbr := abbrByTeamID[p.TeamID]
		name := NormalizeName(p.Name)
		if name != "" {
			if abbr != "" {
				idx.byNameTeam[name+"|"+abbr] = p
			}
			idx.byName[name] = append(idx.byName[name], p)
		}
		if p.Position == player.PositionDefense && abbr != "" {
			idx.dstByTeam[abbr] = p
		}
	}

	idx.strategies = []resolverStrategy{
		resolveByExternalID,
		resolveDefenseByTeam,
		resolveByNameAndTeam,
		resolveByNameOnly,
	}

	return idx
}

// TeamIDByAbbreviation resolves a provider team code to the internal
// team id, when known.
func (idx *PlayerIndex) TeamIDByAbbreviation(abbr string) (string, bool) {
	id, ok := idx.teamIDByAbbr[team.NormalizeAbbreviation(abbr)]
	return id, ok
}

// Resolve walks the strategy chain and returns the matched player, or
// false when the record is unmatched or ambiguous.
func (idx *PlayerIndex) Resolve(rec StatRecord) (player.Player, bool) {
	for _, strategy := range idx.strategies {
		p, outcome := strategy(idx, rec)
		switch outcome {
		case resolveMatched:
			return p, true
		case resolveAmbiguous:
			return player.Player{}, false
		}
	}

	return player.Player{}, false
}

func resolveByExternalID(idx *PlayerIndex, rec StatRecord) (player.Player, resolveOutcome) {
	if rec.ExternalPlayerID == "" {
		return player.Player{}, resolveNoMatch
	}
	if p, ok := idx.byExternalID[rec.ExternalPlayerID]; ok {
		return p, resolveMatched
	}

	return player.Player{}, resolveNoMatch
}

func resolveDefenseByTeam(idx *PlayerIndex, rec StatRecord) (player.Player, resolveOutcome) {
	if !player.IsDefensePosition(rec.Position) || rec.TeamCode == "" {
		return player.Player{}, resolveNoMatch
	}
	if p, ok := idx.dstByTeam[team.NormalizeAbbreviation(rec.TeamCode)]; ok {
		return p, resolveMatched
	}

	return player.Player{}, resolveNoMatch
}

func resolveByNameAndTeam(idx *PlayerIndex, rec StatRecord) (player.Player, resolveOutcome) {
	if rec.PlayerName == "" || rec.TeamCode == "" {
		return player.Player{}, resolveNoMatch
	}
	key := NormalizeName(rec.PlayerName) + "|" + team.NormalizeAbbreviation(rec.TeamCode)
	if p, ok := idx.byNameTeam[key]; ok {
		return p, resolveMatched
	}

	return player.Player{}, resolveNoMatch
}

// resolveByNameOnly matches across all teams and only accepts a unique
// hit. Two rostered players sharing a normalized name is ambiguous.
func resolveByNameOnly(idx *PlayerIndex, rec StatRecord) (player.Player, resolveOutcome) {
	if rec.PlayerName == "" {
		return player.Player{}, resolveNoMatch
	}
	candidates := idx.byName[NormalizeName(rec.PlayerName)]
	switch len(candidates) {
	case 0:
		return player.Player{}, resolveNoMatch
	case 1:
		return candidates[0], resolveMatched
	default:
		return player.Player{}, resolveAmbiguous
	}
}
