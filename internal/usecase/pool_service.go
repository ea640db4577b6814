package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/playoffpool/playoff-pool/internal/domain/entry"
	"github.com/playoffpool/playoff-pool/internal/domain/game"
	"github.com/playoffpool/playoff-pool/internal/domain/player"
	"github.com/playoffpool/playoff-pool/internal/domain/team"
)

// PoolService serves the read side of the pool: standings, the player
// catalog and the game schedule.
type PoolService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	gameRepo   game.Repository
	entryRepo  entry.Repository
}

func NewPoolService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	gameRepo game.Repository,
	entryRepo entry.Repository,
) *PoolService {
	return &PoolService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		entryRepo:  entryRepo,
	}
}

// StandingRow is one entry's place on the leaderboard.
type StandingRow struct {
	Rank            int     `json:"rank"`
	EntryID         string  `json:"entryId"`
	TeamName        string  `json:"teamName"`
	ParticipantName string  `json:"participantName"`
	Paid            bool    `json:"paid"`
	TotalPoints     float64 `json:"totalPoints"`
}

// PlayerRow is one catalog player with its team code resolved.
type PlayerRow struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Position       player.Position `json:"position"`
	TeamAbbr       string          `json:"teamAbbr"`
	IsActive       bool            `json:"isActive"`
	OverridePoints *float64        `json:"playoffOverridePoints"`
}

// GameRow is one scheduled game with display labels.
type GameRow struct {
	ID           string          `json:"id"`
	Round        game.Round      `json:"round"`
	RoundLabel   string          `json:"roundLabel"`
	ShortLabel   string          `json:"shortLabel"`
	SeasonType   game.SeasonType `json:"seasonType"`
	Week         *int            `json:"week"`
	HomeTeamAbbr string          `json:"homeTeamAbbr"`
	AwayTeamAbbr string          `json:"awayTeamAbbr"`
	KickoffAt    time.Time       `json:"kickoffAt"`
	Final        bool            `json:"final"`
	HomeScore    *int            `json:"homeScore"`
	AwayScore    *int            `json:"awayScore"`
}

// Standings lists entries by cached total, highest first. Ties share
// the same order they were stored in; ranks are still dense.
func (s *PoolService) Standings(ctx context.Context) ([]StandingRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.Standings")
	defer span.End()

	entries, err := s.entryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPointsCached > entries[j].TotalPointsCached
	})

	rows := make([]StandingRow, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, StandingRow{
			Rank:            i + 1,
			EntryID:         e.ID,
			TeamName:        e.TeamName,
			ParticipantName: e.ParticipantName,
			Paid:            e.Paid,
			TotalPoints:     e.TotalPointsCached,
		})
	}

	return rows, nil
}

// ListPlayers returns the player catalog with team codes resolved.
func (s *PoolService) ListPlayers(ctx context.Context) ([]PlayerRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.ListPlayers")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	abbrByTeamID, err := s.teamAbbreviations(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]PlayerRow, 0, len(players))
	for _, p := range players {
		rows = append(rows, PlayerRow{
			ID:             p.ID,
			Name:           p.Name,
			Position:       p.Position,
			TeamAbbr:       abbrByTeamID[p.TeamID],
			IsActive:       p.IsActive,
			OverridePoints: p.OverridePoints,
		})
	}

	return rows, nil
}

// ListGames returns the schedule ordered by kickoff with round labels
// attached for display.
func (s *PoolService) ListGames(ctx context.Context) ([]GameRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.ListGames")
	defer span.End()

	games, err := s.gameRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	abbrByTeamID, err := s.teamAbbreviations(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(games, func(i, j int) bool {
		return games[i].KickoffAt.Before(games[j].KickoffAt)
	})

	rows := make([]GameRow, 0, len(games))
	for _, g := range games {
		label := game.RoundLabel(g)
		rows = append(rows, GameRow{
			ID:           g.ID,
			Round:        g.Round,
			RoundLabel:   label,
			ShortLabel:   game.FormatRoundLabelShort(label),
			SeasonType:   g.SeasonType,
			Week:         g.Week,
			HomeTeamAbbr: abbrByTeamID[g.HomeTeamID],
			AwayTeamAbbr: abbrByTeamID[g.AwayTeamID],
			KickoffAt:    g.KickoffAt,
			Final:        g.Final,
			HomeScore:    g.HomeScore,
			AwayScore:    g.AwayScore,
		})
	}

	return rows, nil
}

func (s *PoolService) teamAbbreviations(ctx context.Context) (map[string]string, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	out := make(map[string]string, len(teams))
	for _, t := range teams {
		out[t.ID] = t.Abbreviation
	}
	return out, nil
}
