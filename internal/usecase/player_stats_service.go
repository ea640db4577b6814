package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/playoffpool/playoff-pool/internal/domain/entry"
	"github.com/playoffpool/playoff-pool/internal/domain/game"
	"github.com/playoffpool/playoff-pool/internal/domain/gamestat"
	"github.com/playoffpool/playoff-pool/internal/domain/player"
	"github.com/playoffpool/playoff-pool/internal/domain/scoring"
	"github.com/playoffpool/playoff-pool/internal/domain/team"
)

// PlayerStatsService serves the per-game scoring detail shown when a
// participant drills into one of their roster players.
type PlayerStatsService struct {
	entryRepo  entry.Repository
	playerRepo player.Repository
	teamRepo   team.Repository
	gameRepo   game.Repository
	statRepo   gamestat.Repository
}

func NewPlayerStatsService(
	entryRepo entry.Repository,
	playerRepo player.Repository,
	teamRepo team.Repository,
	gameRepo game.Repository,
	statRepo gamestat.Repository,
) *PlayerStatsService {
	return &PlayerStatsService{
		entryRepo:  entryRepo,
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		gameRepo:   gameRepo,
		statRepo:   statRepo,
	}
}

// PlayerSummary describes the player whose games are listed.
type PlayerSummary struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Position       player.Position `json:"position"`
	TeamAbbr       string          `json:"teamAbbr"`
	OverridePoints *float64        `json:"playoffOverridePoints"`
}

// PlayerGameView is one game's scored line with its game metadata.
type PlayerGameView struct {
	GameID       string             `json:"gameId"`
	Round        game.Round         `json:"round"`
	SeasonType   game.SeasonType    `json:"seasonType"`
	Week         *int               `json:"week"`
	KickoffAt    time.Time          `json:"kickoffAt"`
	Final        bool               `json:"final"`
	HomeScore    *int               `json:"homeScore"`
	AwayScore    *int               `json:"awayScore"`
	HomeTeamAbbr string             `json:"homeTeamAbbr"`
	AwayTeamAbbr string             `json:"awayTeamAbbr"`
	TotalPoints  float64            `json:"totalPoints"`
	Breakdown    []scoring.LineItem `json:"breakdown"`
	IsOverride   bool               `json:"isManualOverride"`
}

// PlayerStatsView is the full response for one roster player.
type PlayerStatsView struct {
	Player PlayerSummary    `json:"player"`
	Games  []PlayerGameView `json:"games"`
}

// GetForRosterPlayer lists a roster player's games with per-game
// breakdowns, ordered by kickoff. The player must be on the entry's
// roster.
func (s *PlayerStatsService) GetForRosterPlayer(ctx context.Context, entryID, playerID string) (PlayerStatsView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.GetForRosterPlayer")
	defer span.End()

	entryID = strings.TrimSpace(entryID)
	playerID = strings.TrimSpace(playerID)
	if entryID == "" || playerID == "" {
		return PlayerStatsView{}, fmt.Errorf("%w: entry id and player id are required", ErrInvalidInput)
	}

	roster, err := s.entryRepo.ListRoster(ctx, entryID)
	if err != nil {
		return PlayerStatsView{}, fmt.Errorf("list roster: %w", err)
	}
	onRoster := false
	for _, assignment := range roster {
		if assignment.PlayerID == playerID {
			onRoster = true
			break
		}
	}
	if !onRoster {
		return PlayerStatsView{}, fmt.Errorf("%w: player is not on the entry roster", ErrNotFound)
	}

	p, found, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return PlayerStatsView{}, fmt.Errorf("get player: %w", err)
	}
	if !found {
		return PlayerStatsView{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return PlayerStatsView{}, fmt.Errorf("list teams: %w", err)
	}
	abbrByTeamID := make(map[string]string, len(teams))
	for _, t := range teams {
		abbrByTeamID[t.ID] = t.Abbreviation
	}

	stats, err := s.statRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return PlayerStatsView{}, fmt.Errorf("list player stats: %w", err)
	}

	views := make([]PlayerGameView, 0, len(stats))
	for _, stat := range stats {
		g, found, err := s.gameRepo.GetByID(ctx, stat.GameID)
		if err != nil {
			return PlayerStatsView{}, fmt.Errorf("get game %s: %w", stat.GameID, err)
		}
		if !found {
			continue
		}
		breakdown := scoring.Compute(stat.Line)
		views = append(views, PlayerGameView{
			GameID:       g.ID,
			Round:        g.Round,
			SeasonType:   g.SeasonType,
			Week:         g.Week,
			KickoffAt:    g.KickoffAt,
			Final:        g.Final,
			HomeScore:    g.HomeScore,
			AwayScore:    g.AwayScore,
			HomeTeamAbbr: abbrByTeamID[g.HomeTeamID],
			AwayTeamAbbr: abbrByTeamID[g.AwayTeamID],
			TotalPoints:  breakdown.TotalPoints,
			Breakdown:    breakdown.Items,
			IsOverride:   breakdown.IsManualOverride,
		})
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].KickoffAt.Before(views[j].KickoffAt)
	})

	return PlayerStatsView{
		Player: PlayerSummary{
			ID:             p.ID,
			Name:           p.Name,
			Position:       p.Position,
			TeamAbbr:       abbrByTeamID[p.TeamID],
			OverridePoints: p.OverridePoints,
		},
		Games: views,
	}, nil
}
