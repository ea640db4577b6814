package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/playoffpool/playoff-pool/internal/domain/game"
	"github.com/playoffpool/playoff-pool/internal/domain/gamestat"
	"github.com/playoffpool/playoff-pool/internal/domain/player"
	"github.com/playoffpool/playoff-pool/internal/domain/team"
	"github.com/playoffpool/playoff-pool/internal/platform/id"
)

const defaultImportWorkers = 8

type totalRecalculator interface {
	RecalculateAll(ctx context.Context) error
}

// ImportService turns batches of canonical stat records into persisted
// game and stat rows, then rebuilds entry totals.
type ImportService struct {
	teamRepo    team.Repository
	playerRepo  player.Repository
	gameRepo    game.Repository
	statRepo    gamestat.Repository
	recalc      totalRecalculator
	idGen       id.Generator
	workerCount int
}

func NewImportService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	gameRepo game.Repository,
	statRepo gamestat.Repository,
	recalc totalRecalculator,
	idGen id.Generator,
	workerCount int,
) *ImportService {
	if workerCount <= 0 {
		workerCount = defaultImportWorkers
	}
	return &ImportService{
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		gameRepo:    gameRepo,
		statRepo:    statRepo,
		recalc:      recalc,
		idGen:       idGen,
		workerCount: workerCount,
	}
}

// ImportResult reports what one batch did. Skips are informational;
// upstream feeds routinely carry records the pool does not roster.
type ImportResult struct {
	Imported       int  `json:"imported"`
	SkippedAllZero int  `json:"skippedAllZero"`
	SkippedPlayers int  `json:"skippedPlayers"`
	SkippedGames   int  `json:"skippedGames"`
	GamesCreated   int  `json:"gamesCreated"`
	GamesUpdated   int  `json:"gamesUpdated"`
	Replaced       bool `json:"replaced"`
}

// gameGroup accumulates per-game metadata across a batch's records.
type gameGroup struct {
	key        string
	round      game.Round
	seasonType game.SeasonType
	week       *int
	kickoffAt  time.Time
	teamCodes  []string
}

// Import persists a batch of stat records. Records that cannot be
// matched to a player or game, or that carry only zeroes, are skipped
// and counted. Entry totals are rebuilt once, after every row from the
// batch is durable.
func (s *ImportService) Import(ctx context.Context, records []StatRecord) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.Import")
	defer span.End()

	var result ImportResult
	if len(records) == 0 {
		return result, nil
	}
	if err := validateRecords(records); err != nil {
		return ImportResult{}, err
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("list teams: %w", err)
	}
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("list players: %w", err)
	}
	index := BuildPlayerIndex(players, teams)

	gameIDByKey, err := s.upsertGames(ctx, records, index, teams, &result)
	if err != nil {
		return ImportResult{}, err
	}

	if err := s.upsertStats(ctx, records, index, gameIDByKey, &result); err != nil {
		return ImportResult{}, err
	}

	if err := s.recalc.RecalculateAll(ctx); err != nil {
		return ImportResult{}, fmt.Errorf("recalculate entry totals: %w", err)
	}
	return result, nil
}

// Replace clears every stored stat row before importing, so only the
// current batch remains. An empty batch still rebuilds entry totals;
// they fall back to overrides or zero.
func (s *ImportService) Replace(ctx context.Context, records []StatRecord) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.Replace")
	defer span.End()

	if err := validateRecords(records); err != nil {
		return ImportResult{}, err
	}
	if err := s.statRepo.DeleteAll(ctx); err != nil {
		return ImportResult{}, fmt.Errorf("delete stat rows: %w", err)
	}

	if len(records) == 0 {
		if err := s.recalc.RecalculateAll(ctx); err != nil {
			return ImportResult{}, fmt.Errorf("recalculate entry totals: %w", err)
		}
		return ImportResult{Replaced: true}, nil
	}

	result, err := s.Import(ctx, records)
	if err != nil {
		return ImportResult{}, err
	}
	result.Replaced = true
	return result, nil
}

// validateRecords rejects the whole batch before any write when a
// record is structurally broken. Missing identities are soft skips
// later; a missing game key or unknown enum is a caller bug.
func validateRecords(records []StatRecord) error {
	for i, rec := range records {
		if strings.TrimSpace(rec.GameKey) == "" {
			return fmt.Errorf("%w: record %d is missing a game key", ErrInvalidInput, i)
		}
		if _, err := game.ParseRound(rec.Round); err != nil {
			return fmt.Errorf("%w: record %d: %v", ErrInvalidInput, i, err)
		}
		if rec.SeasonType != "" {
			if _, ok := game.AllSeasonTypes[game.SeasonType(rec.SeasonType)]; !ok {
				return fmt.Errorf("%w: record %d has unknown season type %q", ErrInvalidInput, i, rec.SeasonType)
			}
		}
		if rec.Position != "" && !player.IsDefensePosition(rec.Position) {
			if _, ok := player.AllPositions[player.Position(rec.Position)]; !ok {
				return fmt.Errorf("%w: record %d has unknown position %q", ErrInvalidInput, i, rec.Position)
			}
		}
	}
	return nil
}

// groupGames folds the batch into one group per external game key,
// keeping first-seen order so placeholder pairings stay deterministic.
func groupGames(records []StatRecord) []*gameGroup {
	groups := make(map[string]*gameGroup)
	ordered := make([]*gameGroup, 0)

	for _, rec := range records {
		group, ok := groups[rec.GameKey]
		if !ok {
			kickoff := rec.KickoffAt
			if kickoff.IsZero() {
				kickoff = time.Now()
			}
			group = &gameGroup{
				key:        rec.GameKey,
				round:      game.Round(rec.Round),
				seasonType: game.SeasonPost,
				kickoffAt:  kickoff,
			}
			groups[rec.GameKey] = group
			ordered = append(ordered, group)
		}
		if rec.SeasonType != "" {
			group.seasonType = game.SeasonType(rec.SeasonType)
		}
		if rec.Week != nil {
			group.week = rec.Week
		}
		if rec.TeamCode != "" {
			code := team.NormalizeAbbreviation(rec.TeamCode)
			if !containsString(group.teamCodes, code) {
				group.teamCodes = append(group.teamCodes, code)
			}
		}
	}

	return ordered
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func (s *ImportService) upsertGames(
	ctx context.Context,
	records []StatRecord,
	index *PlayerIndex,
	teams []team.Team,
	result *ImportResult,
) (map[string]string, error) {
	gameIDByKey := make(map[string]string)

	for _, group := range groupGames(records) {
		existing, found, err := s.gameRepo.GetByExternalKey(ctx, group.key)
		if err != nil {
			return nil, fmt.Errorf("look up game %s: %w", group.key, err)
		}
		if found {
			existing.Round = group.round
			existing.SeasonType = group.seasonType
			existing.Week = group.week
			stored, err := s.gameRepo.Upsert(ctx, existing)
			if err != nil {
				return nil, fmt.Errorf("refresh game %s: %w", group.key, err)
			}
			gameIDByKey[group.key] = stored.ID
			result.GamesUpdated++
			continue
		}

		teamIDs := make([]string, 0, 2)
		for _, code := range group.teamCodes {
			if teamID, ok := index.TeamIDByAbbreviation(code); ok {
				teamIDs = append(teamIDs, teamID)
			}
		}
		if len(teamIDs) < 2 {
			// Degraded mode: pair the first two known teams so the
			// game can still hold stat rows.
			for _, t := range teams {
				teamIDs = append(teamIDs, t.ID)
				if len(teamIDs) >= 2 {
					break
				}
			}
		}
		if len(teamIDs) < 2 {
			continue
		}

		gameID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate game id: %w", err)
		}
		stored, err := s.gameRepo.Upsert(ctx, game.Game{
			ID:              gameID,
			Round:           group.round,
			SeasonType:      group.seasonType,
			Week:            group.week,
			HomeTeamID:      teamIDs[0],
			AwayTeamID:      teamIDs[1],
			KickoffAt:       group.kickoffAt,
			ExternalGameKey: group.key,
			Final:           true,
		})
		if err != nil {
			return nil, fmt.Errorf("create game %s: %w", group.key, err)
		}
		gameIDByKey[group.key] = stored.ID
		result.GamesCreated++
	}

	return gameIDByKey, nil
}

func (s *ImportService) upsertStats(
	ctx context.Context,
	records []StatRecord,
	index *PlayerIndex,
	gameIDByKey map[string]string,
	result *ImportResult,
) error {
	var imported, skippedZero, skippedPlayers, skippedGames atomic.Int32

	var failOnce sync.Once
	var firstErr error
	var failed atomic.Bool

	pool, err := ants.NewPool(s.workerCount)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, rec := range records {
		rec := rec
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if failed.Load() || ctx.Err() != nil {
				return
			}
			if rec.Line.IsZero() {
				skippedZero.Add(1)
				return
			}
			gameID, ok := gameIDByKey[rec.GameKey]
			if !ok {
				skippedGames.Add(1)
				return
			}
			matched, ok := index.Resolve(rec)
			if !ok {
				skippedPlayers.Add(1)
				return
			}

			statID, err := s.idGen.NewID()
			if err != nil {
				failOnce.Do(func() {
					firstErr = fmt.Errorf("generate stat id: %w", err)
					failed.Store(true)
				})
				return
			}
			row := gamestat.PlayerGameStat{
				ID:       statID,
				PlayerID: matched.ID,
				GameID:   gameID,
				Line:     rec.Line,
			}
			if err := s.statRepo.Upsert(ctx, row); err != nil {
				failOnce.Do(func() {
					firstErr = fmt.Errorf("upsert stat row: %w", err)
					failed.Store(true)
				})
				return
			}
			imported.Add(1)
		}); err != nil {
			workers.Done()
			return fmt.Errorf("submit record to worker pool: %w", err)
		}
	}

	workers.Wait()
	if firstErr != nil {
		return firstErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	result.Imported = int(imported.Load())
	result.SkippedAllZero = int(skippedZero.Load())
	result.SkippedPlayers = int(skippedPlayers.Load())
	result.SkippedGames = int(skippedGames.Load())
	return nil
}
