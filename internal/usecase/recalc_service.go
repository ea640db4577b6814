package usecase

import (
	"context"
	"fmt"

	"github.com/playoffpool/playoff-pool/internal/domain/entry"
	"github.com/playoffpool/playoff-pool/internal/domain/gamestat"
	"github.com/playoffpool/playoff-pool/internal/domain/player"
	"github.com/playoffpool/playoff-pool/internal/domain/scoring"
)

// RecalcService rebuilds every entry's cached total from the persisted
// stat rows and current overrides. It derives state only, so it is
// safe to run repeatedly and concurrently with imports.
type RecalcService struct {
	statRepo   gamestat.Repository
	playerRepo player.Repository
	entryRepo  entry.Repository
}

func NewRecalcService(
	statRepo gamestat.Repository,
	playerRepo player.Repository,
	entryRepo entry.Repository,
) *RecalcService {
	return &RecalcService{
		statRepo:   statRepo,
		playerRepo: playerRepo,
		entryRepo:  entryRepo,
	}
}

func (s *RecalcService) RecalculateAll(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalcService.RecalculateAll")
	defer span.End()

	stats, err := s.statRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list stat rows: %w", err)
	}
	pointsByPlayer := make(map[string]float64)
	for _, stat := range stats {
		pointsByPlayer[stat.PlayerID] += scoring.Points(stat.Line)
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	overrideByPlayer := make(map[string]*float64, len(players))
	for _, p := range players {
		overrideByPlayer[p.ID] = p.OverridePoints
	}

	rosters, err := s.entryRepo.ListAllRosters(ctx)
	if err != nil {
		return fmt.Errorf("list rosters: %w", err)
	}
	entryTotals := make(map[string]float64)
	for _, assignment := range rosters {
		points := pointsByPlayer[assignment.PlayerID]
		if override := overrideByPlayer[assignment.PlayerID]; override != nil {
			points = *override
		}
		entryTotals[assignment.EntryID] += points
	}

	entries, err := s.entryRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}
	for _, e := range entries {
		if err := s.entryRepo.UpdateCachedTotal(ctx, e.ID, entryTotals[e.ID]); err != nil {
			return fmt.Errorf("update entry %s total: %w", e.ID, err)
		}
	}
	return nil
}
