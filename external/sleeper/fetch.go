package sleeper

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/sourcegraph/conc/pool"

	"github.com/playoffpool/playoff-pool/internal/domain/game"
	"github.com/playoffpool/playoff-pool/internal/usecase"
)

// weekForRound maps playoff rounds onto Sleeper's continued week
// numbering after the 18-week regular season.
var weekForRound = map[game.Round]int{
	game.RoundWildcard:   19,
	game.RoundDivisional: 20,
	game.RoundConference: 21,
	game.RoundSuperBowl:  22,
}

const latestStartWeek = 22

// FetchLatestStats walks back from the current (or Super Bowl) week
// until it finds a week with real stats and returns that week's
// records. A zero seasonYear means "ask the provider for the current
// season".
func (c *Client) FetchLatestStats(ctx context.Context, seasonYear int) ([]usecase.StatRecord, error) {
	roster, err := c.fetchRoster(ctx)
	if err != nil {
		return nil, err
	}

	startWeek := latestStartWeek
	seasonType := string(game.SeasonPost)
	if seasonYear == 0 {
		state, err := c.FetchState(ctx)
		if err != nil {
			return nil, err
		}
		seasonYear, err = strconv.Atoi(state.Season)
		if err != nil {
			return nil, fmt.Errorf("parse sleeper season %q: %w", state.Season, err)
		}
		if state.Week > 0 {
			startWeek = state.Week
		}
		if state.SeasonType == string(game.SeasonRegular) {
			seasonType = string(game.SeasonRegular)
		}
	}

	for week := startWeek; week >= 1; week-- {
		stats, usedType, err := c.weekStatsWithFallback(ctx, seasonYear, week, seasonType)
		if err != nil {
			return nil, err
		}
		if stats == nil {
			continue
		}
		return normalizeWeek(roster, stats, seasonYear, week, usedType), nil
	}

	return nil, nil
}

// weekStatsWithFallback tries the requested season type first and the
// opposite one second; around the regular/post boundary the provider
// serves the week under either.
func (c *Client) weekStatsWithFallback(ctx context.Context, seasonYear, week int, seasonType string) (map[string]map[string]any, string, error) {
	stats, err := c.fetchWeekStats(ctx, seasonYear, week, seasonType)
	if err != nil {
		return nil, "", err
	}
	if weekHasStats(stats) {
		return stats, seasonType, nil
	}

	fallback := string(game.SeasonPost)
	if seasonType == string(game.SeasonPost) {
		fallback = string(game.SeasonRegular)
	}
	stats, err = c.fetchWeekStats(ctx, seasonYear, week, fallback)
	if err != nil {
		return nil, "", err
	}
	if weekHasStats(stats) {
		return stats, fallback, nil
	}
	return nil, "", nil
}

func weekHasStats(stats map[string]map[string]any) bool {
	for _, stat := range stats {
		if !hasOnlyRankFields(stat) {
			return true
		}
	}
	return false
}

// FetchRounds fetches the selected playoff rounds concurrently and
// flattens the results.
func (c *Client) FetchRounds(ctx context.Context, seasonYear int, rounds []game.Round) ([]usecase.StatRecord, error) {
	if seasonYear <= 0 {
		return nil, fmt.Errorf("%w: season year is required", usecase.ErrInvalidInput)
	}
	weeks := make([]int, 0, len(rounds))
	for _, round := range rounds {
		week, ok := weekForRound[round]
		if !ok {
			return nil, fmt.Errorf("%w: unknown round %q", usecase.ErrInvalidInput, round)
		}
		weeks = append(weeks, week)
	}

	return c.fetchWeeks(ctx, seasonYear, weeks, string(game.SeasonPost))
}

// FetchWeeks fetches the selected regular-season weeks concurrently.
func (c *Client) FetchWeeks(ctx context.Context, seasonYear int, weeks []int) ([]usecase.StatRecord, error) {
	if seasonYear <= 0 {
		return nil, fmt.Errorf("%w: season year is required", usecase.ErrInvalidInput)
	}
	for _, week := range weeks {
		if week < 1 || week > 18 {
			return nil, fmt.Errorf("%w: regular season week %d is out of range", usecase.ErrInvalidInput, week)
		}
	}

	return c.fetchWeeks(ctx, seasonYear, weeks, string(game.SeasonRegular))
}

func (c *Client) fetchWeeks(ctx context.Context, seasonYear int, weeks []int, seasonType string) ([]usecase.StatRecord, error) {
	weeks = dedupeSorted(weeks)
	if len(weeks) == 0 {
		return nil, nil
	}

	roster, err := c.fetchRoster(ctx)
	if err != nil {
		return nil, err
	}

	workers := pool.NewWithResults[[]usecase.StatRecord]().WithErrors().WithContext(ctx)
	for _, week := range weeks {
		week := week
		workers.Go(func(ctx context.Context) ([]usecase.StatRecord, error) {
			stats, err := c.fetchWeekStats(ctx, seasonYear, week, seasonType)
			if err != nil {
				return nil, err
			}
			return normalizeWeek(roster, stats, seasonYear, week, seasonType), nil
		})
	}

	batches, err := workers.Wait()
	if err != nil {
		return nil, err
	}

	records := make([]usecase.StatRecord, 0)
	for _, batch := range batches {
		records = append(records, batch...)
	}
	return records, nil
}

func dedupeSorted(weeks []int) []int {
	seen := make(map[int]struct{}, len(weeks))
	out := make([]int, 0, len(weeks))
	for _, week := range weeks {
		if _, ok := seen[week]; ok {
			continue
		}
		seen[week] = struct{}{}
		out = append(out, week)
	}
	sort.Ints(out)
	return out
}
