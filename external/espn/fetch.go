package espn

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/playoffpool/playoff-pool/internal/domain/game"
	"github.com/playoffpool/playoff-pool/internal/usecase"
)

// weekForRound maps playoff rounds onto ESPN's postseason week
// numbering, which restarts at 1 after the regular season.
var weekForRound = map[game.Round]int{
	game.RoundWildcard:   1,
	game.RoundDivisional: 2,
	game.RoundConference: 3,
	game.RoundSuperBowl:  4,
}

const lastPostWeek = 4

// FetchLatestStats walks back from the Super Bowl week until a
// postseason week yields records. ESPN has no season-state endpoint,
// so a zero seasonYear falls back to the season starting in the
// current league year.
func (c *Client) FetchLatestStats(ctx context.Context, seasonYear int) ([]usecase.StatRecord, error) {
	if seasonYear <= 0 {
		seasonYear = defaultSeasonYear(time.Now())
	}

	for week := lastPostWeek; week >= 1; week-- {
		records, err := c.fetchWeek(ctx, seasonYear, week, string(game.SeasonPost), roundForPostWeek(week))
		if err != nil {
			return nil, err
		}
		if len(records) > 0 {
			return records, nil
		}
	}

	return nil, nil
}

// FetchRounds fetches the selected playoff rounds concurrently and
// flattens the results.
func (c *Client) FetchRounds(ctx context.Context, seasonYear int, rounds []game.Round) ([]usecase.StatRecord, error) {
	if seasonYear <= 0 {
		seasonYear = defaultSeasonYear(time.Now())
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
		seasonYear = defaultSeasonYear(time.Now())
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

	workers := pool.NewWithResults[[]usecase.StatRecord]().WithErrors().WithContext(ctx)
	for _, week := range weeks {
		week := week
		workers.Go(func(ctx context.Context) ([]usecase.StatRecord, error) {
			round := game.RoundWildcard
			if seasonType == string(game.SeasonPost) {
				round = roundForPostWeek(week)
			}
			return c.fetchWeek(ctx, seasonYear, week, seasonType, round)
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

// fetchWeek loads one week's scoreboard and normalizes every game
// summary on it. A game whose summary cannot be fetched is skipped
// with a warning rather than failing the batch; a rejected circuit
// still fails fast.
func (c *Client) fetchWeek(ctx context.Context, seasonYear, week int, seasonType string, round game.Round) ([]usecase.StatRecord, error) {
	board, err := c.fetchScoreboard(ctx, seasonYear, week, seasonType)
	if err != nil {
		return nil, err
	}

	records := make([]usecase.StatRecord, 0)
	for _, event := range board.Events {
		sum, err := c.fetchSummary(ctx, event.ID)
		if err != nil {
			if stderrors.Is(err, usecase.ErrDependencyUnavailable) {
				return nil, err
			}
			c.logger.WarnContext(ctx, "espn summary skipped", "event", event.ID, "error", err)
			continue
		}

		records = append(records, normalizeSummary(sum, eventMeta{
			gameKey:    event.ID,
			round:      round,
			seasonType: seasonType,
			week:       week,
			kickoffAt:  parseEventDate(event.Date),
		})...)
	}

	return records, nil
}

func roundForPostWeek(week int) game.Round {
	for round, w := range weekForRound {
		if w == week {
			return round
		}
	}
	return game.RoundWildcard
}

// defaultSeasonYear names the NFL season in progress: seasons are
// labeled by their starting year, and the playoffs of that season run
// into the next calendar year.
func defaultSeasonYear(now time.Time) int {
	if now.Month() >= time.August {
		return now.Year()
	}
	return now.Year() - 1
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
