package game

import (
	"fmt"
	"time"
)

// Round is the playoff round a game belongs to.
type Round string

const (
	RoundWildcard   Round = "Wildcard"
	RoundDivisional Round = "Divisional"
	RoundConference Round = "Conference"
	RoundSuperBowl  Round = "SuperBowl"
)

var AllRounds = map[Round]struct{}{
	RoundWildcard:   {},
	RoundDivisional: {},
	RoundConference: {},
	RoundSuperBowl:  {},
}

// playoffOrder fixes the chronological ordering of postseason rounds.
var playoffOrder = []Round{RoundWildcard, RoundDivisional, RoundConference, RoundSuperBowl}

// SeasonType distinguishes regular-season games from postseason games.
type SeasonType string

const (
	SeasonRegular SeasonType = "regular"
	SeasonPost    SeasonType = "post"
)

var AllSeasonTypes = map[SeasonType]struct{}{
	SeasonRegular: {},
	SeasonPost:    {},
}

// Game is a single matchup that players accumulate stats in.
type Game struct {
	ID         string
	Round      Round
	SeasonType SeasonType
	Week       *int
	HomeTeamID string
	AwayTeamID string
	KickoffAt  time.Time
	// ExternalGameKey is the provider's identifier; games are deduplicated
	// on it across imports.
	ExternalGameKey string
	Final           bool
	HomeScore       *int
	AwayScore       *int
}

func (g Game) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("game id is required")
	}
	if _, ok := AllRounds[g.Round]; !ok {
		return fmt.Errorf("invalid game round: %s", g.Round)
	}
	if _, ok := AllSeasonTypes[g.SeasonType]; !ok {
		return fmt.Errorf("invalid game season type: %s", g.SeasonType)
	}
	if g.HomeTeamID == "" || g.AwayTeamID == "" {
		return fmt.Errorf("game team pairing is required")
	}
	if g.ExternalGameKey == "" {
		return fmt.Errorf("game external key is required")
	}

	return nil
}

// ParseRound validates a provider round string against the known rounds.
func ParseRound(value string) (Round, error) {
	round := Round(value)
	if _, ok := AllRounds[round]; !ok {
		return "", fmt.Errorf("unknown round %q", value)
	}

	return round, nil
}

// RoundFromWeek maps a postseason week number onto its playoff round.
// Sleeper numbers playoff weeks after the 18-week regular season.
func RoundFromWeek(week int) Round {
	switch {
	case week >= 22:
		return RoundSuperBowl
	case week == 21:
		return RoundConference
	case week == 20:
		return RoundDivisional
	default:
		return RoundWildcard
	}
}
