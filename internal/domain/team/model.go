package team

import (
	"fmt"
	"strings"
)

// Conference is the NFL conference a team belongs to.
type Conference string

const (
	ConferenceAFC Conference = "AFC"
	ConferenceNFC Conference = "NFC"
)

var AllConferences = map[Conference]struct{}{
	ConferenceAFC: {},
	ConferenceNFC: {},
}

// Team is a real NFL club referenced by players and games.
type Team struct {
	ID              string
	Name            string
	Abbreviation    string
	Conference      Conference
	Seed            *int
	MadePlayoffs    bool
	EliminatedRound string
	ExternalID      string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if strings.TrimSpace(t.Abbreviation) == "" {
		return fmt.Errorf("team abbreviation is required")
	}
	if _, ok := AllConferences[t.Conference]; !ok {
		return fmt.Errorf("invalid team conference: %s", t.Conference)
	}

	return nil
}

// NormalizeAbbreviation folds a provider team code into the canonical form
// used for lookups.
func NormalizeAbbreviation(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
