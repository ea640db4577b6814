package player

import (
	"fmt"
	"strings"
)

// Position represents the roster position categories used by pool rules.
type Position string

const (
	PositionQuarterback  Position = "QB"
	PositionRunningBack  Position = "RB"
	PositionWideReceiver Position = "WR"
	PositionTightEnd     Position = "TE"
	PositionKicker       Position = "K"
	PositionDefense      Position = "DST"
)

var AllPositions = map[Position]struct{}{
	PositionQuarterback:  {},
	PositionRunningBack:  {},
	PositionWideReceiver: {},
	PositionTightEnd:     {},
	PositionKicker:       {},
	PositionDefense:      {},
}

// Player is a selectable athlete (or team defense) in the playoff pool.
type Player struct {
	ID       string
	Name     string
	Position Position
	TeamID   string
	IsActive bool
	// ExternalID is the stat provider's identifier, when mapped.
	ExternalID string
	// OverridePoints, when non-nil, replaces every computed per-game total
	// for this player for the whole postseason. Nil means "no override";
	// a pointer to zero overrides the player to zero points.
	OverridePoints *float64
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}

	return nil
}

// IsDefensePosition reports whether a provider position code names a
// defense/special-teams unit.
func IsDefensePosition(value string) bool {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "DST", "DEF", "D/ST":
		return true
	default:
		return false
	}
}
