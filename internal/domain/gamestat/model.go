package gamestat

import "fmt"

// StatLine holds the raw counting stats recorded for one player in one
// game. Fields absent from a provider payload stay zero.
type StatLine struct {
	PassingYards   int
	PassingTDs     int
	PassingTwoPt   int
	RushingYards   int
	RushingTDs     int
	RushingTwoPt   int
	ReceivingYards int
	ReceivingTDs   int
	ReceivingTwoPt int
	Receptions     int

	FGMade0to39  int
	FGMade40to49 int
	FGMade50to59 int
	FGMade60Plus int
	XPMade       int

	DefInterceptions    int
	Sacks               int
	Safeties            int
	DefFumbleRecoveries int
	DefSpecialTeamsTDs  int
	FumbleReturn2PtKick int
	FumbleReturn2Pt     int
	IntReturn2PtKick    int
	IntReturn2Pt        int

	// OverridePoints, when non-nil, replaces the computed total for this
	// single game. A pointer to zero pins the game to zero points.
	OverridePoints *float64
}

// IsZero reports whether every counting stat is zero and no override is
// set. Such lines carry no information and are skipped on import.
func (s StatLine) IsZero() bool {
	if s.OverridePoints != nil {
		return false
	}

	return s == StatLine{}
}

// PlayerGameStat ties a stat line to a player and a game. At most one
// row exists per (PlayerID, GameID) pair; imports fully replace it.
type PlayerGameStat struct {
	ID       string
	PlayerID string
	GameID   string
	Line     StatLine
}

func (p PlayerGameStat) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("stat id is required")
	}
	if p.PlayerID == "" {
		return fmt.Errorf("stat player id is required")
	}
	if p.GameID == "" {
		return fmt.Errorf("stat game id is required")
	}

	return nil
}
