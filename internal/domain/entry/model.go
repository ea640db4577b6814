package entry

import "fmt"

// Slot names a roster position within an entry. The slot space is
// fixed: four quarterbacks, three running backs, three wide receivers,
// one flex, one tight end, one kicker, one defense.
type Slot string

const (
	SlotQB1  Slot = "QB1"
	SlotQB2  Slot = "QB2"
	SlotQB3  Slot = "QB3"
	SlotQB4  Slot = "QB4"
	SlotRB1  Slot = "RB1"
	SlotRB2  Slot = "RB2"
	SlotRB3  Slot = "RB3"
	SlotWR1  Slot = "WR1"
	SlotWR2  Slot = "WR2"
	SlotWR3  Slot = "WR3"
	SlotFlex Slot = "FLEX"
	SlotTE   Slot = "TE"
	SlotK    Slot = "K"
	SlotDST  Slot = "DST"
)

var AllSlots = map[Slot]struct{}{
	SlotQB1: {}, SlotQB2: {}, SlotQB3: {}, SlotQB4: {},
	SlotRB1: {}, SlotRB2: {}, SlotRB3: {},
	SlotWR1: {}, SlotWR2: {}, SlotWR3: {},
	SlotFlex: {}, SlotTE: {}, SlotK: {}, SlotDST: {},
}

// Entry is one participant's pool entry with its cached score.
type Entry struct {
	ID              string
	TeamName        string
	ParticipantName string
	Email           string
	Paid            bool
	// TotalPointsCached is derived state. It is rebuilt from stats and
	// overrides by the recalculator, never edited directly.
	TotalPointsCached float64
}

func (e Entry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("entry id is required")
	}
	if e.TeamName == "" {
		return fmt.Errorf("entry team name is required")
	}
	if e.ParticipantName == "" {
		return fmt.Errorf("entry participant name is required")
	}

	return nil
}

// RosterAssignment places one player into one slot of an entry.
type RosterAssignment struct {
	EntryID  string
	PlayerID string
	Slot     Slot
}

func (r RosterAssignment) Validate() error {
	if r.EntryID == "" {
		return fmt.Errorf("roster entry id is required")
	}
	if r.PlayerID == "" {
		return fmt.Errorf("roster player id is required")
	}
	if _, ok := AllSlots[r.Slot]; !ok {
		return fmt.Errorf("invalid roster slot: %s", r.Slot)
	}

	return nil
}
