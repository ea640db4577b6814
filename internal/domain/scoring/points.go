// Package scoring maps per-game stat lines to fantasy points. It is
// pure computation with no I/O so both the importer and the read API
// score identically.
package scoring

import "github.com/playoffpool/playoff-pool/internal/domain/gamestat"

// LineItem is one non-zero contribution to a game's total.
type LineItem struct {
	Label  string  `json:"label"`
	Stat   float64 `json:"stat"`
	Points float64 `json:"points"`
	Unit   string  `json:"unit,omitempty"`
}

// Breakdown is the scored view of a single stat line.
type Breakdown struct {
	TotalPoints      float64    `json:"totalPoints"`
	Items            []LineItem `json:"breakdown"`
	IsManualOverride bool       `json:"isManualOverride"`
}

type rule struct {
	label string
	unit  string
	stat  func(gamestat.StatLine) int
	score func(stat int) float64
}

func perUnit(points float64) func(int) float64 {
	return func(stat int) float64 { return float64(stat) * points }
}

func yardBucket(size int) func(int) float64 {
	return func(yards int) float64 {
		// Floor division so negative yardage keeps costing a full
		// bucket: -15 rushing yards at size 10 is -2, not -1.
		quotient := yards / size
		if yards%size != 0 && yards < 0 {
			quotient--
		}
		return float64(quotient)
	}
}

// rules fixes both the scoring values and the breakdown ordering.
var rules = []rule{
	{"Passing Yards", "yds", func(s gamestat.StatLine) int { return s.PassingYards }, yardBucket(20)},
	{"Passing TD", "TD", func(s gamestat.StatLine) int { return s.PassingTDs }, perUnit(6)},
	{"Passing 2PT", "", func(s gamestat.StatLine) int { return s.PassingTwoPt }, perUnit(2)},
	{"Rushing Yards", "yds", func(s gamestat.StatLine) int { return s.RushingYards }, yardBucket(10)},
	{"Rushing TD", "TD", func(s gamestat.StatLine) int { return s.RushingTDs }, perUnit(6)},
	{"Rushing 2PT", "", func(s gamestat.StatLine) int { return s.RushingTwoPt }, perUnit(2)},
	{"Receiving Yards", "yds", func(s gamestat.StatLine) int { return s.ReceivingYards }, yardBucket(10)},
	{"Receiving TD", "TD", func(s gamestat.StatLine) int { return s.ReceivingTDs }, perUnit(6)},
	{"Receiving 2PT", "", func(s gamestat.StatLine) int { return s.ReceivingTwoPt }, perUnit(2)},
	{"Receptions", "rec", func(s gamestat.StatLine) int { return s.Receptions }, perUnit(1)},
	{"FG Made (0-39)", "FG", func(s gamestat.StatLine) int { return s.FGMade0to39 }, perUnit(3)},
	{"FG Made (40-49)", "FG", func(s gamestat.StatLine) int { return s.FGMade40to49 }, perUnit(4)},
	{"FG Made (50-59)", "FG", func(s gamestat.StatLine) int { return s.FGMade50to59 }, perUnit(5)},
	{"FG Made (60+)", "FG", func(s gamestat.StatLine) int { return s.FGMade60Plus }, perUnit(6)},
	{"XP Made", "XP", func(s gamestat.StatLine) int { return s.XPMade }, perUnit(1)},
	{"Fumble Recoveries", "", func(s gamestat.StatLine) int { return s.DefFumbleRecoveries }, perUnit(2)},
	{"Def/ST TD", "TD", func(s gamestat.StatLine) int { return s.DefSpecialTeamsTDs }, perUnit(9)},
	{"Interceptions", "INT", func(s gamestat.StatLine) int { return s.DefInterceptions }, perUnit(2)},
	{"Sacks", "", func(s gamestat.StatLine) int { return s.Sacks }, perUnit(1)},
	{"Safeties", "", func(s gamestat.StatLine) int { return s.Safeties }, perUnit(2)},
	{"Fumble Return 2PT (Kick)", "", func(s gamestat.StatLine) int { return s.FumbleReturn2PtKick }, perUnit(2)},
	{"Fumble Return 2PT", "", func(s gamestat.StatLine) int { return s.FumbleReturn2Pt }, perUnit(2)},
	{"INT Return 2PT (Kick)", "", func(s gamestat.StatLine) int { return s.IntReturn2PtKick }, perUnit(2)},
	{"INT Return 2PT", "", func(s gamestat.StatLine) int { return s.IntReturn2Pt }, perUnit(2)},
}

// Compute scores one stat line. A manual override on the line replaces
// the entire computation with a single "Manual Override" item.
func Compute(line gamestat.StatLine) Breakdown {
	if line.OverridePoints != nil {
		override := *line.OverridePoints
		return Breakdown{
			TotalPoints: override,
			Items: []LineItem{
				{Label: "Manual Override", Stat: override, Points: override},
			},
			IsManualOverride: true,
		}
	}

	breakdown := Breakdown{Items: []LineItem{}}
	for _, r := range rules {
		stat := r.stat(line)
		points := r.score(stat)
		breakdown.TotalPoints += points
		if points == 0 {
			continue
		}
		breakdown.Items = append(breakdown.Items, LineItem{
			Label:  r.label,
			Stat:   float64(stat),
			Points: points,
			Unit:   r.unit,
		})
	}

	return breakdown
}

// Points returns only the total for a stat line.
func Points(line gamestat.StatLine) float64 {
	return Compute(line).TotalPoints
}

// PlayerTotal sums game totals for one player, honoring a season-wide
// override that replaces every per-game value.
func PlayerTotal(seasonOverride *float64, lines []gamestat.StatLine) float64 {
	if seasonOverride != nil {
		return *seasonOverride
	}

	var total float64
	for _, line := range lines {
		total += Points(line)
	}

	return total
}
