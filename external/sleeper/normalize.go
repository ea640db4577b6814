package sleeper

import (
	"fmt"
	"strconv"
	"time"

	"github.com/playoffpool/playoff-pool/internal/domain/game"
	"github.com/playoffpool/playoff-pool/internal/domain/gamestat"
	"github.com/playoffpool/playoff-pool/internal/domain/player"
	"github.com/playoffpool/playoff-pool/internal/usecase"
)

// rankOnlyKeys are positional-rank fields Sleeper attaches to players
// who did not actually record stats. A stat map holding nothing else
// carries no scoring information.
var rankOnlyKeys = map[string]struct{}{
	"pos_rank_half_ppr": {},
	"pos_rank_ppr":      {},
	"pos_rank_std":      {},
	"rank_half_ppr":     {},
	"rank_ppr":          {},
	"rank_std":          {},
}

// statValue returns the first numeric value among the aliased keys.
// Sleeper payloads have drifted between key spellings across seasons.
func statValue(stat map[string]any, keys ...string) int {
	for _, key := range keys {
		switch value := stat[key].(type) {
		case float64:
			return int(value)
		case int:
			return value
		case string:
			if value == "" {
				continue
			}
			if parsed, err := strconv.ParseFloat(value, 64); err == nil {
				return int(parsed)
			}
		}
	}
	return 0
}

func sumStat(stat map[string]any, keys ...string) int {
	total := 0
	for _, key := range keys {
		total += statValue(stat, key)
	}
	return total
}

func hasOnlyRankFields(stat map[string]any) bool {
	if len(stat) == 0 {
		return false
	}
	for key := range stat {
		if _, ok := rankOnlyKeys[key]; !ok {
			return false
		}
	}
	return true
}

// knownPosition maps a Sleeper position code onto the pool's enum,
// returning "" for positions the pool does not roster (LB, CB, ...)
// so the importer's validation never sees them.
func knownPosition(raw *string) string {
	if raw == nil {
		return ""
	}
	if player.IsDefensePosition(*raw) {
		return string(player.PositionDefense)
	}
	if _, ok := player.AllPositions[player.Position(*raw)]; ok {
		return *raw
	}
	return ""
}

func buildStatLine(stat map[string]any) gamestat.StatLine {
	fg0to39 := sumStat(stat, "fgm_0_19", "fgm_20_29", "fgm_30_39", "fgm_0_39")
	fg40to49 := sumStat(stat, "fgm_40_49")
	fg50to59 := sumStat(stat, "fgm_50_59")
	fg60Plus := sumStat(stat, "fgm_60_plus", "fgm_60+", "fgm_60")
	if fg0to39+fg40to49+fg50to59+fg60Plus == 0 {
		// Some weeks only report a total made count; treat it as
		// short-range so the kicker still scores something.
		fg0to39 = statValue(stat, "fgm")
	}

	fumTwoPt := statValue(stat, "fum_2pt", "fum_2pt_conv", "fum_2pt_return", "def_fum_2pt")
	intTwoPt := statValue(stat, "int_2pt", "int_2pt_conv", "int_2pt_return", "def_int_2pt")
	if fumTwoPt == 0 && intTwoPt == 0 {
		// Older payloads collapse both variants into one counter.
		if combined := statValue(stat, "def_2pt", "def_2pt_conv", "def_2pt_return"); combined > 0 {
			fumTwoPt = combined
		}
	}

	return gamestat.StatLine{
		PassingYards:   statValue(stat, "pass_yd", "pass_yds", "passing_yds"),
		PassingTDs:     statValue(stat, "pass_td", "pass_tds", "passing_td"),
		PassingTwoPt:   statValue(stat, "pass_2pt", "pass_2pt_conv"),
		RushingYards:   statValue(stat, "rush_yd", "rush_yds", "rushing_yds"),
		RushingTDs:     statValue(stat, "rush_td", "rush_tds"),
		RushingTwoPt:   statValue(stat, "rush_2pt", "rush_2pt_conv"),
		ReceivingYards: statValue(stat, "rec_yd", "rec_yds", "receiving_yds"),
		ReceivingTDs:   statValue(stat, "rec_td", "rec_tds"),
		ReceivingTwoPt: statValue(stat, "rec_2pt", "rec_2pt_conv"),
		Receptions:     statValue(stat, "rec", "receptions"),

		FGMade0to39:  fg0to39,
		FGMade40to49: fg40to49,
		FGMade50to59: fg50to59,
		FGMade60Plus: fg60Plus,
		XPMade:       statValue(stat, "xpm", "xp_made"),

		DefInterceptions:    statValue(stat, "def_int", "def_ints"),
		Sacks:               statValue(stat, "def_sack", "def_sacks", "sack"),
		Safeties:            statValue(stat, "def_safety", "def_safeties"),
		DefFumbleRecoveries: statValue(stat, "def_fum_rec", "def_st_fum_rec", "fum_rec"),
		DefSpecialTeamsTDs:  sumStat(stat, "def_td", "def_st_td", "def_pr_td", "def_kr_td"),
		FumbleReturn2PtKick: statValue(stat, "fum_2pt_kick", "fum_2pt_kicking"),
		FumbleReturn2Pt:     fumTwoPt,
		IntReturn2PtKick:    statValue(stat, "int_2pt_kick", "int_2pt_kicking"),
		IntReturn2Pt:        intTwoPt,
	}
}

// normalizeWeek flattens one week's raw stat maps into canonical
// records, dropping rank-only and all-zero players.
func normalizeWeek(
	roster map[string]rosterPlayer,
	stats map[string]map[string]any,
	seasonYear, week int,
	seasonType string,
) []usecase.StatRecord {
	gameKey := fmt.Sprintf("sleeper-%d-%s-week-%d", seasonYear, seasonType, week)
	round := game.RoundFromWeek(week)
	weekValue := week
	now := time.Now()

	records := make([]usecase.StatRecord, 0, len(stats))
	for playerID, stat := range stats {
		if len(stat) == 0 || hasOnlyRankFields(stat) {
			continue
		}

		line := buildStatLine(stat)
		if line.IsZero() {
			continue
		}

		rec := usecase.StatRecord{
			ExternalPlayerID: playerID,
			GameKey:          gameKey,
			Round:            string(round),
			SeasonType:       seasonType,
			Week:             &weekValue,
			KickoffAt:        now,
			Line:             line,
		}
		if p, ok := roster[playerID]; ok {
			rec.PlayerName = p.FullName
			rec.Position = knownPosition(p.Position)
			if p.Team != nil && *p.Team != "" {
				rec.TeamCode = *p.Team
			} else if p.TeamAbbr != nil {
				rec.TeamCode = *p.TeamAbbr
			}
		}
		records = append(records, rec)
	}

	return records
}
