package espn

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/playoffpool/playoff-pool/internal/domain/game"
	"github.com/playoffpool/playoff-pool/internal/domain/gamestat"
	"github.com/playoffpool/playoff-pool/internal/domain/player"
	"github.com/playoffpool/playoff-pool/internal/usecase"
)

// eventMeta carries the per-game fields every record of one summary
// shares.
type eventMeta struct {
	gameKey    string
	round      game.Round
	seasonType string
	week       int
	kickoffAt  time.Time
}

type defenseTotals struct {
	interceptions    int
	sacks            int
	safeties         int
	fumbleRecoveries int
	defensiveTDs     int
	returnTDs        int
}

type kickerBuckets struct {
	fg0to39  int
	fg40to49 int
	fg50to59 int
	fg60Plus int
}

func (b kickerBuckets) total() int {
	return b.fg0to39 + b.fg40to49 + b.fg50to59 + b.fg60Plus
}

// fieldGoalTextRe pulls the kicker name and distance out of a scoring
// play description like "Harrison Butker 52 Yd Field Goal".
var fieldGoalTextRe = regexp.MustCompile(`(?i)^(.+?)\s+(\d{1,3})\s*Yd\s+Field Goal`)

// statNumber coerces one box-score cell. Ratio cells report the made
// count first ("26/39", "3-4"), so only the leading number counts.
func statNumber(value any) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return 0
		}
		if i := strings.IndexAny(text, "/-"); i > 0 {
			text = text[:i]
		}
		if parsed, err := strconv.ParseFloat(text, 64); err == nil {
			return int(parsed)
		}
	}
	return 0
}

// statByKey finds the column named key and coerces the athlete's value
// in that column.
func statByKey(keys []string, stats []any, key string) int {
	for i, k := range keys {
		if k != key {
			continue
		}
		if i >= len(stats) {
			return 0
		}
		return statNumber(stats[i])
	}
	return 0
}

// fieldGoalBuckets walks the scoring plays and tallies made field
// goals per kicker into distance buckets. The box score only reports
// a made count; distances exist nowhere else in the payload.
func fieldGoalBuckets(plays []scoringPlay) map[string]kickerBuckets {
	buckets := make(map[string]kickerBuckets)
	for _, play := range plays {
		if !isFieldGoalPlay(play) {
			continue
		}
		match := fieldGoalTextRe.FindStringSubmatch(play.Text)
		teamAbbr := play.Team.Abbreviation
		if match == nil || teamAbbr == "" {
			continue
		}
		distance, err := strconv.Atoi(match[2])
		if err != nil {
			continue
		}

		key := usecase.NormalizeName(match[1]) + "|" + teamAbbr
		bucket := buckets[key]
		switch {
		case distance >= 60:
			bucket.fg60Plus++
		case distance >= 50:
			bucket.fg50to59++
		case distance >= 40:
			bucket.fg40to49++
		default:
			bucket.fg0to39++
		}
		buckets[key] = bucket
	}
	return buckets
}

func isFieldGoalPlay(play scoringPlay) bool {
	for _, text := range []string{play.ScoringType.Name, play.Type.Text, play.Text} {
		if strings.Contains(strings.ToLower(text), "field goal") {
			return true
		}
	}
	return false
}

// defenseEligibleAthletes collects the athletes appearing in a team's
// defensive or return tables. Offensive players also show up in the
// fumbles table for their own lost balls; only these athletes may
// credit a recovery to the defense.
func defenseEligibleAthletes(categories []statCategory) map[string]struct{} {
	eligible := make(map[string]struct{})
	for _, category := range categories {
		switch strings.ToLower(category.Name) {
		case "defensive", "interceptions", "kickreturns", "puntreturns":
			for _, line := range category.Athletes {
				if id := line.Athlete.ID; id != "" {
					eligible[id] = struct{}{}
				}
			}
		}
	}
	return eligible
}

// knownPosition maps an ESPN position code onto the pool's enum,
// returning "" for positions the pool does not roster so the
// importer's validation never sees them.
func knownPosition(raw string) string {
	if player.IsDefensePosition(raw) {
		return string(player.PositionDefense)
	}
	if _, ok := player.AllPositions[player.Position(raw)]; ok {
		return raw
	}
	return ""
}

// normalizeSummary flattens one game summary into canonical records:
// one per athlete with non-zero counting stats, plus one team-defense
// record per side. Defense arrives keyed by team code only; the
// resolver matches it to the DST roster slot.
func normalizeSummary(sum summary, meta eventMeta) []usecase.StatRecord {
	buckets := fieldGoalBuckets(sum.ScoringPlays)
	weekValue := meta.week

	athleteOrder := make([]string, 0, 64)
	byAthlete := make(map[string]*usecase.StatRecord, 64)
	defenseOrder := make([]string, 0, 2)
	defenseByTeam := make(map[string]*defenseTotals, 2)

	defense := func(teamAbbr string) *defenseTotals {
		if d, ok := defenseByTeam[teamAbbr]; ok {
			return d
		}
		d := &defenseTotals{}
		defenseByTeam[teamAbbr] = d
		defenseOrder = append(defenseOrder, teamAbbr)
		return d
	}

	for _, side := range sum.Boxscore.Players {
		teamAbbr := side.Team.Abbreviation
		if teamAbbr == "" {
			continue
		}
		eligible := defenseEligibleAthletes(side.Statistics)

		for _, category := range side.Statistics {
			categoryName := strings.ToLower(category.Name)
			keys := category.Keys

			for _, line := range category.Athletes {
				athleteID := line.Athlete.ID
				if athleteID == "" {
					continue
				}

				rec, ok := byAthlete[athleteID]
				if !ok {
					rec = &usecase.StatRecord{
						ExternalPlayerID: athleteID,
						PlayerName:       line.Athlete.DisplayName,
						TeamCode:         teamAbbr,
						Position:         knownPosition(line.Athlete.Position.Abbreviation),
						GameKey:          meta.gameKey,
						Round:            string(meta.round),
						SeasonType:       meta.seasonType,
						Week:             &weekValue,
						KickoffAt:        meta.kickoffAt,
					}
					byAthlete[athleteID] = rec
					athleteOrder = append(athleteOrder, athleteID)
				}
				stats := line.Stats

				switch categoryName {
				case "passing":
					rec.Line.PassingYards += statByKey(keys, stats, "passingYards")
					rec.Line.PassingTDs += statByKey(keys, stats, "passingTouchdowns")
				case "rushing":
					rec.Line.RushingYards += statByKey(keys, stats, "rushingYards")
					rec.Line.RushingTDs += statByKey(keys, stats, "rushingTouchdowns")
				case "receiving":
					rec.Line.Receptions += statByKey(keys, stats, "receptions")
					rec.Line.ReceivingYards += statByKey(keys, stats, "receivingYards")
					rec.Line.ReceivingTDs += statByKey(keys, stats, "receivingTouchdowns")
				case "kicking":
					fgMade := statByKey(keys, stats, "fieldGoalsMade/fieldGoalAttempts")
					xpMade := statByKey(keys, stats, "extraPointsMade/extraPointAttempts")
					if fgMade == 0 && xpMade == 0 {
						break
					}
					rec.Line.XPMade += xpMade
					if bucket, ok := buckets[usecase.NormalizeName(line.Athlete.DisplayName)+"|"+teamAbbr]; ok {
						// Makes beyond the parsed scoring plays count as
						// short range rather than vanishing.
						remainder := fgMade - bucket.total()
						if remainder < 0 {
							remainder = 0
						}
						rec.Line.FGMade0to39 = bucket.fg0to39 + remainder
						rec.Line.FGMade40to49 = bucket.fg40to49
						rec.Line.FGMade50to59 = bucket.fg50to59
						rec.Line.FGMade60Plus = bucket.fg60Plus
					} else {
						rec.Line.FGMade0to39 += fgMade
					}
				case "defensive":
					d := defense(teamAbbr)
					d.sacks += statByKey(keys, stats, "sacks")
					d.defensiveTDs += statByKey(keys, stats, "defensiveTouchdowns")
					d.safeties += statByKey(keys, stats, "safeties")
				case "interceptions":
					d := defense(teamAbbr)
					d.interceptions += statByKey(keys, stats, "interceptions")
					d.returnTDs += statByKey(keys, stats, "interceptionTouchdowns")
				case "fumbles":
					recovered := statByKey(keys, stats, "fumblesRecovered")
					if recovered > 0 {
						if _, ok := eligible[athleteID]; ok {
							defense(teamAbbr).fumbleRecoveries += recovered
						}
					}
				case "kickreturns":
					defense(teamAbbr).returnTDs += statByKey(keys, stats, "kickReturnTouchdowns")
				case "puntreturns":
					defense(teamAbbr).returnTDs += statByKey(keys, stats, "puntReturnTouchdowns")
				}
			}
		}
	}

	records := make([]usecase.StatRecord, 0, len(athleteOrder)+len(defenseOrder))
	for _, athleteID := range athleteOrder {
		rec := byAthlete[athleteID]
		if rec.Line.IsZero() {
			continue
		}
		records = append(records, *rec)
	}

	for _, teamAbbr := range defenseOrder {
		d := defenseByTeam[teamAbbr]
		// Defensive touchdowns also appear in the per-player return
		// tables; take the larger count instead of double-crediting.
		returnTDs := d.returnTDs
		if d.defensiveTDs > returnTDs {
			returnTDs = d.defensiveTDs
		}
		line := gamestat.StatLine{
			DefInterceptions:    d.interceptions,
			Sacks:               d.sacks,
			Safeties:            d.safeties,
			DefFumbleRecoveries: d.fumbleRecoveries,
			DefSpecialTeamsTDs:  returnTDs,
		}
		if line.IsZero() {
			continue
		}
		records = append(records, usecase.StatRecord{
			TeamCode:   teamAbbr,
			Position:   string(player.PositionDefense),
			GameKey:    meta.gameKey,
			Round:      string(meta.round),
			SeasonType: meta.seasonType,
			Week:       &weekValue,
			KickoffAt:  meta.kickoffAt,
			Line:       line,
		})
	}

	return records
}

// parseEventDate handles ESPN's minute-precision timestamps
// ("2025-01-19T01:00Z") alongside full RFC 3339.
func parseEventDate(raw string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z07:00"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	return time.Now()
}
