package espn

import (
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/playoffpool/playoff-pool/internal/domain/game"
	"github.com/playoffpool/playoff-pool/internal/usecase"
)

func decodeSummary(t *testing.T, raw string) summary {
	t.Helper()
	var sum summary
	if err := sonic.Unmarshal([]byte(raw), &sum); err != nil {
		t.Fatalf("decode summary fixture: %v", err)
	}
	return sum
}

func testMeta() eventMeta {
	return eventMeta{
		gameKey:    "401547999",
		round:      game.RoundDivisional,
		seasonType: string(game.SeasonPost),
		week:       2,
		kickoffAt:  time.Date(2025, 1, 19, 1, 0, 0, 0, time.UTC),
	}
}

func recordFor(t *testing.T, records []usecase.StatRecord, externalID string) usecase.StatRecord {
	t.Helper()
	for _, rec := range records {
		if rec.ExternalPlayerID == externalID {
			return rec
		}
	}
	t.Fatalf("no record for external id %q in %d records", externalID, len(records))
	return usecase.StatRecord{}
}

func dstFor(t *testing.T, records []usecase.StatRecord, teamAbbr string) usecase.StatRecord {
	t.Helper()
	for _, rec := range records {
		if rec.Position == "DST" && rec.TeamCode == teamAbbr {
			return rec
		}
	}
	t.Fatalf("no defense record for %q", teamAbbr)
	return usecase.StatRecord{}
}

func TestNormalizeSummaryOffense(t *testing.T) {
	sum := decodeSummary(t, `{
		"boxscore": {"players": [
			{"team": {"abbreviation": "KC"}, "statistics": [
				{"name": "passing",
				 "keys": ["completions/passingAttempts", "passingYards", "passingTouchdowns"],
				 "athletes": [
					{"athlete": {"id": "3139477", "displayName": "Patrick Mahomes", "position": {"abbreviation": "QB"}},
					 "stats": ["26/39", "305", "3"]}
				 ]},
				{"name": "rushing",
				 "keys": ["rushingAttempts", "rushingYards", "rushingTouchdowns"],
				 "athletes": [
					{"athlete": {"id": "3139477", "displayName": "Patrick Mahomes", "position": {"abbreviation": "QB"}},
					 "stats": ["5", "21", "0"]},
					{"athlete": {"id": "4241985", "displayName": "Isiah Pacheco", "position": {"abbreviation": "RB"}},
					 "stats": ["18", "89", "1"]}
				 ]},
				{"name": "receiving",
				 "keys": ["receptions", "receivingYards", "receivingTouchdowns"],
				 "athletes": [
					{"athlete": {"id": "4360248", "displayName": "Rashee Rice", "position": {"abbreviation": "WR"}},
					 "stats": ["8", "130", "1"]},
					{"athlete": {"id": "9999999", "displayName": "Deep Reserve", "position": {"abbreviation": "WR"}},
					 "stats": ["0", "0", "0"]}
				 ]}
			]}
		]},
		"scoringPlays": []
	}`)

	records := normalizeSummary(sum, testMeta())

	mahomes := recordFor(t, records, "3139477")
	if mahomes.Line.PassingYards != 305 || mahomes.Line.PassingTDs != 3 {
		t.Fatalf("passing line = %+v", mahomes.Line)
	}
	if mahomes.Line.RushingYards != 21 {
		t.Fatalf("rushing yards folded into same record = %d, want 21", mahomes.Line.RushingYards)
	}
	if mahomes.Position != "QB" || mahomes.TeamCode != "KC" {
		t.Fatalf("identity = %q %q", mahomes.Position, mahomes.TeamCode)
	}
	if mahomes.GameKey != "401547999" || mahomes.Round != "Divisional" {
		t.Fatalf("game fields = %q %q", mahomes.GameKey, mahomes.Round)
	}
	if mahomes.Week == nil || *mahomes.Week != 2 {
		t.Fatalf("week = %v, want 2", mahomes.Week)
	}

	rice := recordFor(t, records, "4360248")
	if rice.Line.Receptions != 8 || rice.Line.ReceivingYards != 130 || rice.Line.ReceivingTDs != 1 {
		t.Fatalf("receiving line = %+v", rice.Line)
	}

	// An all-zero box-score row never becomes a record.
	for _, rec := range records {
		if rec.ExternalPlayerID == "9999999" {
			t.Fatalf("zero-line athlete was kept")
		}
	}
}

func TestNormalizeSummaryKickerBuckets(t *testing.T) {
	sum := decodeSummary(t, `{
		"boxscore": {"players": [
			{"team": {"abbreviation": "KC"}, "statistics": [
				{"name": "kicking",
				 "keys": ["fieldGoalsMade/fieldGoalAttempts", "extraPointsMade/extraPointAttempts"],
				 "athletes": [
					{"athlete": {"id": "3055899", "displayName": "Harrison Butker", "position": {"abbreviation": "PK"}},
					 "stats": ["3/3", "2/2"]}
				 ]}
			]}
		]},
		"scoringPlays": [
			{"text": "Harrison Butker 52 Yd Field Goal", "team": {"abbreviation": "KC"}, "scoringType": {"name": "field-goal"}},
			{"text": "Harrison Butker 23 Yd Field Goal", "team": {"abbreviation": "KC"}, "type": {"text": "Field Goal Good"}},
			{"text": "Rashee Rice 32 Yd pass from Patrick Mahomes", "team": {"abbreviation": "KC"}, "scoringType": {"name": "touchdown"}}
		]
	}`)

	records := normalizeSummary(sum, testMeta())
	butker := recordFor(t, records, "3055899")

	// Two plays carry distances; the third make falls back to short
	// range so it still scores.
	if butker.Line.FGMade50to59 != 1 {
		t.Fatalf("fg 50-59 = %d, want 1", butker.Line.FGMade50to59)
	}
	if butker.Line.FGMade0to39 != 2 {
		t.Fatalf("fg 0-39 = %d, want 2", butker.Line.FGMade0to39)
	}
	if butker.Line.XPMade != 2 {
		t.Fatalf("xp = %d, want 2", butker.Line.XPMade)
	}
}

func TestNormalizeSummaryKickerWithoutScoringPlays(t *testing.T) {
	sum := decodeSummary(t, `{
		"boxscore": {"players": [
			{"team": {"abbreviation": "BUF"}, "statistics": [
				{"name": "kicking",
				 "keys": ["fieldGoalsMade/fieldGoalAttempts", "extraPointsMade/extraPointAttempts"],
				 "athletes": [
					{"athlete": {"id": "2985659", "displayName": "Tyler Bass", "position": {"abbreviation": "PK"}},
					 "stats": ["2/2", "1/1"]}
				 ]}
			]}
		]},
		"scoringPlays": []
	}`)

	records := normalizeSummary(sum, testMeta())
	bass := recordFor(t, records, "2985659")
	if bass.Line.FGMade0to39 != 2 || bass.Line.FGMade40to49 != 0 {
		t.Fatalf("fallback buckets = %+v", bass.Line)
	}
}

func TestNormalizeSummaryTeamDefense(t *testing.T) {
	sum := decodeSummary(t, `{
		"boxscore": {"players": [
			{"team": {"abbreviation": "PIT"}, "statistics": [
				{"name": "defensive",
				 "keys": ["totalTackles", "sacks", "defensiveTouchdowns", "safeties"],
				 "athletes": [
					{"athlete": {"id": "3123075", "displayName": "T.J. Watt", "position": {"abbreviation": "LB"}},
					 "stats": ["7", "2", "0", "0"]},
					{"athlete": {"id": "4240637", "displayName": "Alex Highsmith", "position": {"abbreviation": "LB"}},
					 "stats": ["4", "1.5", "1", "0"]}
				 ]},
				{"name": "interceptions",
				 "keys": ["interceptions", "interceptionTouchdowns"],
				 "athletes": [
					{"athlete": {"id": "4253333", "displayName": "Joey Porter Jr.", "position": {"abbreviation": "CB"}},
					 "stats": ["1", "0"]}
				 ]},
				{"name": "fumbles",
				 "keys": ["fumbles", "fumblesLost", "fumblesRecovered"],
				 "athletes": [
					{"athlete": {"id": "3123075", "displayName": "T.J. Watt", "position": {"abbreviation": "LB"}},
					 "stats": ["0", "0", "1"]},
					{"athlete": {"id": "4361777", "displayName": "Own Quarterback", "position": {"abbreviation": "QB"}},
					 "stats": ["1", "1", "1"]}
				 ]},
				{"name": "kickreturns",
				 "keys": ["kickReturns", "kickReturnTouchdowns"],
				 "athletes": [
					{"athlete": {"id": "4427366", "displayName": "Speedy Returner", "position": {"abbreviation": "WR"}},
					 "stats": ["3", "1"]}
				 ]}
			]}
		]},
		"scoringPlays": []
	}`)

	records := normalizeSummary(sum, testMeta())
	dst := dstFor(t, records, "PIT")

	if dst.Line.Sacks != 3 {
		t.Fatalf("sacks = %d, want 3", dst.Line.Sacks)
	}
	if dst.Line.DefInterceptions != 1 {
		t.Fatalf("interceptions = %d, want 1", dst.Line.DefInterceptions)
	}
	// Watt appears in the defensive table, so his recovery counts; the
	// quarterback falling on his own ball does not.
	if dst.Line.DefFumbleRecoveries != 1 {
		t.Fatalf("fumble recoveries = %d, want 1", dst.Line.DefFumbleRecoveries)
	}
	// One defensive TD and two return-table TDs (int 0 + kick 1): the
	// larger of the two tallies wins.
	if dst.Line.DefSpecialTeamsTDs != 1 {
		t.Fatalf("return tds = %d, want 1", dst.Line.DefSpecialTeamsTDs)
	}
	if dst.ExternalPlayerID != "" {
		t.Fatalf("defense record carries an athlete id %q", dst.ExternalPlayerID)
	}
}

func TestStatNumber(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{"305", 305},
		{"26/39", 26},
		{"3-4", 3},
		{"2.5", 2},
		{float64(7), 7},
		{"", 0},
		{nil, 0},
		{"n/a", 0},
	}

	for _, tc := range tests {
		if got := statNumber(tc.in); got != tc.want {
			t.Fatalf("statNumber(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseEventDate(t *testing.T) {
	got := parseEventDate("2025-01-19T01:00Z")
	want := time.Date(2025, 1, 19, 1, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("parsed = %v, want %v", got, want)
	}

	if parseEventDate("garbage").IsZero() {
		t.Fatalf("unparseable date must fall back to a non-zero time")
	}
}
