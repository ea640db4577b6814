package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/playoffpool/playoff-pool/internal/domain/entry"
	"github.com/playoffpool/playoff-pool/internal/domain/game"
	"github.com/playoffpool/playoff-pool/internal/domain/gamestat"
	"github.com/playoffpool/playoff-pool/internal/domain/player"
	"github.com/playoffpool/playoff-pool/internal/domain/team"
)

type importFixture struct {
	teams   *stubTeamRepo
	players *stubPlayerRepo
	games   *stubGameRepo
	stats   *stubStatRepo
	entries *stubEntryRepo
	recalc  *recalcRecorder
	service *ImportService
}

func newImportFixture(t *testing.T) *importFixture {
	t.Helper()

	teams := &stubTeamRepo{teams: []team.Team{
		{ID: "t-kc", Name: "Kansas City Chiefs", Abbreviation: "KC", Conference: team.ConferenceAFC},
		{ID: "t-pit", Name: "Pittsburgh Steelers", Abbreviation: "PIT", Conference: team.ConferenceAFC},
	}}
	players := &stubPlayerRepo{players: []player.Player{
		{ID: "p-qb", Name: "Patrick Mahomes", Position: player.PositionQuarterback, TeamID: "t-kc", ExternalID: "123"},
		{ID: "p-dst", Name: "Pittsburgh Steelers", Position: player.PositionDefense, TeamID: "t-pit"},
	}}
	games := newStubGameRepo()
	stats := newStubStatRepo()
	entries := newStubEntryRepo(
		[]entry.Entry{{ID: "e1", TeamName: "The Favorites", ParticipantName: "Sam"}},
		[]entry.RosterAssignment{
			{EntryID: "e1", PlayerID: "p-qb", Slot: entry.SlotQB1},
			{EntryID: "e1", PlayerID: "p-dst", Slot: entry.SlotDST},
		},
	)
	recalc := &recalcRecorder{inner: NewRecalcService(stats, players, entries)}

	return &importFixture{
		teams:   teams,
		players: players,
		games:   games,
		stats:   stats,
		entries: entries,
		recalc:  recalc,
		service: NewImportService(teams, players, games, stats, recalc, &seqIDGenerator{}, 4),
	}
}

func passingRecord() StatRecord {
	return StatRecord{
		ExternalPlayerID: "123",
		PlayerName:       "Patrick Mahomes",
		TeamCode:         "KC",
		Position:         "QB",
		GameKey:          "G1",
		Round:            "Wildcard",
		KickoffAt:        time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC),
		Line:             gamestat.StatLine{PassingYards: 305, PassingTDs: 3},
	}
}

func TestImportEndToEnd(t *testing.T) {
	f := newImportFixture(t)

	result, err := f.service.Import(context.Background(), []StatRecord{passingRecord()})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Imported != 1 || result.GamesCreated != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	rows, _ := f.stats.List(context.Background())
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].PlayerID != "p-qb" {
		t.Fatalf("row player = %s, want p-qb", rows[0].PlayerID)
	}
	if got := f.recalc.calls.Load(); got != 1 {
		t.Fatalf("recalc calls = %d, want 1", got)
	}
	if total := f.entries.totals["e1"]; total != 33 {
		t.Fatalf("entry total = %v, want 33", total)
	}
}

func TestImportIdempotent(t *testing.T) {
	f := newImportFixture(t)
	batch := []StatRecord{passingRecord()}

	if _, err := f.service.Import(context.Background(), batch); err != nil {
		t.Fatalf("first import: %v", err)
	}
	result, err := f.service.Import(context.Background(), batch)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}

	rows, _ := f.stats.List(context.Background())
	if len(rows) != 1 {
		t.Fatalf("rows after re-import = %d, want 1", len(rows))
	}
	games, _ := f.games.List(context.Background())
	if len(games) != 1 {
		t.Fatalf("games after re-import = %d, want 1", len(games))
	}
	if result.GamesCreated != 0 || result.GamesUpdated != 1 {
		t.Fatalf("unexpected second-run result: %+v", result)
	}
}

func TestImportDefenseRecord(t *testing.T) {
	f := newImportFixture(t)

	result, err := f.service.Import(context.Background(), []StatRecord{{
		TeamCode: "PIT",
		Position: "DST",
		GameKey:  "G2",
		Round:    "Divisional",
		Line:     gamestat.StatLine{Sacks: 4, DefInterceptions: 2},
	}})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Imported != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	rows, _ := f.stats.ListByPlayer(context.Background(), "p-dst")
	if len(rows) != 1 {
		t.Fatalf("dst rows = %d, want 1", len(rows))
	}
	if total := f.entries.totals["e1"]; total != 8 {
		t.Fatalf("entry total = %v, want 8", total)
	}
}

func TestImportSoftSkips(t *testing.T) {
	f := newImportFixture(t)

	records := []StatRecord{
		passingRecord(),
		{
			// All-zero line carries no information.
			PlayerName: "Patrick Mahomes",
			TeamCode:   "KC",
			GameKey:    "G1",
			Round:      "Wildcard",
		},
		{
			// Practice-squad noise the pool never rostered.
			PlayerName: "Totally Unknown",
			TeamCode:   "KC",
			GameKey:    "G1",
			Round:      "Wildcard",
			Line:       gamestat.StatLine{RushingYards: 40},
		},
	}

	result, err := f.service.Import(context.Background(), records)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Imported != 1 || result.SkippedAllZero != 1 || result.SkippedPlayers != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestImportValidationAbortsBeforeWrites(t *testing.T) {
	f := newImportFixture(t)

	tests := []struct {
		name string
		rec  StatRecord
	}{
		{"missing game key", StatRecord{Round: "Wildcard", Line: gamestat.StatLine{Sacks: 1}}},
		{"bad round", StatRecord{GameKey: "G1", Round: "Playoffs", Line: gamestat.StatLine{Sacks: 1}}},
		{"bad position", StatRecord{GameKey: "G1", Round: "Wildcard", Position: "LB", Line: gamestat.StatLine{Sacks: 1}}},
		{"bad season type", StatRecord{GameKey: "G1", Round: "Wildcard", SeasonType: "preseason", Line: gamestat.StatLine{Sacks: 1}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Import(context.Background(), []StatRecord{passingRecord(), tc.rec})
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
			rows, _ := f.stats.List(context.Background())
			if len(rows) != 0 {
				t.Fatalf("rows written despite validation error: %d", len(rows))
			}
			if got := f.recalc.calls.Load(); got != 0 {
				t.Fatalf("recalc ran despite validation error")
			}
		})
	}
}

func TestImportEmptyBatchIsNoop(t *testing.T) {
	f := newImportFixture(t)

	result, err := f.service.Import(context.Background(), nil)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result != (ImportResult{}) {
		t.Fatalf("unexpected result: %+v", result)
	}
	if got := f.recalc.calls.Load(); got != 0 {
		t.Fatalf("recalc calls = %d, want 0", got)
	}
}

func TestImportStorageErrorPropagates(t *testing.T) {
	f := newImportFixture(t)
	f.stats.upsertErr = errors.New("connection reset")

	_, err := f.service.Import(context.Background(), []StatRecord{passingRecord()})
	if err == nil {
		t.Fatalf("expected storage error")
	}
	if got := f.recalc.calls.Load(); got != 0 {
		t.Fatalf("recalc must not run after a storage failure")
	}
}

func TestImportPlaceholderPairing(t *testing.T) {
	f := newImportFixture(t)

	// No team codes resolve for this game key; the importer still pairs
	// the first two known teams so the row has somewhere to live.
	result, err := f.service.Import(context.Background(), []StatRecord{{
		ExternalPlayerID: "123",
		GameKey:          "G9",
		Round:            "Conference",
		Line:             gamestat.StatLine{PassingYards: 100},
	}})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Imported != 1 || result.GamesCreated != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	g, found, _ := f.games.GetByExternalKey(context.Background(), "G9")
	if !found {
		t.Fatalf("game G9 not created")
	}
	if g.HomeTeamID != "t-kc" || g.AwayTeamID != "t-pit" {
		t.Fatalf("unexpected placeholder pairing: %s vs %s", g.HomeTeamID, g.AwayTeamID)
	}
}

func TestImportRefreshesGameMetadata(t *testing.T) {
	f := newImportFixture(t)

	first := passingRecord()
	if _, err := f.service.Import(context.Background(), []StatRecord{first}); err != nil {
		t.Fatalf("first import: %v", err)
	}

	week := 20
	second := first
	second.Round = "Divisional"
	second.SeasonType = "post"
	second.Week = &week
	if _, err := f.service.Import(context.Background(), []StatRecord{second}); err != nil {
		t.Fatalf("second import: %v", err)
	}

	g, found, _ := f.games.GetByExternalKey(context.Background(), "G1")
	if !found {
		t.Fatalf("game G1 missing")
	}
	if g.Round != game.RoundDivisional {
		t.Fatalf("round = %s, want Divisional", g.Round)
	}
	if g.Week == nil || *g.Week != 20 {
		t.Fatalf("week not refreshed: %v", g.Week)
	}
}

func TestReplaceClearsPriorRows(t *testing.T) {
	f := newImportFixture(t)

	if _, err := f.service.Import(context.Background(), []StatRecord{passingRecord()}); err != nil {
		t.Fatalf("seed import: %v", err)
	}

	result, err := f.service.Replace(context.Background(), []StatRecord{{
		TeamCode: "PIT",
		Position: "DST",
		GameKey:  "G2",
		Round:    "Divisional",
		Line:     gamestat.StatLine{Sacks: 3},
	}})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if !result.Replaced || result.Imported != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	rows, _ := f.stats.List(context.Background())
	if len(rows) != 1 || rows[0].PlayerID != "p-dst" {
		t.Fatalf("expected only the replacement row, got %+v", rows)
	}
}

func TestReplaceEmptyBatchStillRecalculates(t *testing.T) {
	f := newImportFixture(t)

	if _, err := f.service.Import(context.Background(), []StatRecord{passingRecord()}); err != nil {
		t.Fatalf("seed import: %v", err)
	}
	if total := f.entries.totals["e1"]; total != 33 {
		t.Fatalf("seed total = %v, want 33", total)
	}

	result, err := f.service.Replace(context.Background(), nil)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if !result.Replaced || result.Imported != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	rows, _ := f.stats.List(context.Background())
	if len(rows) != 0 {
		t.Fatalf("rows after empty replace = %d, want 0", len(rows))
	}
	if total := f.entries.totals["e1"]; total != 0 {
		t.Fatalf("entry total after empty replace = %v, want 0", total)
	}
}
