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

func newPlayerStatsFixture(t *testing.T) (*PlayerStatsService, *stubGameRepo, *stubStatRepo) {
	t.Helper()

	teams := &stubTeamRepo{teams: []team.Team{
		{ID: "t-kc", Name: "Kansas City Chiefs", Abbreviation: "KC", Conference: team.ConferenceAFC},
		{ID: "t-buf", Name: "Buffalo Bills", Abbreviation: "BUF", Conference: team.ConferenceAFC},
	}}
	players := &stubPlayerRepo{players: []player.Player{
		{ID: "p1", Name: "Patrick Mahomes", Position: player.PositionQuarterback, TeamID: "t-kc"},
	}}
	entries := newStubEntryRepo(
		[]entry.Entry{{ID: "e1", TeamName: "Alpha", ParticipantName: "A"}},
		[]entry.RosterAssignment{{EntryID: "e1", PlayerID: "p1", Slot: entry.SlotQB1}},
	)
	games := newStubGameRepo()
	stats := newStubStatRepo()

	return NewPlayerStatsService(entries, players, teams, games, stats), games, stats
}

func TestGetForRosterPlayer(t *testing.T) {
	service, games, stats := newPlayerStatsFixture(t)
	ctx := context.Background()

	later := time.Date(2026, 1, 18, 18, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 1, 11, 18, 0, 0, 0, time.UTC)
	if _, err := games.Upsert(ctx, game.Game{
		ID: "g2", Round: game.RoundDivisional, SeasonType: game.SeasonPost,
		HomeTeamID: "t-buf", AwayTeamID: "t-kc", KickoffAt: later,
		ExternalGameKey: "G2", Final: true,
	}); err != nil {
		t.Fatalf("seed game: %v", err)
	}
	if _, err := games.Upsert(ctx, game.Game{
		ID: "g1", Round: game.RoundWildcard, SeasonType: game.SeasonPost,
		HomeTeamID: "t-kc", AwayTeamID: "t-buf", KickoffAt: earlier,
		ExternalGameKey: "G1", Final: true,
	}); err != nil {
		t.Fatalf("seed game: %v", err)
	}
	seedStat(t, stats, "s1", "p1", "g2", gamestat.StatLine{PassingYards: 200})
	seedStat(t, stats, "s2", "p1", "g1", gamestat.StatLine{PassingYards: 305, PassingTDs: 3})

	view, err := service.GetForRosterPlayer(ctx, "e1", "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if view.Player.Name != "Patrick Mahomes" || view.Player.TeamAbbr != "KC" {
		t.Fatalf("unexpected player summary: %+v", view.Player)
	}
	if len(view.Games) != 2 {
		t.Fatalf("games = %d, want 2", len(view.Games))
	}
	// Ordered by kickoff: wildcard game first.
	if view.Games[0].GameID != "g1" || view.Games[1].GameID != "g2" {
		t.Fatalf("unexpected order: %s, %s", view.Games[0].GameID, view.Games[1].GameID)
	}
	if view.Games[0].TotalPoints != 33 {
		t.Fatalf("g1 points = %v, want 33", view.Games[0].TotalPoints)
	}
	if view.Games[0].HomeTeamAbbr != "KC" || view.Games[0].AwayTeamAbbr != "BUF" {
		t.Fatalf("unexpected pairing: %s @ %s", view.Games[0].AwayTeamAbbr, view.Games[0].HomeTeamAbbr)
	}
	if len(view.Games[0].Breakdown) != 2 {
		t.Fatalf("g1 breakdown items = %d, want 2", len(view.Games[0].Breakdown))
	}
}

func TestGetForRosterPlayerNotOnRoster(t *testing.T) {
	service, _, _ := newPlayerStatsFixture(t)

	_, err := service.GetForRosterPlayer(context.Background(), "e1", "p-unknown")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetForRosterPlayerRequiresIDs(t *testing.T) {
	service, _, _ := newPlayerStatsFixture(t)

	_, err := service.GetForRosterPlayer(context.Background(), " ", "p1")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
