package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/playoffpool/playoff-pool/external/csvfeed"
	"github.com/playoffpool/playoff-pool/internal/domain/game"
	"github.com/playoffpool/playoff-pool/internal/domain/gamestat"
	"github.com/playoffpool/playoff-pool/internal/infrastructure/repository/memory"
	"github.com/playoffpool/playoff-pool/internal/platform/id"
	"github.com/playoffpool/playoff-pool/internal/usecase"
)

const testAdminKey = "test-admin-key"

type stubFetcher struct {
	records []usecase.StatRecord
}

var _ StatsFetcher = (*stubFetcher)(nil)

func (f *stubFetcher) FetchLatestStats(context.Context, int) ([]usecase.StatRecord, error) {
	return f.records, nil
}

func (f *stubFetcher) FetchRounds(context.Context, int, []game.Round) ([]usecase.StatRecord, error) {
	return f.records, nil
}

func (f *stubFetcher) FetchWeeks(context.Context, int, []int) ([]usecase.StatRecord, error) {
	return f.records, nil
}

func newTestRouter(t *testing.T, fetcher StatsFetcher) http.Handler {
	t.Helper()

	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	gameRepo := memory.NewGameRepository(nil)
	statRepo := memory.NewGameStatRepository(nil)
	entryRepo := memory.NewEntryRepository(memory.SeedEntries(), memory.SeedRosters())

	recalcService := usecase.NewRecalcService(statRepo, playerRepo, entryRepo)
	importService := usecase.NewImportService(teamRepo, playerRepo, gameRepo, statRepo, recalcService, id.NewRandomGenerator(), 2)
	poolService := usecase.NewPoolService(teamRepo, playerRepo, gameRepo, entryRepo)
	playerStatsService := usecase.NewPlayerStatsService(entryRepo, playerRepo, teamRepo, gameRepo, statRepo)

	handler := NewHandler(poolService, importService, recalcService, playerStatsService, fetcher, csvfeed.Parse, nil)
	return NewRouter(handler, nil, []string{"*"}, testAdminKey)
}

func decodeData(t *testing.T, body []byte) any {
	t.Helper()
	var envelope map[string]any
	if err := sonic.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return envelope["data"]
}

func TestFetchStatsEndToEnd(t *testing.T) {
	fetcher := &stubFetcher{records: []usecase.StatRecord{
		{
			ExternalPlayerID: "4046",
			PlayerName:       "Patrick Mahomes",
			TeamCode:         "KC",
			Position:         "QB",
			GameKey:          "sleeper-2025-post-week-20",
			Round:            "Divisional",
			SeasonType:       "post",
			Line:             gamestat.StatLine{PassingYards: 305, PassingTDs: 3},
		},
	}}
	router := newTestRouter(t, fetcher)

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/fetch-stats", strings.NewReader(`{"mode":"latest"}`))
	req.Header.Set("X-Admin-Key", testAdminKey)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("fetch-stats status = %d, body %s", rec.Code, rec.Body.String())
	}
	result, ok := decodeData(t, rec.Body.Bytes()).(map[string]any)
	if !ok {
		t.Fatalf("unexpected data payload: %s", rec.Body.String())
	}
	if got, _ := result["imported"].(float64); got != 1 {
		t.Fatalf("imported = %v, want 1", result["imported"])
	}

	// Both seeded entries roster Mahomes; the leader board reflects the
	// 33-point game after the import barrier.
	req = httptest.NewRequest(http.MethodGet, "/v1/standings", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("standings status = %d", rec.Code)
	}
	rows, ok := decodeData(t, rec.Body.Bytes()).([]any)
	if !ok || len(rows) != 2 {
		t.Fatalf("unexpected standings payload: %s", rec.Body.String())
	}
	top, _ := rows[0].(map[string]any)
	if got, _ := top["totalPoints"].(float64); got != 33 {
		t.Fatalf("leader total = %v, want 33", top["totalPoints"])
	}
}

func TestUploadStatsCSV(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{})

	csv := strings.Join([]string{
		"external_player_id,player_name,team_abbr,position,game_key,round,rushing_yards,rushing_tds",
		"4866,Saquon Barkley,PHI,RB,csv-div-1,Divisional,120,2",
	}, "\n")

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/upload-stats", strings.NewReader(csv))
	req.Header.Set("X-Admin-Key", testAdminKey)
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("upload-stats status = %d, body %s", rec.Code, rec.Body.String())
	}
	result, _ := decodeData(t, rec.Body.Bytes()).(map[string]any)
	if got, _ := result["imported"].(float64); got != 1 {
		t.Fatalf("imported = %v, want 1", result["imported"])
	}
	if got, _ := result["gamesCreated"].(float64); got != 1 {
		t.Fatalf("gamesCreated = %v, want 1", result["gamesCreated"])
	}
}

func TestAdminRoutesRequireKey(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{})

	for _, path := range []string{"/v1/admin/fetch-stats", "/v1/admin/upload-stats", "/v1/admin/recalculate"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{}"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s status = %d, want 401", path, rec.Code)
		}
	}
}

func TestGetRosterPlayerStats(t *testing.T) {
	fetcher := &stubFetcher{records: []usecase.StatRecord{
		{
			ExternalPlayerID: "4046",
			PlayerName:       "Patrick Mahomes",
			TeamCode:         "KC",
			Position:         "QB",
			GameKey:          "sleeper-2025-post-week-20",
			Round:            "Divisional",
			SeasonType:       "post",
			Line:             gamestat.StatLine{PassingYards: 305, PassingTDs: 3},
		},
	}}
	router := newTestRouter(t, fetcher)

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/fetch-stats", strings.NewReader(`{"mode":"latest"}`))
	req.Header.Set("X-Admin-Key", testAdminKey)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("fetch-stats status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/entries/e-001/players/p-qb-01/stats", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("player stats status = %d, body %s", rec.Code, rec.Body.String())
	}
	view, _ := decodeData(t, rec.Body.Bytes()).(map[string]any)
	games, _ := view["games"].([]any)
	if len(games) != 1 {
		t.Fatalf("games = %d, want 1", len(games))
	}
	gameView, _ := games[0].(map[string]any)
	if got, _ := gameView["totalPoints"].(float64); got != 33 {
		t.Fatalf("totalPoints = %v, want 33", gameView["totalPoints"])
	}

	// A player outside the entry's roster is a 404.
	req = httptest.NewRequest(http.MethodGet, "/v1/entries/e-001/players/p-te-02/stats", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("off-roster status = %d, want 404", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}
}
