package sleeper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/playoffpool/playoff-pool/internal/domain/game"
	"github.com/playoffpool/playoff-pool/internal/platform/cache"
)

const testRosterBody = `{
	"4046": {"player_id": "4046", "full_name": "Patrick Mahomes", "team": "KC", "position": "QB"},
	"PIT":  {"player_id": "PIT", "team": "PIT", "position": "DEF"}
}`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		BaseURL:     server.URL,
		Timeout:     2 * time.Second,
		RosterCache: cache.NewStore(time.Minute),
	})
}

func TestFetchLatestStatsWalksBackToStatWeek(t *testing.T) {
	var rosterCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/players/nfl", func(w http.ResponseWriter, _ *http.Request) {
		rosterCalls.Add(1)
		_, _ = w.Write([]byte(testRosterBody))
	})
	mux.HandleFunc("/state/nfl", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"week": 21, "season": "2025", "season_type": "post"}`))
	})
	mux.HandleFunc("/stats/nfl/2025/21", func(w http.ResponseWriter, _ *http.Request) {
		// Conference week has no scores yet under either season type.
		_, _ = w.Write([]byte(`{"4046": {"rank_ppr": 1}}`))
	})
	mux.HandleFunc("/stats/nfl/2025/20", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("season_type") != "post" {
			_, _ = w.Write([]byte(`{}`))
			return
		}
		_, _ = w.Write([]byte(`{"4046": {"pass_yd": 305, "pass_td": 3}, "PIT": {"def_sack": 4}}`))
	})

	client := newTestClient(t, mux)

	records, err := client.FetchLatestStats(context.Background(), 0)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	for _, rec := range records {
		if rec.GameKey != "sleeper-2025-post-week-20" {
			t.Fatalf("game key = %q", rec.GameKey)
		}
		if rec.Round != "Divisional" {
			t.Fatalf("round = %q, want Divisional", rec.Round)
		}
	}
	if got := rosterCalls.Load(); got != 1 {
		t.Fatalf("roster fetched %d times, want 1", got)
	}
}

func TestFetchRoundsConcurrent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/players/nfl", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testRosterBody))
	})
	mux.HandleFunc("/stats/nfl/2025/19", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"4046": {"pass_yd": 250}}`))
	})
	mux.HandleFunc("/stats/nfl/2025/20", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"4046": {"pass_yd": 305, "pass_td": 3}}`))
	})

	client := newTestClient(t, mux)

	records, err := client.FetchRounds(context.Background(), 2025, []game.Round{game.RoundWildcard, game.RoundDivisional})
	if err != nil {
		t.Fatalf("fetch rounds: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}

	rounds := map[string]bool{}
	for _, rec := range records {
		rounds[rec.Round] = true
	}
	if !rounds["Wildcard"] || !rounds["Divisional"] {
		t.Fatalf("unexpected rounds: %v", rounds)
	}
}

func TestFetchWeeksRejectsOutOfRange(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())

	if _, err := client.FetchWeeks(context.Background(), 2025, []int{19}); err == nil {
		t.Fatalf("expected out-of-range week to be rejected")
	}
}

func TestClientRetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/state/nfl", func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"week": 20, "season": "2025", "season_type": "post"}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	client := NewClient(ClientConfig{
		BaseURL:     server.URL,
		Timeout:     2 * time.Second,
		MaxRetries:  2,
		RosterCache: cache.NewStore(time.Minute),
	})

	state, err := client.FetchState(context.Background())
	if err != nil {
		t.Fatalf("fetch state: %v", err)
	}
	if state.Week != 20 || state.Season != "2025" {
		t.Fatalf("unexpected state: %+v", state)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("calls = %d, want 2", got)
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/state/nfl", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	client := NewClient(ClientConfig{
		BaseURL:     server.URL,
		Timeout:     2 * time.Second,
		MaxRetries:  3,
		RosterCache: cache.NewStore(time.Minute),
	})

	if _, err := client.FetchState(context.Background()); err == nil {
		t.Fatalf("expected error for 404")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls = %d, want 1", got)
	}
}
