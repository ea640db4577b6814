// Package sleeper fetches NFL stats from the Sleeper public API and
// normalizes them into canonical stat records.
package sleeper

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/playoffpool/playoff-pool/internal/platform/cache"
	"github.com/playoffpool/playoff-pool/internal/platform/logging"
	"github.com/playoffpool/playoff-pool/internal/platform/resilience"
	"github.com/playoffpool/playoff-pool/internal/usecase"
)

const defaultBaseURL = "https://api.sleeper.app/v1"

var errSleeperTransient = crerr.New("sleeper transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// RosterCache holds the full-league player map between calls; the
	// roster payload is large and changes rarely. Required.
	RosterCache *cache.Store
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	rosterCache    *cache.Store
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	rosterCache := cfg.RosterCache
	if rosterCache == nil {
		rosterCache = cache.NewStore(time.Hour)
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		rosterCache:    rosterCache,
	}
}

// State mirrors the /state/nfl endpoint.
type State struct {
	Week       int    `json:"week"`
	Season     string `json:"season"`
	SeasonType string `json:"season_type"`
}

// rosterPlayer is one record of the full-league player map.
type rosterPlayer struct {
	PlayerID string  `json:"player_id"`
	FullName string  `json:"full_name"`
	Team     *string `json:"team"`
	TeamAbbr *string `json:"team_abbr"`
	Position *string `json:"position"`
}

func (c *Client) FetchState(ctx context.Context) (State, error) {
	var state State
	if err := c.doJSON(ctx, "/state/nfl", &state); err != nil {
		return State{}, fmt.Errorf("fetch sleeper state: %w", err)
	}
	return state, nil
}

// fetchRoster loads the full player map through the shared TTL cache.
func (c *Client) fetchRoster(ctx context.Context) (map[string]rosterPlayer, error) {
	value, err := c.rosterCache.GetOrLoad(ctx, "sleeper:players:nfl", func(ctx context.Context) (any, error) {
		var roster map[string]rosterPlayer
		if err := c.doJSON(ctx, "/players/nfl", &roster); err != nil {
			return nil, fmt.Errorf("fetch sleeper players: %w", err)
		}
		return roster, nil
	})
	if err != nil {
		return nil, err
	}

	roster, ok := value.(map[string]rosterPlayer)
	if !ok {
		return nil, fmt.Errorf("unexpected roster cache payload type %T", value)
	}
	return roster, nil
}

// fetchWeekStats loads the raw per-player stat maps for one week.
func (c *Client) fetchWeekStats(ctx context.Context, seasonYear, week int, seasonType string) (map[string]map[string]any, error) {
	path := fmt.Sprintf("/stats/nfl/%d/%d?season_type=%s", seasonYear, week, seasonType)
	var stats map[string]map[string]any
	if err := c.doJSON(ctx, path, &stats); err != nil {
		return nil, fmt.Errorf("fetch sleeper stats season=%d week=%d: %w", seasonYear, week, err)
	}
	return stats, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "sleeper circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: stat provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isSleeperCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errSleeperTransient, err)
		} else {
			// The full-roster payload is several megabytes; cap reads
			// well above it.
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errSleeperTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errSleeperTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "sleeper request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isSleeperCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errSleeperTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
