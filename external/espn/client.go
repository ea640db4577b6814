// Package espn fetches NFL box scores from ESPN's public site API and
// normalizes them into canonical stat records. Scoreboards name the
// games of a week; each game's summary carries the per-athlete box
// score and the scoring plays the kicker distance buckets come from.
package espn

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

	"github.com/playoffpool/playoff-pool/internal/domain/game"
	"github.com/playoffpool/playoff-pool/internal/platform/logging"
	"github.com/playoffpool/playoff-pool/internal/platform/resilience"
	"github.com/playoffpool/playoff-pool/internal/usecase"
)

const defaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl"

var errESPNTransient = crerr.New("espn transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
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

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// scoreboard mirrors the slice of /scoreboard the fetcher needs: the
// event ids and kickoff dates of one week's games.
type scoreboard struct {
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	ID   string `json:"id"`
	Date string `json:"date"`
}

// summary mirrors the slice of /summary?event= the normalizer reads.
type summary struct {
	Boxscore struct {
		Players []boxscoreTeam `json:"players"`
	} `json:"boxscore"`
	ScoringPlays []scoringPlay `json:"scoringPlays"`
}

type boxscoreTeam struct {
	Team struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
	Statistics []statCategory `json:"statistics"`
}

// statCategory is one box-score table: keys name the columns, each
// athlete row carries the values in the same order.
type statCategory struct {
	Name     string        `json:"name"`
	Keys     []string      `json:"keys"`
	Athletes []athleteLine `json:"athletes"`
}

type athleteLine struct {
	Athlete struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
		Position    struct {
			Abbreviation string `json:"abbreviation"`
		} `json:"position"`
	} `json:"athlete"`
	// Values are strings ("305", "26/39") with the odd raw number mixed
	// in, so the column type stays loose.
	Stats []any `json:"stats"`
}

type scoringPlay struct {
	Text string `json:"text"`
	Team struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
	ScoringType struct {
		Name string `json:"name"`
	} `json:"scoringType"`
	Type struct {
		Text string `json:"text"`
	} `json:"type"`
}

func (c *Client) fetchScoreboard(ctx context.Context, seasonYear, week int, seasonType string) (scoreboard, error) {
	path := fmt.Sprintf("/scoreboard?seasontype=%d&week=%d&year=%d", seasonTypeValue(seasonType), week, seasonYear)
	var board scoreboard
	if err := c.doJSON(ctx, path, &board); err != nil {
		return scoreboard{}, fmt.Errorf("fetch espn scoreboard season=%d week=%d: %w", seasonYear, week, err)
	}
	return board, nil
}

func (c *Client) fetchSummary(ctx context.Context, eventID string) (summary, error) {
	var sum summary
	if err := c.doJSON(ctx, "/summary?event="+eventID, &sum); err != nil {
		return summary{}, fmt.Errorf("fetch espn summary event=%s: %w", eventID, err)
	}
	return sum, nil
}

// seasonTypeValue maps the pool's season type onto ESPN's numeric
// seasontype parameter (2 regular, 3 postseason).
func seasonTypeValue(seasonType string) int {
	if seasonType == string(game.SeasonPost) {
		return 3
	}
	return 2
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: stat provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isESPNCircuitFailure(reqErr) {
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
		req.Header.Set("user-agent", "playoff-pool")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errESPNTransient, err)
		} else {
			// Summaries run to a few hundred kilobytes; cap reads well
			// above that.
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errESPNTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errESPNTransient, resp.StatusCode, abbreviateBody(raw))
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
	c.logger.WarnContext(ctx, "espn request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isESPNCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errESPNTransient)
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
