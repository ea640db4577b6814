package httpapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/playoffpool/playoff-pool/internal/domain/game"
	"github.com/playoffpool/playoff-pool/internal/usecase"
)

// StatsFetcher pulls canonical stat records from the external provider.
type StatsFetcher interface {
	FetchLatestStats(ctx context.Context, seasonYear int) ([]usecase.StatRecord, error)
	FetchRounds(ctx context.Context, seasonYear int, rounds []game.Round) ([]usecase.StatRecord, error)
	FetchWeeks(ctx context.Context, seasonYear int, weeks []int) ([]usecase.StatRecord, error)
}

// CSVParser turns an uploaded CSV document into canonical stat records.
type CSVParser func(r io.Reader) ([]usecase.StatRecord, error)

type Handler struct {
	poolService        *usecase.PoolService
	importService      *usecase.ImportService
	recalcService      *usecase.RecalcService
	playerStatsService *usecase.PlayerStatsService
	fetcher            StatsFetcher
	parseCSV           CSVParser
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	poolService *usecase.PoolService,
	importService *usecase.ImportService,
	recalcService *usecase.RecalcService,
	playerStatsService *usecase.PlayerStatsService,
	fetcher StatsFetcher,
	parseCSV CSVParser,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		poolService:        poolService,
		importService:      importService,
		recalcService:      recalcService,
		playerStatsService: playerStatsService,
		fetcher:            fetcher,
		parseCSV:           parseCSV,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	rows, err := h.poolService.Standings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rows)
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	rows, err := h.poolService.ListPlayers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rows)
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	rows, err := h.poolService.ListGames(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list games failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rows)
}

func (h *Handler) GetRosterPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRosterPlayerStats")
	defer span.End()

	entryID := strings.TrimSpace(r.PathValue("entryID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	view, err := h.playerStatsService.GetForRosterPlayer(ctx, entryID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster player stats failed", "entry_id", entryID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

type fetchStatsRequest struct {
	Mode       string   `json:"mode" validate:"required,oneof=latest rounds weeks"`
	SeasonYear int      `json:"seasonYear" validate:"min=0"`
	Rounds     []string `json:"rounds" validate:"omitempty,dive,required"`
	Weeks      []int    `json:"weeks" validate:"omitempty,dive,min=1,max=18"`
	Replace    bool     `json:"replace"`
}

// FetchStats pulls stats from the provider and imports them. Mode
// "latest" walks back to the most recent scored week; "rounds" and
// "weeks" fetch explicit playoff rounds or regular-season weeks.
func (h *Handler) FetchStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FetchStats")
	defer span.End()

	var req fetchStatsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	records, err := h.fetchRecords(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "fetch stats failed", "mode", req.Mode, "error", err)
		writeError(ctx, w, err)
		return
	}

	result, err := h.runImport(ctx, records, req.Replace)
	if err != nil {
		h.logger.ErrorContext(ctx, "import fetched stats failed", "mode", req.Mode, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "fetched stats imported",
		"mode", req.Mode,
		"records", len(records),
		"imported", result.Imported,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) fetchRecords(ctx context.Context, req fetchStatsRequest) ([]usecase.StatRecord, error) {
	switch req.Mode {
	case "latest":
		return h.fetcher.FetchLatestStats(ctx, req.SeasonYear)
	case "rounds":
		if len(req.Rounds) == 0 {
			return nil, fmt.Errorf("%w: rounds are required for mode rounds", usecase.ErrInvalidInput)
		}
		rounds := make([]game.Round, 0, len(req.Rounds))
		for _, value := range req.Rounds {
			round, err := game.ParseRound(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
			}
			rounds = append(rounds, round)
		}
		return h.fetcher.FetchRounds(ctx, req.SeasonYear, rounds)
	case "weeks":
		if len(req.Weeks) == 0 {
			return nil, fmt.Errorf("%w: weeks are required for mode weeks", usecase.ErrInvalidInput)
		}
		return h.fetcher.FetchWeeks(ctx, req.SeasonYear, req.Weeks)
	default:
		return nil, fmt.Errorf("%w: unknown fetch mode %q", usecase.ErrInvalidInput, req.Mode)
	}
}

// UploadStats imports a CSV document. The body is the CSV itself, or a
// multipart form with a "file" field. Replace mode comes from the
// "replace" query or form value.
func (h *Handler) UploadStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadStats")
	defer span.End()

	body := r.Body
	replace := parseBoolValue(r.URL.Query().Get("replace"))
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: missing file field: %v", usecase.ErrInvalidInput, err))
			return
		}
		defer func() { _ = file.Close() }()
		body = file
		if value := r.FormValue("replace"); value != "" {
			replace = parseBoolValue(value)
		}
	}

	records, err := h.parseCSV(body)
	if err != nil {
		h.logger.WarnContext(ctx, "parse uploaded csv failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	result, err := h.runImport(ctx, records, replace)
	if err != nil {
		h.logger.ErrorContext(ctx, "import uploaded stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "uploaded stats imported",
		"records", len(records),
		"imported", result.Imported,
		"replace", replace,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) Recalculate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Recalculate")
	defer span.End()

	if err := h.recalcService.RecalculateAll(ctx); err != nil {
		h.logger.ErrorContext(ctx, "recalculate failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "recalculated"})
}

func (h *Handler) runImport(ctx context.Context, records []usecase.StatRecord, replace bool) (usecase.ImportResult, error) {
	if replace {
		return h.importService.Replace(ctx, records)
	}
	return h.importService.Import(ctx, records)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func parseBoolValue(value string) bool {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && parsed
}
