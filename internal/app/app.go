package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"

	"github.com/playoffpool/playoff-pool/external/csvfeed"
	"github.com/playoffpool/playoff-pool/external/espn"
	"github.com/playoffpool/playoff-pool/external/sleeper"
	"github.com/playoffpool/playoff-pool/internal/config"
	"github.com/playoffpool/playoff-pool/internal/domain/entry"
	"github.com/playoffpool/playoff-pool/internal/domain/game"
	"github.com/playoffpool/playoff-pool/internal/domain/gamestat"
	"github.com/playoffpool/playoff-pool/internal/domain/player"
	"github.com/playoffpool/playoff-pool/internal/domain/team"
	"github.com/playoffpool/playoff-pool/internal/infrastructure/repository/memory"
	"github.com/playoffpool/playoff-pool/internal/infrastructure/repository/postgres"
	"github.com/playoffpool/playoff-pool/internal/interfaces/httpapi"
	"github.com/playoffpool/playoff-pool/internal/platform/cache"
	idgen "github.com/playoffpool/playoff-pool/internal/platform/id"
	"github.com/playoffpool/playoff-pool/internal/platform/logging"
	"github.com/playoffpool/playoff-pool/internal/platform/resilience"
	"github.com/playoffpool/playoff-pool/internal/usecase"
)

// NewHTTPServer wires repositories, services, and the HTTP router into a
// ready-to-run server. The returned cleanup closes the database handle
// and must be called after the server shuts down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = slog.Default()
	}

	repos, cleanup, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	recalcService := usecase.NewRecalcService(repos.stats, repos.players, repos.entries)
	importService := usecase.NewImportService(
		repos.teams,
		repos.players,
		repos.games,
		repos.stats,
		recalcService,
		idgen.NewRandomGenerator(),
		cfg.ImportMaxWorkers,
	)
	poolService := usecase.NewPoolService(repos.teams, repos.players, repos.games, repos.entries)
	playerStatsService := usecase.NewPlayerStatsService(repos.entries, repos.players, repos.teams, repos.games, repos.stats)

	fetcher := buildFetcher(cfg, logger)

	handler := httpapi.NewHandler(
		poolService,
		importService,
		recalcService,
		playerStatsService,
		fetcher,
		csvfeed.Parse,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminKey)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup(ctx)
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

// buildFetcher selects the live stats source. ESPN is the default;
// Sleeper stays available behind STATS_PROVIDER=sleeper. Both clients
// emit the same canonical records.
func buildFetcher(cfg config.Config, logger *slog.Logger) httpapi.StatsFetcher {
	if cfg.StatsProvider == config.ProviderSleeper {
		logger.Info("using sleeper stats provider")
		return sleeper.NewClient(sleeper.ClientConfig{
			BaseURL:    cfg.SleeperBaseURL,
			Timeout:    cfg.SleeperTimeout,
			MaxRetries: cfg.SleeperMaxRetries,
			Logger:     logging.Default(),
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.SleeperCircuitEnabled,
				FailureThreshold: cfg.SleeperCircuitFailureCount,
				OpenTimeout:      cfg.SleeperCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.SleeperCircuitHalfOpenMaxReq,
			},
			RosterCache: cache.NewStore(cfg.SleeperRosterCacheTTL),
		})
	}

	logger.Info("using espn stats provider")
	return espn.NewClient(espn.ClientConfig{
		BaseURL:    cfg.ESPNBaseURL,
		Timeout:    cfg.ESPNTimeout,
		MaxRetries: cfg.ESPNMaxRetries,
		Logger:     logging.Default(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ESPNCircuitEnabled,
			FailureThreshold: cfg.ESPNCircuitFailureCount,
			OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMaxReq,
		},
	})
}

type repositories struct {
	teams   team.Repository
	players player.Repository
	games   game.Repository
	stats   gamestat.Repository
	entries entry.Repository
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *slog.Logger) (repositories, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	if !cfg.UsesPostgres() {
		logger.Info("running on in-memory repositories", "reason", "DB_URL empty")
		return repositories{
			teams:   memory.NewTeamRepository(memory.SeedTeams()),
			players: memory.NewPlayerRepository(memory.SeedPlayers()),
			games:   memory.NewGameRepository(nil),
			stats:   memory.NewGameStatRepository(nil),
			entries: memory.NewEntryRepository(memory.SeedEntries(), memory.SeedRosters()),
		}, noop, nil
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return repositories{}, nil, err
	}

	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		_ = db.Close()
		return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
	}

	logger.Info("running on postgres repositories", "database", dbNameFromURL(cfg.DBURL))

	return repositories{
		teams:   postgres.NewTeamRepository(db),
		players: postgres.NewPlayerRepository(db),
		games:   postgres.NewGameRepository(db),
		stats:   postgres.NewGameStatRepository(db),
		entries: postgres.NewEntryRepository(db),
	}, func(context.Context) error { return db.Close() }, nil
}

func openDatabase(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
