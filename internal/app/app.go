package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/darkscore-api/external/playerapi"
	"github.com/riskibarqy/darkscore-api/external/predictor"
	"github.com/riskibarqy/darkscore-api/internal/config"
	"github.com/riskibarqy/darkscore-api/internal/domain/player"
	"github.com/riskibarqy/darkscore-api/internal/domain/prediction"
	"github.com/riskibarqy/darkscore-api/internal/domain/team"
	cacherepo "github.com/riskibarqy/darkscore-api/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/darkscore-api/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/darkscore-api/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/darkscore-api/internal/interfaces/httpapi"
	"github.com/riskibarqy/darkscore-api/internal/platform/cache"
	"github.com/riskibarqy/darkscore-api/internal/platform/dbconn"
	"github.com/riskibarqy/darkscore-api/internal/platform/logging"
	"github.com/riskibarqy/darkscore-api/internal/platform/resilience"
	"github.com/riskibarqy/darkscore-api/internal/usecase"
)

// App is the assembled API process: HTTP server plus the resources it owns.
type App struct {
	Server        *http.Server
	prewarmer     *usecase.LineupPrewarmer
	cache         *cache.Store
	purgeInterval time.Duration
	db            *sqlx.DB
	logger        *logging.Logger
}

type repositories struct {
	teams   team.Repository
	players player.Repository
	db      *sqlx.DB
	circuit httpapi.CircuitReporter
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := newRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	var handlerOpts []httpapi.HandlerOption
	if repos.circuit != nil {
		handlerOpts = append(handlerOpts, httpapi.WithCircuit("roster_api", repos.circuit))
	}

	teamRepo, playerRepo := repos.teams, repos.players
	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
		teamRepo = cacherepo.NewTeamRepository(teamRepo, store)
		playerRepo = cacherepo.NewPlayerRepository(playerRepo, store)
		handlerOpts = append(handlerOpts, httpapi.WithCacheReporter(store))
	}

	var matchPredictor prediction.Predictor
	if cfg.PredictorEnabled {
		client, err := predictor.NewClient(predictor.ClientConfig{
			BaseURL:        cfg.PredictorBaseURL,
			Timeout:        cfg.PredictorTimeout,
			Logger:         logger.Named("predictor"),
			CircuitBreaker: circuitConfig(cfg.PredictorCircuit),
		})
		if err != nil {
			closeDB(repos.db, logger)
			return nil, err
		}
		matchPredictor = client
		handlerOpts = append(handlerOpts, httpapi.WithCircuit("predictor", client))
	}

	lineupSvc := usecase.NewLineupService(teamRepo, playerRepo, usecase.LineupConfig{
		DefaultPolicy:    cfg.LineupDefaultPolicy,
		DefaultFormation: cfg.LineupDefaultFormation,
	}, logger)
	teamSvc := usecase.NewTeamService(teamRepo, playerRepo)
	matchupSvc := usecase.NewMatchupService(teamRepo, lineupSvc, matchPredictor, logger)

	handler := httpapi.NewHandler(teamSvc, lineupSvc, matchupSvc, logger, handlerOpts...)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	app := &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		cache:         store,
		purgeInterval: cfg.CachePurgeInterval,
		db:            repos.db,
		logger:        logger,
	}
	if cfg.CacheEnabled && cfg.CachePrewarmEnabled {
		app.prewarmer = usecase.NewLineupPrewarmer(teamRepo, lineupSvc, cfg.CachePrewarmWorkers, logger)
	}

	logger.Info("app assembled",
		"roster_source", cfg.RosterSource,
		"cache_enabled", cfg.CacheEnabled,
		"predictor_enabled", cfg.PredictorEnabled,
		"swagger_enabled", cfg.SwaggerEnabled,
		"lineup_policy", cfg.LineupDefaultPolicy.String(),
	)
	return app, nil
}

// Prewarm fills the roster cache. It is a no-op unless cache prewarming is
// enabled.
func (a *App) Prewarm(ctx context.Context) {
	if a.prewarmer == nil {
		return
	}
	if _, err := a.prewarmer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		a.logger.WarnContext(ctx, "lineup prewarm failed", "error", err)
	}
}

// PurgeCache sweeps expired cache entries every purge interval until ctx is
// done. It returns at once when the cache is disabled.
func (a *App) PurgeCache(ctx context.Context) {
	if a.cache == nil {
		return
	}
	a.cache.PurgeEvery(ctx, a.purgeInterval, func(removed int) {
		a.logger.DebugContext(ctx, "cache purge", "removed", removed, "entries", a.cache.Stats().Entries)
	})
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func newRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.RosterSource {
	case config.RosterSourcePostgres:
		db, err := dbconn.Open(dbconn.Options{URL: cfg.DBURL, DisablePreparedBinary: cfg.DBDisablePreparedBinary})
		if err != nil {
			return repositories{}, err
		}
		return repositories{
			teams:   postgres.NewTeamRepository(db),
			players: postgres.NewPlayerRepository(db),
			db:      db,
		}, nil
	case config.RosterSourceAPI:
		client := playerapi.NewClient(playerapi.ClientConfig{
			BaseURL:        cfg.RosterAPIBaseURL,
			Timeout:        cfg.RosterAPITimeout,
			MaxRetries:     cfg.RosterAPIMaxRetries,
			Logger:         logger.Named("playerapi"),
			CircuitBreaker: circuitConfig(cfg.RosterAPICircuit),
		})
		return repositories{
			teams:   memory.NewTeamRepository(memory.SeedTeams()),
			players: client,
			circuit: client,
		}, nil
	default:
		return repositories{
			teams:   memory.NewTeamRepository(memory.SeedTeams()),
			players: memory.NewPlayerRepository(memory.SeedRosters()),
		}, nil
	}
}

func closeDB(db *sqlx.DB, logger *logging.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("close postgres failed", "error", err)
	}
}

func circuitConfig(settings config.CircuitSettings) resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          settings.Enabled,
		FailureThreshold: settings.FailureCount,
		OpenTimeout:      settings.OpenTimeout,
		HalfOpenMaxReq:   settings.HalfOpenMaxReq,
	}
}
