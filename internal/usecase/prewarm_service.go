package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/darkscore-api/internal/domain/team"
	"github.com/riskibarqy/darkscore-api/internal/platform/logging"
)

const defaultPrewarmWorkers = 4

type PrewarmResult struct {
	TeamCount    int
	SuccessCount int
	FailedCount  int
	WorkerCount  int
	Duration     time.Duration
}

// LineupPrewarmer builds the default starting XI of every team so the
// roster cache is populated before traffic arrives.
type LineupPrewarmer struct {
	teamRepo team.Repository
	lineups  *LineupService
	workers  int
	logger   *logging.Logger
}

func NewLineupPrewarmer(teamRepo team.Repository, lineups *LineupService, workers int, logger *logging.Logger) *LineupPrewarmer {
	if workers <= 0 {
		workers = defaultPrewarmWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LineupPrewarmer{
		teamRepo: teamRepo,
		lineups:  lineups,
		workers:  workers,
		logger:   logger,
	}
}

// Run only fails when the team list cannot be loaded or the pool cannot be
// created. Per-team failures are logged and counted.
func (p *LineupPrewarmer) Run(ctx context.Context) (PrewarmResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupPrewarmer.Run")
	defer span.End()

	startedAt := time.Now()
	teams, err := p.teamRepo.List(ctx)
	if err != nil {
		return PrewarmResult{}, fmt.Errorf("list teams: %w", err)
	}

	workerCount := p.workers
	if workerCount > len(teams) {
		workerCount = len(teams)
	}
	if workerCount == 0 {
		return PrewarmResult{}, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return PrewarmResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var wg sync.WaitGroup

	for _, item := range teams {
		teamName := item.Name
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				failedCount.Add(1)
				return
			}
			xi, err := p.lineups.GetStartingXI(ctx, StartingXIInput{Team: teamName})
			if err != nil {
				failedCount.Add(1)
				p.logger.WarnContext(ctx, "prewarm starting xi failed", "team", teamName, "error", err)
				return
			}
			successCount.Add(1)
			p.logger.DebugContext(ctx, "prewarm starting xi done",
				"team", teamName,
				"formation", xi.Lineup.Formation,
				"players", xi.Lineup.Count(),
			)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return PrewarmResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	wg.Wait()

	result := PrewarmResult{
		TeamCount:    len(teams),
		SuccessCount: int(successCount.Load()),
		FailedCount:  int(failedCount.Load()),
		WorkerCount:  workerCount,
		Duration:     time.Since(startedAt),
	}
	p.logger.InfoContext(ctx, "lineup prewarm finished",
		"teams", result.TeamCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
		"workers", result.WorkerCount,
		"duration", result.Duration,
	)
	return result, nil
}
