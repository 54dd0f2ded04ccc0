package httpapi

import (
	"net/http"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/darkscore-api/internal/platform/cache"
	"github.com/riskibarqy/darkscore-api/internal/platform/logging"
	"github.com/riskibarqy/darkscore-api/internal/platform/resilience"
	"github.com/riskibarqy/darkscore-api/internal/usecase"
)

const (
	healthStatusOK       = "ok"
	healthStatusDegraded = "degraded"
)

// CircuitReporter exposes the breaker state of an outbound client.
type CircuitReporter interface {
	CircuitSnapshot() resilience.CircuitSnapshot
}

// CacheReporter exposes read-through cache usage.
type CacheReporter interface {
	Stats() cache.Stats
}

type HandlerOption func(*Handler)

// WithCircuit reports the named dependency breaker on /healthz.
func WithCircuit(name string, reporter CircuitReporter) HandlerOption {
	return func(h *Handler) {
		if reporter == nil || name == "" {
			return
		}
		h.circuits[name] = reporter
	}
}

func WithCacheReporter(reporter CacheReporter) HandlerOption {
	return func(h *Handler) {
		h.cache = reporter
	}
}

type Handler struct {
	teamService    *usecase.TeamService
	lineupService  *usecase.LineupService
	matchupService *usecase.MatchupService
	logger         *logging.Logger
	validator      *validator.Validate
	circuits       map[string]CircuitReporter
	cache          CacheReporter
	startedAt      time.Time
}

func NewHandler(
	teamService *usecase.TeamService,
	lineupService *usecase.LineupService,
	matchupService *usecase.MatchupService,
	logger *logging.Logger,
	opts ...HandlerOption,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	h := &Handler{
		teamService:    teamService,
		lineupService:  lineupService,
		matchupService: matchupService,
		logger:         logger,
		validator:      validator.New(),
		circuits:       make(map[string]CircuitReporter),
		startedAt:      time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	resp := healthDTO{
		Status:        healthStatusOK,
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
	}

	if len(h.circuits) > 0 {
		names := make([]string, 0, len(h.circuits))
		for name := range h.circuits {
			names = append(names, name)
		}
		sort.Strings(names)

		resp.Dependencies = make(map[string]resilience.CircuitSnapshot, len(names))
		for _, name := range names {
			snapshot := h.circuits[name].CircuitSnapshot()
			resp.Dependencies[name] = snapshot
			if snapshot.State == resilience.CircuitStateOpen {
				resp.Status = healthStatusDegraded
			}
		}
	}
	if h.cache != nil {
		stats := h.cache.Stats()
		resp.Cache = &stats
	}

	writeSuccess(ctx, w, http.StatusOK, resp)
}
