package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/darkscore-api/internal/config"
	"github.com/riskibarqy/darkscore-api/internal/platform/logging"
)

// stopFunc releases one started hook.
type stopFunc func(context.Context) error

// hook is one optional process-wide integration. start returns a nil stopFunc
// when the hook is disabled by config.
type hook struct {
	name  string
	start func(config.Config, *logging.Logger) (stopFunc, error)
}

var defaultHooks = []hook{
	{name: "tracing", start: startTracing},
	{name: "profiler", start: startProfiler},
	{name: "pprof", start: startPprof},
}

type startedHook struct {
	name string
	stop stopFunc
}

// Runtime owns the tracing, profiling and pprof hooks of the process.
type Runtime struct {
	logger  *logging.Logger
	started []startedHook
}

// Start brings up every enabled hook. On failure the hooks that did start are
// stopped before returning.
func Start(cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	return startHooks(cfg, logger, defaultHooks)
}

func startHooks(cfg config.Config, logger *logging.Logger, hooks []hook) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{logger: logger}

	for _, h := range hooks {
		stop, err := h.start(cfg, logger.Named(h.name))
		if err != nil {
			if shutdownErr := rt.Shutdown(context.Background()); shutdownErr != nil {
				logger.Warn("rollback observability hooks failed", "error", shutdownErr)
			}
			return nil, fmt.Errorf("start %s: %w", h.name, err)
		}
		if stop == nil {
			logger.Debug("observability hook disabled", "hook", h.name)
			continue
		}
		rt.started = append(rt.started, startedHook{name: h.name, stop: stop})
	}

	logger.Info("observability started", "hooks", rt.Active())
	return rt, nil
}

// Active lists the running hooks in start order.
func (r *Runtime) Active() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.started))
	for _, h := range r.started {
		out = append(out, h.name)
	}
	return out
}

// Shutdown stops hooks in reverse start order and joins their errors.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}

	var errs []error
	for i := len(r.started) - 1; i >= 0; i-- {
		h := r.started[i]
		if err := h.stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", h.name, err))
		}
	}
	r.started = nil
	return errors.Join(errs...)
}
