package observability

import (
	"strings"

	"github.com/riskibarqy/darkscore-api/internal/config"
	"github.com/riskibarqy/darkscore-api/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
)

// startTracing installs the global OpenTelemetry providers and exports them
// to Uptrace.
func startTracing(cfg config.Config, logger *logging.Logger) (stopFunc, error) {
	if !cfg.UptraceEnabled {
		return nil, nil
	}
	if strings.TrimSpace(cfg.UptraceDSN) == "" {
		logger.Warn("uptrace enabled without dsn, tracing stays off")
		return nil, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(resourceAttributes(cfg)...),
	)

	logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
	)
	return uptrace.Shutdown, nil
}

func resourceAttributes(cfg config.Config) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("darkscore.roster_source", cfg.RosterSource),
		attribute.String("darkscore.lineup_policy", cfg.LineupDefaultPolicy.String()),
		attribute.Bool("darkscore.predictor_enabled", cfg.PredictorEnabled),
		attribute.Bool("darkscore.cache_enabled", cfg.CacheEnabled),
	}
}
