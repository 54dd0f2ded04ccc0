package resilience

import "time"

// CircuitBreakerConfig describes one dependency breaker. Zero thresholds
// fall back to the defaults.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

var defaultCircuitBreaker = CircuitBreakerConfig{
	Enabled:          true,
	FailureThreshold: 5,
	OpenTimeout:      15 * time.Second,
	HalfOpenMaxReq:   2,
}

// Build returns a breaker for cfg, or nil when disabled. The nil breaker is
// safe to use.
func (cfg CircuitBreakerConfig) Build() *CircuitBreaker {
	if !cfg.Enabled {
		return nil
	}
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaultCircuitBreaker.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaultCircuitBreaker.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaultCircuitBreaker.HalfOpenMaxReq
	}
	return NewCircuitBreaker(cfg.FailureThreshold, cfg.OpenTimeout, cfg.HalfOpenMaxReq)
}
