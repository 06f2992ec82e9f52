package health

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/salarydex/internal/domain"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "healthy"
	// Degraded indicates at least one component failed its check.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names reported by Check.
const (
	CheckSearchEngine = "search_engine"
	CheckCache        = "cache"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	engine ClusterInspector
	cache  Pinger
}

// New creates a Service. cache can be nil when caching is disabled.
func New(engine ClusterInspector, cache Pinger) *Service {
	return &Service{engine: engine, cache: cache}
}

// Check pings the search engine and, when configured, the cache.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{
		CheckSearchEngine: result(s.engine.Ping(ctx)),
	}
	if s.cache != nil {
		checks[CheckCache] = result(s.cache.Ping(ctx))
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

// Cluster returns the engine's raw cluster health snapshot.
func (s *Service) Cluster(ctx context.Context) (map[string]any, error) {
	h, err := s.engine.ClusterHealth(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	return h, nil
}

func result(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
