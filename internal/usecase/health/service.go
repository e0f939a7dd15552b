// Package health aggregates component checks for the /health endpoint.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional dependency is failing; requests may still succeed.
	Degraded Status = "degraded"
	// Unhealthy indicates the service cannot answer requests (empty catalog).
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	catalog   CatalogCounter
	cache     CachePinger
	embedding EmbeddingChecker
}

// New creates a Service. cache and embedding can be nil.
func New(catalog CatalogCounter, cache CachePinger, embedding EmbeddingChecker) *Service {
	return &Service{catalog: catalog, cache: cache, embedding: embedding}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	catalogOK := s.catalog != nil && s.catalog.Len() > 0
	checks["catalog"] = result(catalogOK)

	if s.cache != nil {
		checks["cache"] = result(s.cache.Ping(ctx) == nil)
	}

	if s.embedding != nil {
		checks["embedding"] = result(s.embedding.HealthCheck(ctx) == nil)
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	if !catalogOK {
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks}
}

func result(ok bool) CheckResult {
	if ok {
		return CheckOK
	}
	return CheckError
}
