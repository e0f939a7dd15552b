package health

import "context"

// CatalogCounter reports how many catalog records are served.
type CatalogCounter interface {
	Len() int
}

// CachePinger checks embedding cache store availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
