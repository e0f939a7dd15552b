package recommend

import (
	"context"

	"github.com/kailas-cloud/assessrec/internal/domain"
	"github.com/kailas-cloud/assessrec/internal/domain/catalog"
	"github.com/kailas-cloud/assessrec/internal/domain/constraint"
)

// CatalogReader returns the served catalog records in source order.
type CatalogReader interface {
	All() []catalog.Record
}

// Normalizer inlines quoted URL content into the query text.
type Normalizer interface {
	Normalize(ctx context.Context, raw string) (string, []string)
}

// Extractor derives constraints from normalized text. It never fails.
type Extractor interface {
	Extract(ctx context.Context, text string) constraint.Constraints
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
