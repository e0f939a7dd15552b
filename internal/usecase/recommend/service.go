// Package recommend runs the recommendation pipeline:
// normalize, extract, filter, rank, assemble.
package recommend

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/assessrec/internal/domain"
	"github.com/kailas-cloud/assessrec/internal/domain/constraint"
	"github.com/kailas-cloud/assessrec/internal/domain/recommend/mode"
	"github.com/kailas-cloud/assessrec/internal/domain/recommend/request"
	"github.com/kailas-cloud/assessrec/internal/domain/recommend/result"
	"github.com/kailas-cloud/assessrec/internal/logger"
	"github.com/kailas-cloud/assessrec/internal/metrics"
)

// Outcome is the full result of one pipeline run. HTTP exposes Query and
// Items; the interactive shell also renders URLs and Constraints.
type Outcome struct {
	Query          string
	NormalizedText string
	URLs           []string
	Constraints    constraint.Constraints
	Mode           mode.Mode
	Items          []result.Item
}

// Service is the single pipeline behind both shells.
type Service struct {
	catalog    CatalogReader
	normalizer Normalizer
	extractor  Extractor
	ranker     *Ranker
	logger     *zap.Logger
}

// New creates a recommendation service.
func New(
	catalog CatalogReader, normalizer Normalizer, extractor Extractor,
	ranker *Ranker, l *zap.Logger,
) *Service {
	if l == nil {
		l = zap.NewNop()
	}
	return &Service{
		catalog:    catalog,
		normalizer: normalizer,
		extractor:  extractor,
		ranker:     ranker,
		logger:     l,
	}
}

// Recommend returns up to req.MaxResults() assessments for the query text.
// URL fetch and extraction failures degrade; embedding failures are returned.
func (s *Service) Recommend(ctx context.Context, req request.Request) (Outcome, error) {
	if s.catalog == nil {
		return Outcome{}, domain.ErrCatalogUnavailable
	}
	log := logger.FromContextOr(ctx, s.logger)

	text, urls := s.normalizer.Normalize(ctx, req.Text())
	log.Debug("input normalized",
		zap.Int("urls", len(urls)),
		zap.Int("text_length", len(text)),
	)

	// Outcome owns its constraints; the extractor may keep its own copy.
	c := s.extractor.Extract(ctx, text).Clone()

	records := s.catalog.All()
	filtered := Filter(records, c)
	m := ModeFor(c)
	log.Debug("catalog filtered",
		zap.Int("catalog", len(records)),
		zap.Int("filtered", len(filtered)),
		zap.String("mode", string(m)),
	)

	ranked, err := s.ranker.Rank(ctx, filtered, c)
	if err != nil {
		return Outcome{}, fmt.Errorf("rank: %w", err)
	}

	items := Assemble(ranked, req.MaxResults())

	metrics.RecommendationsTotal.WithLabelValues(string(m)).Inc()
	metrics.RecommendationResults.Observe(float64(len(items)))
	log.Debug("recommendation assembled", zap.Int("results", len(items)))

	return Outcome{
		Query:          req.Text(),
		NormalizedText: text,
		URLs:           urls,
		Constraints:    c,
		Mode:           m,
		Items:          items,
	}, nil
}
