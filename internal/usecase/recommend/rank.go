package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/assessrec/internal/domain"
	"github.com/kailas-cloud/assessrec/internal/domain/catalog"
	"github.com/kailas-cloud/assessrec/internal/domain/constraint"
	"github.com/kailas-cloud/assessrec/internal/domain/recommend/mode"
	"github.com/kailas-cloud/assessrec/internal/domain/vector"
)

// Ranked is a record in final order. Similarity is set only in skill mode.
type Ranked struct {
	Record     catalog.Record
	Similarity *float64
}

// Ranker orders filtered records by skill similarity or by duration.
type Ranker struct {
	query    Embedder
	document Embedder
}

// NewRanker creates a ranker. query embeds the skills string, document embeds
// record texts; they may be the same embedder.
func NewRanker(query, document Embedder) *Ranker {
	return &Ranker{query: query, document: document}
}

// ModeFor picks the ranking mode for a constraint set.
func ModeFor(c constraint.Constraints) mode.Mode {
	if c.HasSkills() {
		return mode.Skill
	}
	return mode.Duration
}

// Rank orders records. An empty input returns an empty result without
// calling the embedders. Embedding failures and vector dimension mismatches
// are returned as errors.
func (r *Ranker) Rank(
	ctx context.Context, records []catalog.Record, c constraint.Constraints,
) ([]Ranked, error) {
	if len(records) == 0 {
		return []Ranked{}, nil
	}
	if ModeFor(c) == mode.Skill {
		return r.bySkills(ctx, records, c.SkillsQuery())
	}
	return byDuration(records), nil
}

func byDuration(records []catalog.Record) []Ranked {
	out := make([]Ranked, len(records))
	for i, rec := range records {
		out[i] = Ranked{Record: rec}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Record.Duration() < out[j].Record.Duration()
	})
	return out
}

func (r *Ranker) bySkills(ctx context.Context, records []catalog.Record, query string) ([]Ranked, error) {
	usage := domain.UsageFromContext(ctx)

	q, err := r.query.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed skills query: %w", err)
	}
	usage.AddTokens(q.TotalTokens)

	texts := make([]string, len(records))
	for i, rec := range records {
		texts[i] = rec.CombinedText()
	}
	docs, err := domain.EmbedAll(ctx, r.document, texts)
	if err != nil {
		return nil, fmt.Errorf("embed catalog texts: %w", err)
	}
	usage.AddTokens(docs.TotalTokens)

	sims, err := vector.CosineMany(q.Embedding, docs.Embeddings)
	if err != nil {
		return nil, fmt.Errorf("score records: %w", err)
	}

	out := make([]Ranked, len(records))
	for i, rec := range records {
		s := sims[i]
		out[i] = Ranked{Record: rec, Similarity: &s}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].Similarity > *out[j].Similarity
	})
	return out, nil
}
