package recommend

import (
	"context"
	"testing"

	"github.com/kailas-cloud/assessrec/internal/domain"
	"github.com/kailas-cloud/assessrec/internal/domain/catalog"
	"github.com/kailas-cloud/assessrec/internal/domain/constraint"
)

func newRecord(t *testing.T, name string, remote, adaptive catalog.Support, duration int) catalog.Record {
	t.Helper()
	r, err := catalog.New(name, "https://example.com/"+name, remote, adaptive, duration, "Knowledge & Skills", name)
	if err != nil {
		t.Fatalf("catalog.New(%s): %v", name, err)
	}
	return r
}

func names(records []catalog.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name()
	}
	return out
}

func rankedNames(ranked []Ranked) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Record.Name()
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// vecEmbedder returns fixed vectors by text; unknown texts get a zero vector.
type vecEmbedder struct {
	vectors    map[string][]float32
	dim        int
	err        error
	calls      int
	batchCalls int
	tokens     int
}

func (m *vecEmbedder) vec(text string) []float32 {
	if v, ok := m.vectors[text]; ok {
		return v
	}
	return make([]float32, m.dim)
}

func (m *vecEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec(text), TotalTokens: m.tokens}, nil
}

func (m *vecEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	m.batchCalls++
	if m.err != nil {
		return domain.BatchEmbeddingResult{}, m.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = m.vec(t)
	}
	return domain.BatchEmbeddingResult{Embeddings: out, TotalTokens: m.tokens * len(texts)}, nil
}

type staticCatalog []catalog.Record

func (s staticCatalog) All() []catalog.Record {
	out := make([]catalog.Record, len(s))
	copy(out, s)
	return out
}

type passthroughNormalizer struct{ urls []string }

func (p passthroughNormalizer) Normalize(_ context.Context, raw string) (string, []string) {
	return raw, p.urls
}

type fixedExtractor struct {
	c    constraint.Constraints
	seen []string
}

func (f *fixedExtractor) Extract(_ context.Context, text string) constraint.Constraints {
	f.seen = append(f.seen, text)
	return f.c
}
