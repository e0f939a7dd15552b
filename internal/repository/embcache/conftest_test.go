package embcache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kailas-cloud/assessrec/internal/db"
	"github.com/kailas-cloud/assessrec/internal/domain"
)

// mockEmbedder returns a vector derived from the text length.
type mockEmbedder struct {
	err        error
	tokens     int
	calls      int
	batchCalls int
	batchSeen  [][]string
}

func vecFor(text string) []float32 { return []float32{float32(len(text)), 1} }

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: vecFor(text), PromptTokens: m.tokens, TotalTokens: m.tokens}, nil
}

func (m *mockEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	m.batchCalls++
	m.batchSeen = append(m.batchSeen, texts)
	if m.err != nil {
		return domain.BatchEmbeddingResult{}, m.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = vecFor(t)
	}
	return domain.BatchEmbeddingResult{
		Embeddings:   out,
		PromptTokens: m.tokens * len(texts),
		TotalTokens:  m.tokens * len(texts),
	}, nil
}

// memStore is an in-memory KV store recording TTLs.
type memStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func newTestCachedEmbedder(t *testing.T, inner *mockEmbedder) (*CachedEmbedder, *memStore) {
	t.Helper()
	ms := newMemStore()
	return New(inner, ms, Config{Model: "test-model", TTL: time.Hour}), ms
}
