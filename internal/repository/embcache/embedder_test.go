package embcache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/assessrec/internal/domain"
)

func TestEmbed_MissThenHit(t *testing.T) {
	inner := &mockEmbedder{tokens: 5}
	ce, ms := newTestCachedEmbedder(t, inner)
	ctx := context.Background()

	first, err := ce.Embed(ctx, "java")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if first.TotalTokens != 5 || first.Embedding[0] != 4 {
		t.Fatalf("miss result = %+v", first)
	}
	if len(ms.data) != 1 {
		t.Fatalf("expected 1 cached entry, got %d", len(ms.data))
	}
	for key, ttl := range ms.ttls {
		if !strings.HasPrefix(key, "assessrec:emb:test-model:") {
			t.Errorf("unexpected key %q", key)
		}
		if ttl != time.Hour {
			t.Errorf("ttl = %v, want 1h", ttl)
		}
	}

	second, err := ce.Embed(ctx, "java")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if second.TotalTokens != 0 {
		t.Errorf("cache hit must report 0 tokens, got %d", second.TotalTokens)
	}
	if second.Embedding[0] != 4 || second.Embedding[1] != 1 {
		t.Errorf("hit vector = %v", second.Embedding)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
}

func TestEmbed_InnerError(t *testing.T) {
	inner := &mockEmbedder{err: domain.ErrEmbeddingProviderError}
	ce, ms := newTestCachedEmbedder(t, inner)

	_, err := ce.Embed(context.Background(), "java")
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if len(ms.data) != 0 {
		t.Error("failed embedding must not be cached")
	}
}

func TestEmbed_StoreErrorsDegradeToInner(t *testing.T) {
	inner := &mockEmbedder{tokens: 1}
	ce, ms := newTestCachedEmbedder(t, inner)
	ms.getErr = errors.New("connection refused")
	ms.setErr = errors.New("connection refused")

	res, err := ce.Embed(context.Background(), "go")
	if err != nil {
		t.Fatalf("store errors must not fail embedding: %v", err)
	}
	if res.Embedding[0] != 2 {
		t.Errorf("vector = %v", res.Embedding)
	}
}

func TestEmbed_CorruptEntryIsMiss(t *testing.T) {
	inner := &mockEmbedder{}
	ce, ms := newTestCachedEmbedder(t, inner)
	ms.data[ce.cacheKey("go")] = []byte{1, 2, 3}

	if _, err := ce.Embed(context.Background(), "go"); err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("corrupt entry should fall through to inner, calls = %d", inner.calls)
	}
}

func TestBatchEmbed_OnlyMissesGoInner(t *testing.T) {
	inner := &mockEmbedder{tokens: 3}
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_cache_total"}, []string{"result"})
	ms := newMemStore()
	ce := New(inner, ms, Config{Model: "m", CacheTotal: counter})
	ctx := context.Background()

	if _, err := ce.Embed(ctx, "bb"); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	res, err := ce.BatchEmbed(ctx, []string{"a", "bb", "ccc"})
	if err != nil {
		t.Fatalf("BatchEmbed: %v", err)
	}

	if inner.batchCalls != 1 {
		t.Fatalf("inner batch calls = %d, want 1", inner.batchCalls)
	}
	if got := inner.batchSeen[0]; len(got) != 2 || got[0] != "a" || got[1] != "ccc" {
		t.Errorf("inner saw %v, want [a ccc]", got)
	}
	for i, want := range []float32{1, 2, 3} {
		if res.Embeddings[i][0] != want {
			t.Errorf("embeddings[%d][0] = %v, want %v", i, res.Embeddings[i][0], want)
		}
	}
	if res.TotalTokens != 6 {
		t.Errorf("TotalTokens = %d, want 6 (misses only)", res.TotalTokens)
	}
	if got := testutil.ToFloat64(counter.WithLabelValues("hit")); got != 1 {
		t.Errorf("hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(counter.WithLabelValues("miss")); got != 3 {
		t.Errorf("misses = %v, want 3", got)
	}
}

func TestBatchEmbed_AllCached(t *testing.T) {
	inner := &mockEmbedder{}
	ce, _ := newTestCachedEmbedder(t, inner)
	ctx := context.Background()

	if _, err := ce.BatchEmbed(ctx, []string{"x", "yy"}); err != nil {
		t.Fatalf("first batch: %v", err)
	}
	res, err := ce.BatchEmbed(ctx, []string{"yy", "x"})
	if err != nil {
		t.Fatalf("second batch: %v", err)
	}
	if inner.batchCalls != 1 {
		t.Errorf("inner batch calls = %d, want 1", inner.batchCalls)
	}
	if res.TotalTokens != 0 || res.Embeddings[0][0] != 2 || res.Embeddings[1][0] != 1 {
		t.Errorf("cached batch = %+v", res)
	}
}

func TestBatchEmbed_Empty(t *testing.T) {
	ce, _ := newTestCachedEmbedder(t, &mockEmbedder{})
	res, err := ce.BatchEmbed(context.Background(), nil)
	if err != nil || res.Embeddings != nil {
		t.Fatalf("empty batch = %+v, %v", res, err)
	}
}

func TestBatchEmbed_InnerError(t *testing.T) {
	ce, _ := newTestCachedEmbedder(t, &mockEmbedder{err: domain.ErrEmbeddingProviderError})
	if _, err := ce.BatchEmbed(context.Background(), []string{"a"}); !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestVectorRoundTrip(t *testing.T) {
	in := []float32{0.25, -1.5, 3}
	out, err := bytesToVector(vectorToCacheBytes(in))
	if err != nil {
		t.Fatalf("bytesToVector: %v", err)
	}
	for i := range in {
		if in[i] != out[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], in[i])
		}
	}
	if _, err := bytesToVector([]byte{1}); err == nil {
		t.Error("expected error for truncated data")
	}
}
