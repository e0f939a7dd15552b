package domain

import "context"

type embeddingUsageKey struct{}

// EmbeddingUsage collects token usage for a single recommendation request.
// The HTTP handler puts a mutable pointer into the context before calling the
// service; the ranker records tokens after embedding; the handler reads it for
// response headers.
type EmbeddingUsage struct {
	TotalTokens int
	Calls       int
}

// NewContextWithUsage returns a context with an embedded usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *EmbeddingUsage) {
	u := &EmbeddingUsage{}
	return context.WithValue(ctx, embeddingUsageKey{}, u), u
}

// UsageFromContext extracts the usage collector from context. Returns nil if not set.
func UsageFromContext(ctx context.Context) *EmbeddingUsage {
	u, _ := ctx.Value(embeddingUsageKey{}).(*EmbeddingUsage)
	return u
}

// AddTokens records one embedding call and the tokens it consumed.
// Cache hits count as calls with zero tokens.
func (u *EmbeddingUsage) AddTokens(n int) {
	if u != nil {
		u.TotalTokens += n
		u.Calls++
	}
}

// Used reports whether any embedding call was made.
func (u *EmbeddingUsage) Used() bool {
	return u != nil && u.Calls > 0
}
