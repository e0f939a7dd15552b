// Package vector implements similarity math over embedding vectors.
package vector

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/assessrec/internal/domain"
)

// Cosine returns the cosine similarity of a and b in [-1, 1].
// A zero-norm vector on either side yields 0.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", domain.ErrVectorDimMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// float rounding can push |sim| slightly past 1
	return math.Max(-1, math.Min(1, sim)), nil
}

// CosineMany scores every candidate against query, preserving candidate order.
func CosineMany(query []float32, candidates [][]float32) ([]float64, error) {
	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		s, err := Cosine(query, c)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		scores[i] = s
	}
	return scores, nil
}
