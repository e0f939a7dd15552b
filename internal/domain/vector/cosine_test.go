package vector

import (
	"errors"
	"math"
	"testing"

	"github.com/kailas-cloud/assessrec/internal/domain"
)

const eps = 1e-9

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"scaled", []float32{1, 1}, []float32{5, 5}, 1},
		{"zero query", []float32{0, 0}, []float32{1, 1}, 0},
		{"zero candidate", []float32{1, 1}, []float32{0, 0}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Cosine(tc.a, tc.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tc.want) > eps {
				t.Errorf("Cosine = %f, want %f", got, tc.want)
			}
		})
	}
}

func TestCosine_Bounded(t *testing.T) {
	a := []float32{0.1234567, 0.7654321, 0.3333333}
	got, err := Cosine(a, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got > 1 || got < -1 {
		t.Errorf("similarity out of range: %f", got)
	}
}

func TestCosine_DimMismatch(t *testing.T) {
	_, err := Cosine([]float32{1, 2}, []float32{1})
	if !errors.Is(err, domain.ErrVectorDimMismatch) {
		t.Fatalf("expected ErrVectorDimMismatch, got %v", err)
	}
}

func TestCosineMany_PreservesOrder(t *testing.T) {
	q := []float32{1, 0}
	scores, err := CosineMany(q, [][]float32{{0, 1}, {1, 0}, {-1, 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0, 1, -1}
	for i := range want {
		if math.Abs(scores[i]-want[i]) > eps {
			t.Errorf("scores[%d] = %f, want %f", i, scores[i], want[i])
		}
	}
}
