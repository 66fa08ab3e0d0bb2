package facematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Embedding
		expected float64
	}{
		{"Identical", Embedding{1, 2, 3}, Embedding{1, 2, 3}, 0},
		{"Scaled", Embedding{1, 2, 3}, Embedding{2, 4, 6}, 0},
		{"Orthogonal", Embedding{1, 0}, Embedding{0, 1}, 1},
		{"Opposite", Embedding{1, 0}, Embedding{-1, 0}, 2},
		{"ZeroLeft", Embedding{0, 0, 0}, Embedding{1, 2, 3}, MaxDistance},
		{"ZeroBoth", Embedding{0, 0}, Embedding{0, 0}, MaxDistance},
		{"Empty", Embedding{}, Embedding{}, MaxDistance},
		{"DimensionMismatch", Embedding{1, 2}, Embedding{1, 2, 3}, MaxDistance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CosineDistance(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCosineDistance_Symmetric(t *testing.T) {
	pairs := [][2]Embedding{
		{{0.1, -0.4, 0.9}, {0.3, 0.2, -0.5}},
		{{1, 1, 1, 1}, {1, 0, 1, 0}},
		{{-2.5, 0.01}, {3, 7}},
	}

	for _, p := range pairs {
		assert.InDelta(t, CosineDistance(p[0], p[1]), CosineDistance(p[1], p[0]), 1e-12)
	}
}

func TestCosineDistance_SelfIsZero(t *testing.T) {
	v := make(Embedding, 128)
	for i := range v {
		v[i] = float32(i%7) - 3.5
	}

	assert.InDelta(t, 0, CosineDistance(v, v), 1e-9)
}

func TestIsMatch_Threshold(t *testing.T) {
	// cos(a, b) = 0.6 gives a distance of exactly the threshold.
	a := Embedding{1, 0}
	b := Embedding{0.6, 0.8}
	assert.True(t, IsMatch(a, b))

	c := Embedding{0.5, 0.8660254}
	assert.False(t, IsMatch(a, c))
}
