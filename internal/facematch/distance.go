// Package facematch scores and matches face embeddings.
package facematch

import "math"

// Threshold is the cosine distance at or below which two embeddings belong to the same person.
const Threshold = 0.4

// MaxDistance is returned for pairs that cannot be compared.
const MaxDistance = 2.0

// Embedding is a face descriptor produced by the recognition model.
type Embedding []float32

// CosineDistance returns 1 - cos(a, b), between 0 (identical) and 2 (opposite).
// Empty, zero-norm and differently sized vectors are maximally dissimilar.
func CosineDistance(a, b Embedding) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return MaxDistance
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return MaxDistance
	}

	similarity := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if similarity > 1 {
		similarity = 1
	}
	if similarity < -1 {
		similarity = -1
	}

	return 1 - similarity
}

// IsMatch reports whether two embeddings are within Threshold.
func IsMatch(a, b Embedding) bool {
	return CosineDistance(a, b) <= Threshold
}
