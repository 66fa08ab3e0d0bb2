package entity

import (
	"time"

	"FaceAttendance/internal/facematch"
)

type FaceEmbedding struct {
	EnrollNumber string              `json:"enroll_number"`
	Embedding    facematch.Embedding `json:"embedding"`
	CreatedAt    time.Time           `json:"created_at"`
}

// Candidates converts stored embeddings to matcher candidates, keeping their order.
func Candidates(embeddings []FaceEmbedding) []facematch.Candidate {
	candidates := make([]facematch.Candidate, 0, len(embeddings))
	for _, e := range embeddings {
		candidates = append(candidates, facematch.Candidate{
			ID:        e.EnrollNumber,
			Embedding: e.Embedding,
		})
	}
	return candidates
}
