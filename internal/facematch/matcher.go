package facematch

// Candidate is an enrolled embedding keyed by enroll number.
type Candidate struct {
	ID        string
	Embedding Embedding
}

// Match returns the ids of candidates close to at least one query embedding.
// Each candidate is reported once, in candidate order; scanning a candidate stops
// at its first matching query.
func Match(queries []Embedding, candidates []Candidate) []string {
	present := make([]string, 0)

	for _, candidate := range candidates {
		for _, query := range queries {
			if IsMatch(candidate.Embedding, query) {
				present = append(present, candidate.ID)
				break
			}
		}
	}

	return present
}
