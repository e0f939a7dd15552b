package recommend

import "github.com/kailas-cloud/assessrec/internal/domain/recommend/result"

// Assemble projects the first maxResults ranked records into a fresh slice.
func Assemble(ranked []Ranked, maxResults int) []result.Item {
	n := min(max(maxResults, 0), len(ranked))
	items := make([]result.Item, n)
	for i := range n {
		items[i] = result.FromRecord(ranked[i].Record, ranked[i].Similarity)
	}
	return items
}
