package result

import "github.com/kailas-cloud/assessrec/internal/domain/catalog"

// Item is one recommended assessment as returned to callers.
type Item struct {
	Name            string   `json:"name"`
	URL             string   `json:"url"`
	RemoteSupport   string   `json:"remote_support"`
	AdaptiveSupport string   `json:"adaptive_support"`
	Duration        int      `json:"duration"`
	TestTypeMapped  string   `json:"test_type_mapped"`
	Similarity      *float64 `json:"similarity,omitempty"`
}

// FromRecord projects a catalog record. similarity is nil outside skill mode.
func FromRecord(r catalog.Record, similarity *float64) Item {
	item := Item{
		Name:            r.Name(),
		URL:             r.URL(),
		RemoteSupport:   string(r.RemoteSupport()),
		AdaptiveSupport: string(r.AdaptiveSupport()),
		Duration:        r.Duration(),
		TestTypeMapped:  r.TestType(),
	}
	if similarity != nil {
		s := *similarity
		item.Similarity = &s
	}
	return item
}
