package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/assessrec/internal/domain"
)

// DefaultMaxResults applies when the caller omits max_results.
const DefaultMaxResults = 10

// Request is a validated recommendation query.
type Request struct {
	text       string
	maxResults int
}

// New validates a recommendation request.
// maxResults == nil means "use the default"; an explicit value must be >= 1.
// ceiling <= 0 means no upper bound; a positive ceiling rejects larger values.
func New(text string, maxResults *int, ceiling int) (Request, error) {
	if strings.TrimSpace(text) == "" {
		return Request{}, fmt.Errorf("%w: text is required", domain.ErrInvalidRequest)
	}

	n := DefaultMaxResults
	if maxResults != nil {
		n = *maxResults
	}
	if n < 1 {
		return Request{}, fmt.Errorf("%w: max_results must be >= 1, got %d", domain.ErrInvalidRequest, n)
	}
	if ceiling > 0 && n > ceiling {
		return Request{}, fmt.Errorf("%w: max_results must be <= %d, got %d", domain.ErrInvalidRequest, ceiling, n)
	}

	return Request{text: text, maxResults: n}, nil
}

// Text returns the raw query text exactly as submitted.
func (r Request) Text() string { return r.text }

// MaxResults returns the number of results to return.
func (r Request) MaxResults() int { return r.maxResults }
