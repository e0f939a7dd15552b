package chi

import "github.com/kailas-cloud/assessrec/internal/domain/recommend/result"

// ErrorCode is a machine-readable error class.
type ErrorCode string

// Error codes returned in ErrorResponse.Code.
const (
	ErrorCodeBadRequest         ErrorCode = "bad_request"
	ErrorCodeValidationFailed   ErrorCode = "validation_failed"
	ErrorCodeUnauthorized       ErrorCode = "unauthorized"
	ErrorCodeCatalogUnavailable ErrorCode = "catalog_unavailable"
	ErrorCodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code   ErrorCode `json:"code"`
	Detail string    `json:"detail"`
}

// RootResponse is the liveness message.
type RootResponse struct {
	Message string `json:"message"`
}

// RecommendRequest is the POST /recommend body.
type RecommendRequest struct {
	Text       string `json:"text"`
	MaxResults *int   `json:"max_results,omitempty"`
}

// RecommendParams are the GET /recommend query parameters.
type RecommendParams struct {
	Text       string
	MaxResults *int
}

// RecommendResponse echoes the query with the ranked results.
type RecommendResponse struct {
	Query   string        `json:"query"`
	Results []result.Item `json:"results"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
