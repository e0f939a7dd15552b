package domain

import "errors"

var (
	// ErrInvalidRequest signals a malformed or incomplete recommendation request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrCatalogUnavailable signals that the catalog could not be loaded.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrGenerationFailed signals a language model failure or an unusable reply.
	ErrGenerationFailed = errors.New("generation failed")
	// ErrFetchFailed signals that external URL content could not be retrieved.
	ErrFetchFailed = errors.New("fetch failed")
)
