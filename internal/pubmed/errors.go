// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"errors"
	"fmt"
)

// Failure classes surfaced by the client. All are terminal for the run:
// the pipeline reports them and exits, it never retries past the
// transport helper. Per prd001-fetch R5.
var (
	// ErrNetwork indicates a transport failure or a non-200 response.
	ErrNetwork = errors.New("pubmed network failure")

	// ErrParse indicates a response body that could not be decoded.
	ErrParse = errors.New("malformed pubmed response")

	// ErrRateLimited indicates HTTP 429 persisted through every retry.
	ErrRateLimited = errors.New("pubmed rate limit exceeded")
)

// APIError carries the call context for a failed E-utilities request.
// It wraps one of the sentinel errors above so callers can classify with
// errors.Is.
type APIError struct {
	Endpoint   string // "esearch.fcgi" or "efetch.fcgi"
	StatusCode int    // zero when the HTTP exchange never completed
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("pubmed %s: HTTP %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("pubmed %s: %v", e.Endpoint, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

func apiErr(endpoint string, status int, err error) *APIError {
	return &APIError{Endpoint: endpoint, StatusCode: status, Err: err}
}
