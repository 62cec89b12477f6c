package searxng

import "fmt"

// UpstreamError reports a failed request to the SearXNG instance: a
// network error, a timeout, or a non-success status. StatusCode is
// zero when no response was received.
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("searxng request failed with status %d: %s", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("searxng request failed: %s", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ParseError reports a response body that could not be decoded as a
// SearXNG result list.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to decode searxng response: %s", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
