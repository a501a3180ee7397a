package classifier

import (
	"fmt"
)

// UpstreamError is a classification failure at the transport or HTTP
// layer. StatusCode and Body carry the upstream response when one was
// received; otherwise only Err is set.
type UpstreamError struct {
	StatusCode int    // HTTP status from the upstream, 0 if none
	Body       string // Upstream response body, empty if unavailable
	Err        error  // Underlying transport error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		if e.Body != "" {
			return fmt.Sprintf("classifier upstream error: HTTP %d: %s", e.StatusCode, e.Body)
		}
		return fmt.Sprintf("classifier upstream error: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("classifier upstream error: %v", e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}
