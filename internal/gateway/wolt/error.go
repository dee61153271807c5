package wolt

import (
	"fmt"
	"strings"
)

// schedulingConflictMarker is the literal the provider embeds in rejections of
// a too-early scheduled dropoff time. Only this rejection class is retried.
const schedulingConflictMarker = "INVALID_SCHEDULED_DROPOFF_TIME"

// APIError is a non-2xx response from the Wolt Drive API. The raw body is
// preserved verbatim so callers can surface the provider's own message.
type APIError struct {
	StatusCode int
	Body       string
	// AfterRetry marks errors from the single negotiation resubmission, so
	// callers can tell a corrected time was already attempted.
	AfterRetry bool
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.AfterRetry {
		return fmt.Sprintf("wolt api error after retry: %s", e.Body)
	}
	return fmt.Sprintf("wolt api error: %s", e.Body)
}

// SchedulingConflict reports whether the rejection is the specific
// "scheduled time too early" class that the negotiator may retry.
func (e *APIError) SchedulingConflict() bool {
	return strings.Contains(e.Body, schedulingConflictMarker)
}
