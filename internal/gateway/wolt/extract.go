package wolt

import (
	"encoding/json"
	"regexp"
	"time"
)

// TimeLayout is the wire format for scheduled instants, matching the
// provider's millisecond-precision ISO-8601 UTC timestamps.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTime renders an instant in the provider's wire format.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// reEarliest matches the earliest acceptable instant embedded in the
// rejection's free-text details, e.g.
//
//	"Scheduled time (...) is too early. Earliest possible delivery at 2025-11-18T23:51:14.929Z."
//
// The pattern is strict ISO-8601; loose matching risks capturing malformed
// substrings.
var reEarliest = regexp.MustCompile(`Earliest possible delivery at (\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d{3})?Z)`)

type rejectionBody struct {
	EarliestScheduledDropoffTime string `json:"earliest_scheduled_dropoff_time"`
	Details                      string `json:"details"`
}

// earliestDropoffTime extracts the earliest acceptable dropoff instant from a
// scheduling-conflict rejection body. It prefers the structured field and
// falls back to pattern-matching the free-text details. The second return is
// false when neither yields a parseable instant.
func earliestDropoffTime(body string) (time.Time, bool) {
	var rej rejectionBody
	if err := json.Unmarshal([]byte(body), &rej); err != nil {
		return time.Time{}, false
	}

	raw := rej.EarliestScheduledDropoffTime
	if raw == "" && rej.Details != "" {
		if m := reEarliest.FindStringSubmatch(rej.Details); m != nil {
			raw = m[1]
		}
	}
	if raw == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
