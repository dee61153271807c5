// Package schedule computes legally bookable drop-off times from venue
// operating hours. All functions are pure: the current instant is always an
// explicit argument, never read from the wall clock.
package schedule

import (
	"time"

	"storefront-drive/internal/domain"
)

// Empirically tuned buffers; kept as named constants, not derived.
const (
	// PreRequestSafetyBuffer absorbs clock skew, network latency and provider
	// processing time before any open/close comparison is made.
	PreRequestSafetyBuffer = 15 * time.Minute

	// MinImmediateWindow is the smallest remaining open window that still
	// allows an immediate order: 30 minutes minimum prep plus a 60-minute
	// delivery window.
	MinImmediateWindow = 90 * time.Minute

	// DefaultPrep is applied when the caller does not supply a preparation time.
	DefaultPrep = 60 * time.Minute

	minPrep = 30 * time.Minute
	maxPrep = 180 * time.Minute
)

// NormalizePrep clamps a preparation duration into the accepted [30m, 180m]
// domain; non-positive values fall back to DefaultPrep.
func NormalizePrep(prep time.Duration) time.Duration {
	switch {
	case prep <= 0:
		return DefaultPrep
	case prep < minPrep:
		return minPrep
	case prep > maxPrep:
		return maxPrep
	default:
		return prep
	}
}

// ScheduledDropoff returns the earliest bookable drop-off instant, in UTC.
//
// A 15-minute safety buffer is applied to now before comparing against venue
// hours. Before open the order is scheduled for today's opening plus prep;
// at or after close it rolls to tomorrow's opening plus prep. While the venue
// is open the buffered instant plus prep is used, unless that would land at or
// after closing time, in which case it also rolls to tomorrow's opening.
func ScheduledDropoff(s domain.VenueSchedule, loc *time.Location, prep time.Duration, now time.Time) time.Time {
	prep = NormalizePrep(prep)
	base := now.Add(PreRequestSafetyBuffer)

	local := base.In(loc)
	localMinutes := local.Hour()*60 + local.Minute()

	openH, openM := s.OpenClock()

	openToday := time.Date(local.Year(), local.Month(), local.Day(), openH, openM, 0, 0, loc)

	switch {
	case localMinutes < s.OpenMinutes():
		return openToday.Add(prep).UTC()

	case localMinutes >= s.CloseMinutes():
		return openToday.AddDate(0, 0, 1).Add(prep).UTC()

	default:
		scheduled := base.Add(prep)
		schedLocal := scheduled.In(loc)
		schedMinutes := schedLocal.Hour()*60 + schedLocal.Minute()
		// Rolling past midnight counts as past close too.
		if schedLocal.Day() != local.Day() || schedMinutes >= s.CloseMinutes() {
			return openToday.AddDate(0, 0, 1).Add(prep).UTC()
		}
		return scheduled.UTC()
	}
}

// MinutesUntilClose returns the venue-local minutes remaining until closing
// time. Negative when the venue is already closed.
func MinutesUntilClose(s domain.VenueSchedule, loc *time.Location, now time.Time) int {
	local := now.In(loc)
	return s.CloseMinutes() - (local.Hour()*60 + local.Minute())
}

// VenueOpen reports whether the venue is open at the given instant.
func VenueOpen(s domain.VenueSchedule, loc *time.Location, now time.Time) bool {
	local := now.In(loc)
	m := local.Hour()*60 + local.Minute()
	return m >= s.OpenMinutes() && m < s.CloseMinutes()
}

// ReadyForImmediateDelivery reports whether an immediate order can still be
// fulfilled: at least MinImmediateWindow must remain before closing.
func ReadyForImmediateDelivery(s domain.VenueSchedule, loc *time.Location, now time.Time) bool {
	return time.Duration(MinutesUntilClose(s, loc, now))*time.Minute >= MinImmediateWindow
}
