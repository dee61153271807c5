package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"storefront-drive/internal/apperr"
)

// VenueSchedule holds a venue's operating hours as wall-clock "HH:mm" strings
// in the venue's local timezone. Overnight-spanning hours (open > close) are
// not supported.
type VenueSchedule struct {
	OpenTime  string
	CloseTime string

	openMinutes  int
	closeMinutes int
}

var reWallClock = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// ParseVenueSchedule validates the "HH:mm" pair and returns a VenueSchedule.
// Malformed input is a caller contract violation and fails with apperr.ErrInvalid.
func ParseVenueSchedule(open, close string) (VenueSchedule, error) {
	openMin, err := parseWallClock(open)
	if err != nil {
		return VenueSchedule{}, err
	}
	closeMin, err := parseWallClock(close)
	if err != nil {
		return VenueSchedule{}, err
	}
	if openMin >= closeMin {
		return VenueSchedule{}, fmt.Errorf("%w: open %q must precede close %q", apperr.ErrInvalid, open, close)
	}
	return VenueSchedule{
		OpenTime:     open,
		CloseTime:    close,
		openMinutes:  openMin,
		closeMinutes: closeMin,
	}, nil
}

func parseWallClock(s string) (int, error) {
	m := reWallClock.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: wall-clock time %q is not HH:mm", apperr.ErrInvalid, s)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	return h*60 + min, nil
}

// OpenMinutes returns the opening time as minutes since midnight.
func (s VenueSchedule) OpenMinutes() int { return s.openMinutes }

// CloseMinutes returns the closing time as minutes since midnight.
func (s VenueSchedule) CloseMinutes() int { return s.closeMinutes }

// OpenClock returns the opening hour and minute.
func (s VenueSchedule) OpenClock() (hour, minute int) {
	return s.openMinutes / 60, s.openMinutes % 60
}

// LoadLocation resolves an IANA zone name, failing with apperr.ErrInvalid on
// unknown zones.
func LoadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", apperr.ErrInvalid, name, err)
	}
	return loc, nil
}
