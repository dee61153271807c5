package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"storefront-drive/internal/apperr"
)

func TestParseVenueSchedule_OK(t *testing.T) {
	t.Parallel()

	s, err := ParseVenueSchedule("08:00", "18:30")
	require.NoError(t, err)
	require.Equal(t, 8*60, s.OpenMinutes())
	require.Equal(t, 18*60+30, s.CloseMinutes())

	h, m := s.OpenClock()
	require.Equal(t, 8, h)
	require.Equal(t, 0, m)
}

func TestParseVenueSchedule_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		open  string
		close string
	}{
		{"bad open format", "8:00", "18:00"},
		{"bad close format", "08:00", "18.00"},
		{"hour out of range", "24:00", "18:00"},
		{"minute out of range", "08:60", "18:00"},
		{"open after close", "19:00", "18:00"},
		{"open equals close", "18:00", "18:00"},
		{"empty", "", "18:00"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseVenueSchedule(tc.open, tc.close)
			require.Error(t, err)
			require.True(t, errors.Is(err, apperr.ErrInvalid))
		})
	}
}

func TestLoadLocation(t *testing.T) {
	t.Parallel()

	loc, err := LoadLocation("Europe/Athens")
	require.NoError(t, err)
	require.NotNil(t, loc)

	_, err = LoadLocation("Mars/OlympusMons")
	require.True(t, errors.Is(err, apperr.ErrInvalid))
}

func TestDeliveryStatus_Valid(t *testing.T) {
	t.Parallel()

	require.True(t, StatusInTransit.Valid())
	require.True(t, StatusCancelled.Valid())
	require.False(t, DeliveryStatus("lost").Valid())
	require.False(t, DeliveryStatus("").Valid())
}
