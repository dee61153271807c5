package wolt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEarliestDropoffTime_StructuredField(t *testing.T) {
	t.Parallel()

	body := `{"error_code":"INVALID_SCHEDULED_DROPOFF_TIME","earliest_scheduled_dropoff_time":"2025-11-18T23:51:14.929Z"}`
	got, ok := earliestDropoffTime(body)
	require.True(t, ok)
	require.Equal(t, time.Date(2025, 11, 18, 23, 51, 14, 929e6, time.UTC), got.UTC())
}

func TestEarliestDropoffTime_FromDetails(t *testing.T) {
	t.Parallel()

	body := `{"error_code":"INVALID_SCHEDULED_DROPOFF_TIME","details":"Scheduled time (2025-11-18T23:31:14.456Z) is too early. Earliest possible delivery at 2025-11-18T23:51:14.929Z."}`
	got, ok := earliestDropoffTime(body)
	require.True(t, ok)
	require.Equal(t, time.Date(2025, 11, 18, 23, 51, 14, 929e6, time.UTC), got.UTC())
}

func TestEarliestDropoffTime_SecondsPrecision(t *testing.T) {
	t.Parallel()

	body := `{"details":"Earliest possible delivery at 2025-11-18T23:51:14Z"}`
	got, ok := earliestDropoffTime(body)
	require.True(t, ok)
	require.Equal(t, time.Date(2025, 11, 18, 23, 51, 14, 0, time.UTC), got.UTC())
}

func TestEarliestDropoffTime_StructuredFieldWins(t *testing.T) {
	t.Parallel()

	body := `{"earliest_scheduled_dropoff_time":"2025-11-18T22:00:00.000Z","details":"Earliest possible delivery at 2025-11-18T23:51:14.929Z."}`
	got, ok := earliestDropoffTime(body)
	require.True(t, ok)
	require.Equal(t, time.Date(2025, 11, 18, 22, 0, 0, 0, time.UTC), got.UTC())
}

func TestEarliestDropoffTime_NoMatch(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
	}{
		{"not json", "INVALID_SCHEDULED_DROPOFF_TIME plain text"},
		{"no fields", `{"error_code":"INVALID_SCHEDULED_DROPOFF_TIME"}`},
		{"malformed timestamp rejected by strict pattern", `{"details":"Earliest possible delivery at 2025-13-45T99:99:99Z"}`},
		{"local-time offset not matched", `{"details":"Earliest possible delivery at 2025-11-18T23:51:14+02:00"}`},
		{"structured field unparseable", `{"earliest_scheduled_dropoff_time":"tomorrow"}`},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, ok := earliestDropoffTime(tc.body)
			require.False(t, ok)
		})
	}
}

func TestFormatTime(t *testing.T) {
	t.Parallel()

	in := time.Date(2025, 11, 18, 23, 51, 19, 929e6, time.UTC)
	require.Equal(t, "2025-11-18T23:51:19.929Z", FormatTime(in))

	// Non-UTC inputs are rendered in UTC.
	loc := time.FixedZone("EET", 2*3600)
	require.Equal(t, "2025-11-18T21:51:19.929Z", FormatTime(time.Date(2025, 11, 18, 23, 51, 19, 929e6, loc)))
}
