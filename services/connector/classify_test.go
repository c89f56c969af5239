package connector

import (
	"testing"
	"time"
	"tripvault-backend/lib/scrapers/bookingcom"
	"tripvault-backend/lib/timezone"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	now := time.Date(2024, time.June, 16, 12, 0, 0, 0, timezone.Location)
	past := time.Date(2024, time.June, 10, 0, 0, 0, 0, timezone.Location)
	future := time.Date(2024, time.June, 20, 0, 0, 0, 0, timezone.Location)

	testCases := []struct {
		name     string
		record   bookingcom.Booking
		expected renderPath
	}{
		{
			name:     "future stay with detail link",
			record:   bookingcom.Booking{End: future, SeeBookingURL: "https://secure.booking.com/mybooking.html?bn=1"},
			expected: confirmationPath,
		},
		{
			name:     "past stay with detail link",
			record:   bookingcom.Booking{End: past, SeeBookingURL: "https://secure.booking.com/mybooking.html?bn=2"},
			expected: summaryPath,
		},
		{
			name:     "future stay whose only link was a Rate action",
			record:   bookingcom.Booking{End: future},
			expected: summaryPath,
		},
		{
			name:     "unparseable end date",
			record:   bookingcom.Booking{SeeBookingURL: "https://secure.booking.com/mybooking.html?bn=3"},
			expected: summaryPath,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, classify(test.record, now))
		})
	}
}

func TestClampDate(t *testing.T) {
	now := time.Date(2024, time.June, 16, 12, 0, 0, 0, timezone.Location)
	past := time.Date(2024, time.June, 10, 0, 0, 0, 0, timezone.Location)
	future := time.Date(2024, time.June, 20, 0, 0, 0, 0, timezone.Location)

	require.True(t, clampDate(past, now).Equal(past))
	// bills are never future-dated
	require.True(t, clampDate(future, now).Equal(now))
}
