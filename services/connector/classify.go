package connector

import (
	"time"
	"tripvault-backend/lib/scrapers/bookingcom"
)

type renderPath int

const (
	// fixed labeled fields, no further fetches
	summaryPath renderPath = iota
	// reproduce the confirmation page's content, two extra fetches
	confirmationPath
)

// a booking goes down the confirmation path only while its stay is
// still ahead and it carries a real detail link. everything else,
// including future stays whose only link is a "Rate" action, gets the
// summary treatment.
func classify(record bookingcom.Booking, now time.Time) renderPath {
	if record.End.After(now) && record.SeeBookingURL != "" {
		return confirmationPath
	}
	return summaryPath
}

// bills must never be future-dated
func clampDate(start, now time.Time) time.Time {
	if start.After(now) {
		return now
	}
	return start
}
