// Package availability holds the day-granular date math and the booking
// validator shared by every booking entry point. All functions are pure.
package availability

import (
	"sort"
	"time"

	"holidaze/internal/models"
)

// Reason explains why a candidate booking was rejected
type Reason string

const (
	ReasonMissingFields     Reason = "missing_fields"
	ReasonInvalidGuestCount Reason = "invalid_guest_count"
	ReasonInvertedDateRange Reason = "inverted_date_range"
	ReasonDateRangeOverlap  Reason = "date_range_overlap"
)

// ValidationResult is the outcome of validating a candidate booking
type ValidationResult struct {
	Valid  bool
	Reason Reason
}

var valid = ValidationResult{Valid: true}

func invalid(r Reason) ValidationResult {
	return ValidationResult{Reason: r}
}

// NormalizeToDay truncates a timestamp to midnight in its own location so
// that comparisons between picker selections and upstream timestamps ignore
// time-of-day noise.
func NormalizeToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetweenInclusive returns every calendar day from start to end,
// both inclusive. The result is empty when end is before start.
func DaysBetweenInclusive(start, end time.Time) []time.Time {
	start = NormalizeToDay(start)
	end = NormalizeToDay(end)
	if end.Before(start) {
		return nil
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// RangesOverlap reports whether two inclusive day ranges share at least one
// calendar day. Ranges that merely touch at a boundary (checkout day equal
// to the next check-in day) count as overlapping; back-to-back bookings on
// the same day are rejected rather than risking a double booking.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	aStart = NormalizeToDay(aStart)
	aEnd = NormalizeToDay(aEnd)
	bStart = NormalizeToDay(bStart)
	bEnd = NormalizeToDay(bEnd)
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// ValidateBookingRequest decides whether a candidate booking may be
// submitted given the venue's currently known bookings. It is advisory:
// the upstream API remains the authority, and a concurrent booking by
// another client can still turn a Valid result into a server-side conflict.
func ValidateBookingRequest(dateFrom, dateTo time.Time, guests int, existing []models.Booking) ValidationResult {
	if dateFrom.IsZero() || dateTo.IsZero() {
		return invalid(ReasonMissingFields)
	}
	if guests < 1 {
		return invalid(ReasonInvalidGuestCount)
	}

	from := NormalizeToDay(dateFrom)
	to := NormalizeToDay(dateTo)
	// Zero-night stays (from == to) are degenerate and rejected too.
	if !to.After(from) {
		return invalid(ReasonInvertedDateRange)
	}

	for _, b := range existing {
		if RangesOverlap(from, to, b.DateFrom, b.DateTo) {
			return invalid(ReasonDateRangeOverlap)
		}
	}
	return valid
}

// ComputeBlockedDays returns the sorted, deduplicated union of all calendar
// days covered by the given bookings, for marking unavailable days on a
// booking calendar.
func ComputeBlockedDays(existing []models.Booking) []time.Time {
	seen := make(map[time.Time]struct{})
	for _, b := range existing {
		for _, d := range DaysBetweenInclusive(b.DateFrom, b.DateTo) {
			seen[d] = struct{}{}
		}
	}

	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
