// Package search is the in-memory venue filter/sort engine and pagination
// helper. Every view goes through it instead of reimplementing its own
// filtering. All functions return new slices and never mutate their input.
package search

import (
	"sort"
	"strings"
	"time"

	"holidaze/internal/availability"
	"holidaze/internal/models"
)

// Sort modes accepted in Filters.Sort
const (
	SortNone       = ""
	SortPriceAsc   = "priceAsc"
	SortPriceDesc  = "priceDesc"
	SortAvailable  = "available"
	SortRatingDesc = "ratingDesc"
)

// Filters is the transient search state applied to a venue list
type Filters struct {
	Query    string
	Guests   int
	Sort     string
	CheckIn  time.Time
	CheckOut time.Time
}

// FilterAndSortVenues applies the text search, guest minimum and sort mode
// to the given venue list. Sorts are stable so that pagination stays
// consistent across repeated renders of the same filter state. With no sort
// mode the upstream order is preserved.
func FilterAndSortVenues(venues []models.Venue, f Filters) []models.Venue {
	result := make([]models.Venue, 0, len(venues))

	term := strings.ToLower(strings.TrimSpace(f.Query))
	for _, v := range venues {
		if term != "" && !matchesTerm(&v, term) {
			continue
		}
		if f.Guests > 0 && v.MaxGuests < f.Guests {
			continue
		}
		result = append(result, v)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price < result[j].Price })
	case SortPriceDesc:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price > result[j].Price })
	case SortRatingDesc:
		// A missing rating sorts as zero.
		sort.SliceStable(result, func(i, j int) bool { return result[i].Rating > result[j].Rating })
	case SortAvailable:
		result = filterAvailable(result, f)
	}

	return result
}

// filterAvailable keeps venues that look bookable. When the filters carry a
// concrete date range the check is date-aware against each venue's known
// bookings; without dates it falls back to the coarse capacity heuristic
// (booking count below maxGuests) the venue browser has always used.
func filterAvailable(venues []models.Venue, f Filters) []models.Venue {
	dateAware := !f.CheckIn.IsZero() && !f.CheckOut.IsZero()

	kept := venues[:0:0]
	for _, v := range venues {
		if dateAware {
			if !rangeFree(&v, f.CheckIn, f.CheckOut) {
				continue
			}
		} else {
			capacity := v.MaxGuests
			if capacity < 1 {
				capacity = 1
			}
			if v.BookingCount() >= capacity {
				continue
			}
		}
		kept = append(kept, v)
	}
	return kept
}

func rangeFree(v *models.Venue, checkIn, checkOut time.Time) bool {
	for _, b := range v.Bookings {
		if availability.RangesOverlap(checkIn, checkOut, b.DateFrom, b.DateTo) {
			return false
		}
	}
	return true
}

func matchesTerm(v *models.Venue, term string) bool {
	return strings.Contains(strings.ToLower(v.Name), term) ||
		strings.Contains(strings.ToLower(v.Location.City), term) ||
		strings.Contains(strings.ToLower(v.Location.Country), term) ||
		strings.Contains(strings.ToLower(v.Location.Address), term)
}

// Paginate slices items into the 1-based page of the given size and returns
// the page together with the total page count (ceil of len/size). It does
// not clamp the page number; out-of-range pages yield an empty slice and
// callers derive prev/next state from the totals.
func Paginate[T any](items []T, pageSize, page int) ([]T, int) {
	if pageSize < 1 {
		return nil, 0
	}
	totalPages := (len(items) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start < 0 || start >= len(items) {
		return []T{}, totalPages
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out, totalPages
}
