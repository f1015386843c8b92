package search

import (
	"testing"
	"time"

	"holidaze/internal/models"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func venue(name string, price float64, maxGuests int) models.Venue {
	return models.Venue{ID: name, Name: name, Price: price, MaxGuests: maxGuests}
}

func TestFilterAndSortVenuesPriceAscending(t *testing.T) {
	venues := []models.Venue{
		venue("a", 100, 4),
		venue("b", 50, 4),
		venue("c", 75, 4),
	}

	result := FilterAndSortVenues(venues, Filters{Sort: SortPriceAsc})

	assert.Len(t, result, 3)
	assert.Equal(t, []float64{50, 75, 100}, []float64{result[0].Price, result[1].Price, result[2].Price})
}

func TestFilterAndSortVenuesPriceDescending(t *testing.T) {
	venues := []models.Venue{venue("a", 50, 2), venue("b", 150, 2), venue("c", 100, 2)}

	result := FilterAndSortVenues(venues, Filters{Sort: SortPriceDesc})

	assert.Equal(t, []string{"b", "c", "a"}, []string{result[0].ID, result[1].ID, result[2].ID})
}

func TestFilterAndSortVenuesStableForEqualKeys(t *testing.T) {
	venues := []models.Venue{
		venue("first", 80, 2),
		venue("second", 80, 2),
		venue("third", 80, 2),
		venue("cheap", 20, 2),
	}

	result := FilterAndSortVenues(venues, Filters{Sort: SortPriceAsc})

	// Equal prices keep their upstream relative order so pagination is
	// consistent across re-renders.
	assert.Equal(t, []string{"cheap", "first", "second", "third"},
		[]string{result[0].ID, result[1].ID, result[2].ID, result[3].ID})
}

func TestFilterAndSortVenuesDoesNotMutateInput(t *testing.T) {
	venues := []models.Venue{venue("a", 300, 2), venue("b", 100, 2)}

	_ = FilterAndSortVenues(venues, Filters{Sort: SortPriceAsc})

	assert.Equal(t, "a", venues[0].ID)
	assert.Equal(t, "b", venues[1].ID)
}

func TestFilterAndSortVenuesTextSearch(t *testing.T) {
	beach := venue("Beach House", 120, 6)
	beach.Location.City = "Bergen"
	cabin := venue("Mountain Cabin", 90, 4)
	cabin.Location.Country = "Norway"
	flat := venue("City Flat", 70, 2)

	venues := []models.Venue{beach, cabin, flat}

	byName := FilterAndSortVenues(venues, Filters{Query: "beach"})
	assert.Len(t, byName, 1)
	assert.Equal(t, "Beach House", byName[0].Name)

	byCity := FilterAndSortVenues(venues, Filters{Query: "BERGEN"})
	assert.Len(t, byCity, 1)

	byCountry := FilterAndSortVenues(venues, Filters{Query: "norway"})
	assert.Len(t, byCountry, 1)
	assert.Equal(t, "Mountain Cabin", byCountry[0].Name)

	none := FilterAndSortVenues(venues, Filters{Query: "castle"})
	assert.Empty(t, none)
}

func TestFilterAndSortVenuesGuestMinimum(t *testing.T) {
	venues := []models.Venue{venue("small", 50, 2), venue("big", 80, 8)}

	result := FilterAndSortVenues(venues, Filters{Guests: 4})

	assert.Len(t, result, 1)
	assert.Equal(t, "big", result[0].ID)

	// Guests zero means no guest filtering.
	assert.Len(t, FilterAndSortVenues(venues, Filters{}), 2)
}

func TestFilterAndSortVenuesRatingDescending(t *testing.T) {
	top := venue("top", 100, 2)
	top.Rating = 4.8
	mid := venue("mid", 100, 2)
	mid.Rating = 3.1
	unrated := venue("unrated", 100, 2)

	result := FilterAndSortVenues([]models.Venue{unrated, mid, top}, Filters{Sort: SortRatingDesc})

	// A missing rating sorts as zero, so unrated venues go last.
	assert.Equal(t, []string{"top", "mid", "unrated"},
		[]string{result[0].ID, result[1].ID, result[2].ID})
}

func TestFilterAndSortVenuesAvailableHeuristic(t *testing.T) {
	free := venue("free", 100, 4)
	free.Count = &models.VenueCount{Bookings: 2}
	full := venue("full", 100, 4)
	full.Count = &models.VenueCount{Bookings: 4}

	result := FilterAndSortVenues([]models.Venue{free, full}, Filters{Sort: SortAvailable})

	assert.Len(t, result, 1)
	assert.Equal(t, "free", result[0].ID)
}

func TestFilterAndSortVenuesAvailableDateAware(t *testing.T) {
	booked := venue("booked", 100, 4)
	booked.Bookings = []models.Booking{{DateFrom: day(2024, 6, 1), DateTo: day(2024, 6, 5), Guests: 2}}

	// More bookings than capacity, but all clear of the requested range:
	// the date-aware check keeps it where the heuristic would drop it.
	busyButFree := venue("busy", 100, 1)
	busyButFree.Bookings = []models.Booking{
		{DateFrom: day(2024, 5, 1), DateTo: day(2024, 5, 3), Guests: 1},
		{DateFrom: day(2024, 5, 10), DateTo: day(2024, 5, 12), Guests: 1},
	}

	filters := Filters{
		Sort:     SortAvailable,
		CheckIn:  day(2024, 6, 4),
		CheckOut: day(2024, 6, 6),
	}

	result := FilterAndSortVenues([]models.Venue{booked, busyButFree}, filters)

	assert.Len(t, result, 1)
	assert.Equal(t, "busy", result[0].ID)
}

func TestPaginate(t *testing.T) {
	items := make([]int, 13)
	for i := range items {
		items[i] = i
	}

	page1, totalPages := Paginate(items, 6, 1)
	assert.Len(t, page1, 6)
	assert.Equal(t, 3, totalPages)
	assert.Equal(t, 0, page1[0])

	page3, _ := Paginate(items, 6, 3)
	assert.Len(t, page3, 1)
	assert.Equal(t, 12, page3[0])
}

func TestPaginateEmpty(t *testing.T) {
	pageItems, totalPages := Paginate([]int{}, 6, 1)
	assert.Empty(t, pageItems)
	assert.Equal(t, 0, totalPages)
}

func TestPaginateBeyondLastPage(t *testing.T) {
	pageItems, totalPages := Paginate([]int{1, 2, 3}, 6, 5)
	assert.Empty(t, pageItems)
	assert.Equal(t, 1, totalPages)
}

func TestPaginateExactMultiple(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}

	pageItems, totalPages := Paginate(items, 9, 1)
	assert.Len(t, pageItems, 9)
	assert.Equal(t, 1, totalPages)
}
