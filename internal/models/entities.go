package models

import (
	"time"
)

// Media is an image reference with alternative text
type Media struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// Location describes where a venue is situated. All fields are optional.
type Location struct {
	Address   string  `json:"address,omitempty"`
	City      string  `json:"city,omitempty"`
	Zip       string  `json:"zip,omitempty"`
	Country   string  `json:"country,omitempty"`
	Continent string  `json:"continent,omitempty"`
	Lat       float64 `json:"lat,omitempty"`
	Lng       float64 `json:"lng,omitempty"`
}

// VenueMeta holds the amenity flags of a venue
type VenueMeta struct {
	Wifi      bool `json:"wifi"`
	Parking   bool `json:"parking"`
	Breakfast bool `json:"breakfast"`
	Pets      bool `json:"pets"`
}

// VenueCount mirrors the upstream _count object on venues
type VenueCount struct {
	Bookings int `json:"bookings"`
}

// Venue represents a bookable listing owned by a venue manager.
// Bookings are only populated when the venue was fetched with them embedded.
type Venue struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Media       []Media     `json:"media,omitempty"`
	Price       float64     `json:"price"`
	MaxGuests   int         `json:"maxGuests"`
	Rating      float64     `json:"rating,omitempty"`
	Created     time.Time   `json:"created"`
	Updated     time.Time   `json:"updated,omitempty"`
	Meta        VenueMeta   `json:"meta"`
	Location    Location    `json:"location"`
	Owner       *Profile    `json:"owner,omitempty"`
	Bookings    []Booking   `json:"bookings,omitempty"`
	Count       *VenueCount `json:"_count,omitempty"`
}

// BookingCount returns the number of bookings known for the venue,
// preferring the embedded list over the upstream counter.
func (v *Venue) BookingCount() int {
	if len(v.Bookings) > 0 {
		return len(v.Bookings)
	}
	if v.Count != nil {
		return v.Count.Bookings
	}
	return 0
}

// Booking represents a reserved date range on a venue
type Booking struct {
	ID       string    `json:"id"`
	DateFrom time.Time `json:"dateFrom"`
	DateTo   time.Time `json:"dateTo"`
	Guests   int       `json:"guests"`
	Created  time.Time `json:"created,omitempty"`
	Updated  time.Time `json:"updated,omitempty"`
	Venue    *Venue    `json:"venue,omitempty"`
	Customer *Profile  `json:"customer,omitempty"`
}

// ProfileCount mirrors the upstream _count object on profiles
type ProfileCount struct {
	Venues   int `json:"venues"`
	Bookings int `json:"bookings"`
}

// Profile represents a user account. The name is the unique handle and the
// VenueManager flag gates every venue-mutating operation.
type Profile struct {
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Bio          string        `json:"bio,omitempty"`
	Avatar       *Media        `json:"avatar,omitempty"`
	Banner       *Media        `json:"banner,omitempty"`
	VenueManager bool          `json:"venueManager"`
	Count        *ProfileCount `json:"_count,omitempty"`
}

// Credentials are the upstream credentials held for a logged-in profile.
// They live only in the session store, never in gateway responses.
type Credentials struct {
	AccessToken string `json:"accessToken"`
	Name        string `json:"name"`
}

// Session is the gateway-side session state kept in the session store
type Session struct {
	Credentials  Credentials `json:"credentials"`
	Email        string      `json:"email"`
	VenueManager bool        `json:"venueManager"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// ProfileStats is the session-scoped cached view of a profile's counters
type ProfileStats struct {
	Venues   int       `json:"venues"`
	Bookings int       `json:"bookings"`
	CachedAt time.Time `json:"cachedAt"`
}
