package models

// RegisterRequest is the payload for creating a new profile
type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	VenueManager bool   `json:"venueManager"`
}

// LoginRequest is the payload for opening a gateway session
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the gateway session token and the resolved profile
type LoginResponse struct {
	SessionID string  `json:"sessionId"`
	Profile   Profile `json:"profile"`
}

// VenueListResponse is a filtered, sorted and paginated page of venues
type VenueListResponse struct {
	Items      []Venue `json:"items"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalCount int     `json:"totalCount"`
	TotalPages int     `json:"totalPages"`
	HasPrev    bool    `json:"hasPrev"`
	HasNext    bool    `json:"hasNext"`
}

// VenueDetailResponse is a single venue plus the calendar days that are
// already covered by existing bookings, formatted as YYYY-MM-DD.
type VenueDetailResponse struct {
	Venue       Venue    `json:"venue"`
	BlockedDays []string `json:"blockedDays,omitempty"`
}

// VenueRequest is the payload for creating or updating a venue
type VenueRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Media       []Media   `json:"media"`
	Price       float64   `json:"price" binding:"required,gt=0"`
	MaxGuests   int       `json:"maxGuests" binding:"required,min=1"`
	Rating      float64   `json:"rating" binding:"omitempty,min=0,max=5"`
	Meta        VenueMeta `json:"meta"`
	Location    Location  `json:"location"`
}

// CreateBookingRequest is the payload for booking a venue. Dates are
// calendar dates in YYYY-MM-DD form; time-of-day is ignored.
type CreateBookingRequest struct {
	VenueID  string `json:"venueId" binding:"required"`
	DateFrom string `json:"dateFrom" binding:"required"`
	DateTo   string `json:"dateTo" binding:"required"`
	Guests   int    `json:"guests" binding:"required,min=1"`
}

// CreateBookingResponse is returned after a confirmed booking
type CreateBookingResponse struct {
	ID string `json:"id"`
}

// MyBookingsResponse splits the caller's bookings around today
type MyBookingsResponse struct {
	Upcoming []Booking `json:"upcoming"`
	Past     []Booking `json:"past"`
}

// UpdateProfileRequest carries a partial profile update. Nil fields are
// left untouched upstream.
type UpdateProfileRequest struct {
	Bio          *string `json:"bio,omitempty"`
	Avatar       *Media  `json:"avatar,omitempty"`
	Banner       *Media  `json:"banner,omitempty"`
	VenueManager *bool   `json:"venueManager,omitempty"`
}

// ProfileResponse is a profile together with its cached counters
type ProfileResponse struct {
	Profile Profile      `json:"profile"`
	Stats   ProfileStats `json:"stats"`
}
