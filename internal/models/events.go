package models

import "time"

// NATS Event Types
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
	EventVenueCreated     = "venue.created"
	EventVenueUpdated     = "venue.updated"
	EventVenueDeleted     = "venue.deleted"
)

// BookingCreatedEvent is published after the upstream confirms a booking
type BookingCreatedEvent struct {
	BookingID string    `json:"booking_id"`
	VenueID   string    `json:"venue_id"`
	Customer  string    `json:"customer"`
	DateFrom  time.Time `json:"date_from"`
	DateTo    time.Time `json:"date_to"`
	Guests    int       `json:"guests"`
	Timestamp time.Time `json:"timestamp"`
}

// BookingCancelledEvent is published after a booking is cancelled upstream
type BookingCancelledEvent struct {
	BookingID string    `json:"booking_id"`
	Customer  string    `json:"customer"`
	Timestamp time.Time `json:"timestamp"`
}

// VenueChangedEvent is published on venue create, update and delete
type VenueChangedEvent struct {
	VenueID   string    `json:"venue_id"`
	Manager   string    `json:"manager"`
	Timestamp time.Time `json:"timestamp"`
}
