package service

import (
	"context"

	"holidaze/internal/external"
	"holidaze/internal/models"
)

// SessionStore holds gateway sessions and the cached profile counters.
// It is an interface so services can be tested without a running cache.
type SessionStore interface {
	SaveSession(ctx context.Context, sessionID string, sess models.Session) error
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetProfileStats(ctx context.Context, name string) (*models.ProfileStats, error)
	SetProfileStats(ctx context.Context, name string, stats models.ProfileStats) error
	InvalidateProfileStats(ctx context.Context, name string) error
}

// Publisher emits domain events. Publish failures are logged, never fatal.
type Publisher interface {
	Publish(subject string, data interface{}) error
}

type Services struct {
	Auth     *AuthService
	Venues   *VenueService
	Bookings *BookingService
	Profiles *ProfileService
}

func NewServices(client *external.HolidazeClient, store SessionStore, publisher Publisher) *Services {
	return &Services{
		Auth:     NewAuthService(client, store),
		Venues:   NewVenueService(client, store, publisher),
		Bookings: NewBookingService(client, store, publisher),
		Profiles: NewProfileService(client, store),
	}
}
