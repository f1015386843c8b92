package service

import (
	"context"
	"time"

	"holidaze/internal/availability"
	apperrors "holidaze/internal/errors"
	"holidaze/internal/external"
	"holidaze/internal/logger"
	"holidaze/internal/models"
	"holidaze/internal/search"
)

const dayFormat = "2006-01-02"

type VenueService struct {
	client    *external.HolidazeClient
	store     SessionStore
	publisher Publisher
}

func NewVenueService(client *external.HolidazeClient, store SessionStore, publisher Publisher) *VenueService {
	return &VenueService{
		client:    client,
		store:     store,
		publisher: publisher,
	}
}

// Browse fetches the venue list from the upstream, runs it through the
// filter/sort engine and returns one page. Bookings are only requested
// from the upstream when the availability filter needs them.
func (s *VenueService) Browse(ctx context.Context, f search.Filters, page, pageSize int) (*models.VenueListResponse, error) {
	includeBookings := f.Sort == search.SortAvailable && !f.CheckIn.IsZero() && !f.CheckOut.IsZero()

	venues, err := s.client.ListVenues(ctx, includeBookings)
	if err != nil {
		return nil, err
	}

	visible := search.FilterAndSortVenues(venues, f)
	items, totalPages := search.Paginate(visible, pageSize, page)

	return &models.VenueListResponse{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: len(visible),
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page*pageSize < len(visible),
	}, nil
}

// Get returns a single venue. With bookings embedded it also computes the
// blocked calendar days for availability rendering.
func (s *VenueService) Get(ctx context.Context, id string, includeBookings bool) (*models.VenueDetailResponse, error) {
	venue, err := s.client.GetVenue(ctx, id, includeBookings)
	if err != nil {
		return nil, err
	}

	resp := &models.VenueDetailResponse{Venue: *venue}
	if includeBookings {
		for _, day := range availability.ComputeBlockedDays(venue.Bookings) {
			resp.BlockedDays = append(resp.BlockedDays, day.Format(dayFormat))
		}
	}
	return resp, nil
}

// Create registers a new venue for the managing profile. Only venue
// managers may mutate venues; the upstream enforces this too, the gate
// here just fails fast.
func (s *VenueService) Create(ctx context.Context, sess *models.Session, req models.VenueRequest) (*models.Venue, error) {
	if !sess.VenueManager {
		return nil, apperrors.ErrForbidden
	}

	venue, err := s.client.CreateVenue(ctx, sess.Credentials, req)
	if err != nil {
		return nil, err
	}

	s.publishVenueEvent(ctx, models.EventVenueCreated, venue.ID, sess.Credentials.Name)
	return venue, nil
}

func (s *VenueService) Update(ctx context.Context, sess *models.Session, id string, req models.VenueRequest) (*models.Venue, error) {
	if !sess.VenueManager {
		return nil, apperrors.ErrForbidden
	}

	venue, err := s.client.UpdateVenue(ctx, sess.Credentials, id, req)
	if err != nil {
		return nil, err
	}

	s.publishVenueEvent(ctx, models.EventVenueUpdated, venue.ID, sess.Credentials.Name)
	return venue, nil
}

func (s *VenueService) Delete(ctx context.Context, sess *models.Session, id string) error {
	if !sess.VenueManager {
		return apperrors.ErrForbidden
	}

	if err := s.client.DeleteVenue(ctx, sess.Credentials, id); err != nil {
		return err
	}

	s.publishVenueEvent(ctx, models.EventVenueDeleted, id, sess.Credentials.Name)
	return nil
}

// Mine lists the venues owned by the session's profile, with bookings
// embedded for the manager dashboard.
func (s *VenueService) Mine(ctx context.Context, sess *models.Session) ([]models.Venue, error) {
	if !sess.VenueManager {
		return nil, apperrors.ErrForbidden
	}
	return s.client.ListVenuesByProfile(ctx, sess.Credentials, sess.Credentials.Name)
}

func (s *VenueService) publishVenueEvent(ctx context.Context, subject, venueID, manager string) {
	event := models.VenueChangedEvent{
		VenueID:   venueID,
		Manager:   manager,
		Timestamp: time.Now().UTC(),
	}

	if err := s.publisher.Publish(subject, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish venue event",
			"error", err,
			"venue_id", venueID,
			"event_type", subject)
	}
}
