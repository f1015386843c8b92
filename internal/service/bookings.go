package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"holidaze/internal/availability"
	apperrors "holidaze/internal/errors"
	"holidaze/internal/external"
	"holidaze/internal/logger"
	"holidaze/internal/models"
)

type BookingService struct {
	client    *external.HolidazeClient
	store     SessionStore
	publisher Publisher
}

func NewBookingService(client *external.HolidazeClient, store SessionStore, publisher Publisher) *BookingService {
	return &BookingService{
		client:    client,
		store:     store,
		publisher: publisher,
	}
}

// Create validates a candidate booking against the venue's latest known
// bookings and only submits it upstream when the validator accepts. The
// upstream remains authoritative: its conflict rejection is surfaced the
// same way as a local one, since another customer may book concurrently
// between our fetch and the submission.
func (s *BookingService) Create(ctx context.Context, sess *models.Session, req models.CreateBookingRequest) (*models.CreateBookingResponse, error) {
	dateFrom, err := parseDay(req.DateFrom)
	if err != nil {
		return nil, fmt.Errorf("%w: dateFrom: %v", apperrors.ErrBadInput, err)
	}
	dateTo, err := parseDay(req.DateTo)
	if err != nil {
		return nil, fmt.Errorf("%w: dateTo: %v", apperrors.ErrBadInput, err)
	}

	venue, err := s.client.GetVenue(ctx, req.VenueID, true)
	if err != nil {
		return nil, err
	}

	if req.Guests > venue.MaxGuests {
		return nil, fmt.Errorf("%w: venue sleeps at most %d guests", apperrors.ErrBadInput, venue.MaxGuests)
	}

	result := availability.ValidateBookingRequest(dateFrom, dateTo, req.Guests, venue.Bookings)
	if !result.Valid {
		switch result.Reason {
		case availability.ReasonDateRangeOverlap:
			return nil, apperrors.ErrConflict
		default:
			return nil, fmt.Errorf("%w: %s", apperrors.ErrBadInput, result.Reason)
		}
	}

	booking, err := s.client.CreateBooking(ctx, sess.Credentials, req.VenueID, dateFrom, dateTo, req.Guests)
	if err != nil {
		return nil, err
	}

	event := models.BookingCreatedEvent{
		BookingID: booking.ID,
		VenueID:   req.VenueID,
		Customer:  sess.Credentials.Name,
		DateFrom:  dateFrom,
		DateTo:    dateTo,
		Guests:    req.Guests,
		Timestamp: time.Now().UTC(),
	}

	if err := s.publisher.Publish(models.EventBookingCreated, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish booking created event",
			"error", err,
			"booking_id", booking.ID,
			"event_type", models.EventBookingCreated)
	}

	return &models.CreateBookingResponse{ID: booking.ID}, nil
}

// Cancel removes a booking upstream. Ownership is enforced by the
// upstream through the session's credentials.
func (s *BookingService) Cancel(ctx context.Context, sess *models.Session, id string) error {
	if err := s.client.CancelBooking(ctx, sess.Credentials, id); err != nil {
		return err
	}

	event := models.BookingCancelledEvent{
		BookingID: id,
		Customer:  sess.Credentials.Name,
		Timestamp: time.Now().UTC(),
	}

	if err := s.publisher.Publish(models.EventBookingCancelled, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish booking cancelled event",
			"error", err,
			"booking_id", id,
			"event_type", models.EventBookingCancelled)
	}

	return nil
}

// Mine returns the caller's bookings split around today: stays that have
// not ended yet come first in check-in order, finished stays follow with
// the most recent first.
func (s *BookingService) Mine(ctx context.Context, sess *models.Session) (*models.MyBookingsResponse, error) {
	bookings, err := s.client.ListBookingsByProfile(ctx, sess.Credentials, sess.Credentials.Name)
	if err != nil {
		return nil, err
	}

	today := availability.NormalizeToDay(time.Now())
	resp := &models.MyBookingsResponse{
		Upcoming: []models.Booking{},
		Past:     []models.Booking{},
	}
	for _, b := range bookings {
		if availability.NormalizeToDay(b.DateTo).Before(today) {
			resp.Past = append(resp.Past, b)
		} else {
			resp.Upcoming = append(resp.Upcoming, b)
		}
	}

	sort.SliceStable(resp.Upcoming, func(i, j int) bool {
		return resp.Upcoming[i].DateFrom.Before(resp.Upcoming[j].DateFrom)
	})
	sort.SliceStable(resp.Past, func(i, j int) bool {
		return resp.Past[i].DateFrom.After(resp.Past[j].DateFrom)
	})

	return resp, nil
}

// parseDay accepts calendar dates as YYYY-MM-DD or full RFC 3339
// timestamps; either way only the day part is kept.
func parseDay(value string) (time.Time, error) {
	if t, err := time.Parse(dayFormat, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return availability.NormalizeToDay(t), nil
}
