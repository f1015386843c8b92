package service

import (
	"context"
	"time"

	"holidaze/internal/external"
	"holidaze/internal/logger"
	"holidaze/internal/models"
)

type ProfileService struct {
	client *external.HolidazeClient
	store  SessionStore
}

func NewProfileService(client *external.HolidazeClient, store SessionStore) *ProfileService {
	return &ProfileService{
		client: client,
		store:  store,
	}
}

// Me returns the session's profile together with its venue/booking
// counters. Counters are served from the session-scoped cache when fresh.
func (s *ProfileService) Me(ctx context.Context, sess *models.Session) (*models.ProfileResponse, error) {
	name := sess.Credentials.Name

	profile, err := s.client.GetProfile(ctx, sess.Credentials, name)
	if err != nil {
		return nil, err
	}

	stats, err := s.store.GetProfileStats(ctx, name)
	if err != nil {
		fresh := models.ProfileStats{CachedAt: time.Now().UTC()}
		if profile.Count != nil {
			fresh.Venues = profile.Count.Venues
			fresh.Bookings = profile.Count.Bookings
		}
		if err := s.store.SetProfileStats(ctx, name, fresh); err != nil {
			logger.WithContext(ctx).Warn("Failed to cache profile stats", "error", err, "profile", name)
		}
		stats = &fresh
	}

	return &models.ProfileResponse{
		Profile: *profile,
		Stats:   *stats,
	}, nil
}

// UpdateMe applies a partial profile update upstream and keeps the
// session's role flag in sync so manager gating takes effect immediately.
func (s *ProfileService) UpdateMe(ctx context.Context, sessionID string, sess *models.Session, req models.UpdateProfileRequest) (*models.Profile, error) {
	name := sess.Credentials.Name

	profile, err := s.client.UpdateProfile(ctx, sess.Credentials, name, req)
	if err != nil {
		return nil, err
	}

	if req.VenueManager != nil && *req.VenueManager != sess.VenueManager {
		updated := *sess
		updated.VenueManager = *req.VenueManager
		if err := s.store.SaveSession(ctx, sessionID, updated); err != nil {
			logger.WithContext(ctx).Error("Failed to refresh session role", "error", err, "profile", name)
		}
	}

	if err := s.store.InvalidateProfileStats(ctx, name); err != nil {
		logger.WithContext(ctx).Warn("Failed to invalidate profile stats", "error", err, "profile", name)
	}

	return profile, nil
}
