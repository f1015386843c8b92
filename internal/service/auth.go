package service

import (
	"context"
	"fmt"
	"time"

	"holidaze/internal/external"
	"holidaze/internal/models"

	"github.com/google/uuid"
)

type AuthService struct {
	client *external.HolidazeClient
	store  SessionStore
}

func NewAuthService(client *external.HolidazeClient, store SessionStore) *AuthService {
	return &AuthService{
		client: client,
		store:  store,
	}
}

// Login authenticates against the upstream, resolves the full profile and
// opens a gateway session. The caller gets back an opaque session ID; the
// upstream bearer token never leaves the session store.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	auth, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	creds := models.Credentials{
		AccessToken: auth.AccessToken,
		Name:        auth.Name,
	}

	profile, err := s.client.GetProfile(ctx, creds, auth.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile after login: %w", err)
	}

	sessionID := uuid.New().String()
	sess := models.Session{
		Credentials:  creds,
		Email:        profile.Email,
		VenueManager: profile.VenueManager,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.SaveSession(ctx, sessionID, sess); err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	return &models.LoginResponse{
		SessionID: sessionID,
		Profile:   *profile,
	}, nil
}

// Register creates a profile upstream. The venueManager flag chosen here
// decides the role; it can later be changed through a profile update.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.Profile, error) {
	auth, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	return &models.Profile{
		Name:         auth.Name,
		Email:        auth.Email,
		Avatar:       auth.Avatar,
		Banner:       auth.Banner,
		VenueManager: auth.VenueManager,
	}, nil
}

// Logout destroys the gateway session. The upstream token is simply
// forgotten; the upstream has no logout endpoint.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.store.DeleteSession(ctx, sessionID)
}
