// Package external holds the client for the upstream Holidaze API. The
// upstream owns every venue, booking and profile; the gateway never
// persists them. Session credentials are injected per call rather than
// read from ambient state so the client is testable against a fake server.
package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	apperrors "holidaze/internal/errors"
	"holidaze/internal/models"

	"github.com/sony/gobreaker"
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type HolidazeClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// AuthResponse is the upstream payload returned by login and register
type AuthResponse struct {
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	AccessToken  string        `json:"accessToken,omitempty"`
	VenueManager bool          `json:"venueManager"`
	Avatar       *models.Media `json:"avatar,omitempty"`
	Banner       *models.Media `json:"banner,omitempty"`
}

// envelope is the upstream response wrapper {data, meta}
type envelope struct {
	Data json.RawMessage `json:"data"`
}

type upstreamError struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
}

func NewHolidazeClient(cfg Config) *HolidazeClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "holidaze-upstream",
		MaxRequests: 1,
		Timeout:     10 * time.Second,
		Interval:    0,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 2
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("Circuit Breaker '%s' changed from '%s' to '%s'", name, from, to)
		},
	})

	return &HolidazeClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		breaker: breaker,
	}
}

// do performs one upstream request and returns the raw response body.
// Transport failures count against the circuit breaker; HTTP error
// statuses are mapped to the gateway error taxonomy without tripping it.
func (c *HolidazeClient) do(ctx context.Context, method, path string, creds *models.Credentials, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-Noroff-API-Key", c.apiKey)
	}
	if creds != nil && creds.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}

	resp := result.(*http.Response)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", apperrors.ErrUpstream, err)
	}

	if resp.StatusCode >= 400 {
		return nil, mapStatus(resp.StatusCode, data)
	}

	return data, nil
}

// mapStatus translates an upstream HTTP failure into the error taxonomy
func mapStatus(status int, body []byte) error {
	msg := "upstream rejected request"
	var ue upstreamError
	if err := json.Unmarshal(body, &ue); err == nil && len(ue.Errors) > 0 {
		msg = ue.Errors[0].Message
	}

	switch status {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", apperrors.ErrBadInput, msg)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", apperrors.ErrUnauthorized, msg)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", apperrors.ErrForbidden, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, msg)
	default:
		return fmt.Errorf("%w: status %d: %s", apperrors.ErrUpstream, status, msg)
	}
}

func decodeData(body []byte, v interface{}) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, v)
	}
	return json.Unmarshal(body, v)
}

// Login authenticates against the upstream and returns the bearer token
// together with the profile basics.
func (c *HolidazeClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	payload := map[string]string{"email": email, "password": password}
	body, err := c.do(ctx, http.MethodPost, "/auth/login?_holidaze=true", nil, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	var result AuthResponse
	if err := decodeData(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	return &result, nil
}

// Register creates a new profile upstream. The venueManager flag picked at
// registration decides which dashboards the profile may use.
func (c *HolidazeClient) Register(ctx context.Context, req models.RegisterRequest) (*AuthResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/register", nil, req)
	if err != nil {
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	var result AuthResponse
	if err := decodeData(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode register response: %w", err)
	}
	return &result, nil
}

// ListVenues fetches all venues. Bookings are embedded when requested so
// the search engine can do date-aware availability filtering.
func (c *HolidazeClient) ListVenues(ctx context.Context, includeBookings bool) ([]models.Venue, error) {
	path := "/holidaze/venues"
	if includeBookings {
		path += "?_bookings=true"
	}

	body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}

	var venues []models.Venue
	if err := decodeData(body, &venues); err != nil {
		return nil, fmt.Errorf("failed to decode venues: %w", err)
	}
	return venues, nil
}

func (c *HolidazeClient) GetVenue(ctx context.Context, id string, includeBookings bool) (*models.Venue, error) {
	path := "/holidaze/venues/" + url.PathEscape(id) + "?_owner=true"
	if includeBookings {
		path += "&_bookings=true"
	}

	body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}

	var venue models.Venue
	if err := decodeData(body, &venue); err != nil {
		return nil, fmt.Errorf("failed to decode venue: %w", err)
	}
	return &venue, nil
}

func (c *HolidazeClient) CreateVenue(ctx context.Context, creds models.Credentials, req models.VenueRequest) (*models.Venue, error) {
	body, err := c.do(ctx, http.MethodPost, "/holidaze/venues", &creds, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}

	var venue models.Venue
	if err := decodeData(body, &venue); err != nil {
		return nil, fmt.Errorf("failed to decode created venue: %w", err)
	}
	return &venue, nil
}

func (c *HolidazeClient) UpdateVenue(ctx context.Context, creds models.Credentials, id string, req models.VenueRequest) (*models.Venue, error) {
	body, err := c.do(ctx, http.MethodPut, "/holidaze/venues/"+url.PathEscape(id), &creds, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update venue: %w", err)
	}

	var venue models.Venue
	if err := decodeData(body, &venue); err != nil {
		return nil, fmt.Errorf("failed to decode updated venue: %w", err)
	}
	return &venue, nil
}

func (c *HolidazeClient) DeleteVenue(ctx context.Context, creds models.Credentials, id string) error {
	if _, err := c.do(ctx, http.MethodDelete, "/holidaze/venues/"+url.PathEscape(id), &creds, nil); err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}
	return nil
}

// CreateBooking submits a booking upstream. The upstream check remains
// authoritative: a conflict here is surfaced even when the local validator
// accepted the range, since another customer may have booked concurrently.
func (c *HolidazeClient) CreateBooking(ctx context.Context, creds models.Credentials, venueID string, dateFrom, dateTo time.Time, guests int) (*models.Booking, error) {
	payload := map[string]interface{}{
		"dateFrom": dateFrom.Format(time.RFC3339),
		"dateTo":   dateTo.Format(time.RFC3339),
		"guests":   guests,
		"venueId":  venueID,
	}

	body, err := c.do(ctx, http.MethodPost, "/holidaze/bookings", &creds, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	var booking models.Booking
	if err := decodeData(body, &booking); err != nil {
		return nil, fmt.Errorf("failed to decode booking: %w", err)
	}
	return &booking, nil
}

func (c *HolidazeClient) CancelBooking(ctx context.Context, creds models.Credentials, id string) error {
	if _, err := c.do(ctx, http.MethodDelete, "/holidaze/bookings/"+url.PathEscape(id), &creds, nil); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	return nil
}

func (c *HolidazeClient) GetProfile(ctx context.Context, creds models.Credentials, name string) (*models.Profile, error) {
	body, err := c.do(ctx, http.MethodGet, "/holidaze/profiles/"+url.PathEscape(name), &creds, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profile models.Profile
	if err := decodeData(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &profile, nil
}

func (c *HolidazeClient) UpdateProfile(ctx context.Context, creds models.Credentials, name string, req models.UpdateProfileRequest) (*models.Profile, error) {
	body, err := c.do(ctx, http.MethodPut, "/holidaze/profiles/"+url.PathEscape(name), &creds, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	var profile models.Profile
	if err := decodeData(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode updated profile: %w", err)
	}
	return &profile, nil
}

func (c *HolidazeClient) ListVenuesByProfile(ctx context.Context, creds models.Credentials, name string) ([]models.Venue, error) {
	body, err := c.do(ctx, http.MethodGet, "/holidaze/profiles/"+url.PathEscape(name)+"/venues?_bookings=true", &creds, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list profile venues: %w", err)
	}

	var venues []models.Venue
	if err := decodeData(body, &venues); err != nil {
		return nil, fmt.Errorf("failed to decode profile venues: %w", err)
	}
	return venues, nil
}

func (c *HolidazeClient) ListBookingsByProfile(ctx context.Context, creds models.Credentials, name string) ([]models.Booking, error) {
	body, err := c.do(ctx, http.MethodGet, "/holidaze/profiles/"+url.PathEscape(name)+"/bookings?_venue=true", &creds, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list profile bookings: %w", err)
	}

	var bookings []models.Booking
	if err := decodeData(body, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode profile bookings: %w", err)
	}
	return bookings, nil
}
