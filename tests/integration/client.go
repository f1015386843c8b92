package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"holidaze/internal/models"
)

// TestClient provides methods for testing the gateway API
type TestClient struct {
	BaseURL    string
	SessionID  string
	HTTPClient *http.Client
}

// NewTestClient creates a new test client
func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// makeRequest makes an HTTP request and returns the response
func (c *TestClient) makeRequest(t *testing.T, method, path string, body interface{}) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.SessionID != "" {
		req.Header.Set("Authorization", "Bearer "+c.SessionID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}

	return resp
}

func decodeResponse(t *testing.T, resp *http.Response, expectedStatus int, v interface{}) {
	defer resp.Body.Close()

	if resp.StatusCode != expectedStatus {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status %d, got %d. Body: %s", expectedStatus, resp.StatusCode, string(body))
	}

	if v == nil {
		return
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

// HealthCheck verifies the gateway is up
func (c *TestClient) HealthCheck(t *testing.T) {
	resp := c.makeRequest(t, "GET", "/health", nil)
	decodeResponse(t, resp, http.StatusOK, nil)
}

// Login authenticates against the gateway and stores the session ID
func (c *TestClient) Login(t *testing.T, email, password string) *models.LoginResponse {
	req := models.LoginRequest{Email: email, Password: password}

	resp := c.makeRequest(t, "POST", "/api/auth/login", req)

	var login models.LoginResponse
	decodeResponse(t, resp, http.StatusOK, &login)

	c.SessionID = login.SessionID
	return &login
}

// Logout destroys the current session
func (c *TestClient) Logout(t *testing.T) {
	resp := c.makeRequest(t, "POST", "/api/auth/logout", nil)
	decodeResponse(t, resp, http.StatusNoContent, nil)
	c.SessionID = ""
}

// ListVenues lists venues with an optional query string like "?sort=priceAsc"
func (c *TestClient) ListVenues(t *testing.T, query string) *models.VenueListResponse {
	resp := c.makeRequest(t, "GET", "/api/venues"+query, nil)

	var list models.VenueListResponse
	decodeResponse(t, resp, http.StatusOK, &list)
	return &list
}

// GetVenue fetches one venue with its bookings and blocked days
func (c *TestClient) GetVenue(t *testing.T, id string) *models.VenueDetailResponse {
	resp := c.makeRequest(t, "GET", fmt.Sprintf("/api/venues/%s?bookings=true", id), nil)

	var detail models.VenueDetailResponse
	decodeResponse(t, resp, http.StatusOK, &detail)
	return &detail
}

// CreateVenue creates a venue; the session must belong to a venue manager
func (c *TestClient) CreateVenue(t *testing.T, req models.VenueRequest) *models.Venue {
	resp := c.makeRequest(t, "POST", "/api/venues", req)

	var venue models.Venue
	decodeResponse(t, resp, http.StatusCreated, &venue)
	return &venue
}

// DeleteVenue deletes a venue owned by the current session
func (c *TestClient) DeleteVenue(t *testing.T, id string) {
	resp := c.makeRequest(t, "DELETE", "/api/venues/"+id, nil)
	decodeResponse(t, resp, http.StatusNoContent, nil)
}

// CreateBooking books a venue for the given date range
func (c *TestClient) CreateBooking(t *testing.T, venueID, dateFrom, dateTo string, guests int) *models.CreateBookingResponse {
	req := models.CreateBookingRequest{
		VenueID:  venueID,
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Guests:   guests,
	}

	resp := c.makeRequest(t, "POST", "/api/bookings", req)

	var booking models.CreateBookingResponse
	decodeResponse(t, resp, http.StatusCreated, &booking)
	return &booking
}

// CreateBookingExpectStatus submits a booking expecting a specific failure status
func (c *TestClient) CreateBookingExpectStatus(t *testing.T, venueID, dateFrom, dateTo string, guests, expectedStatus int) {
	req := models.CreateBookingRequest{
		VenueID:  venueID,
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Guests:   guests,
	}

	resp := c.makeRequest(t, "POST", "/api/bookings", req)
	decodeResponse(t, resp, expectedStatus, nil)
}

// CancelBooking cancels a booking owned by the current session
func (c *TestClient) CancelBooking(t *testing.T, id string) {
	resp := c.makeRequest(t, "DELETE", "/api/bookings/"+id, nil)
	decodeResponse(t, resp, http.StatusNoContent, nil)
}

// MyBookings fetches the caller's bookings split into upcoming and past
func (c *TestClient) MyBookings(t *testing.T) *models.MyBookingsResponse {
	resp := c.makeRequest(t, "GET", "/api/profiles/me/bookings", nil)

	var bookings models.MyBookingsResponse
	decodeResponse(t, resp, http.StatusOK, &bookings)
	return &bookings
}

// Me fetches the caller's profile with cached stats
func (c *TestClient) Me(t *testing.T) *models.ProfileResponse {
	resp := c.makeRequest(t, "GET", "/api/profiles/me", nil)

	var profile models.ProfileResponse
	decodeResponse(t, resp, http.StatusOK, &profile)
	return &profile
}
