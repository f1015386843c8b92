package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"holidaze/internal/external"
	"holidaze/internal/middleware"
	"holidaze/internal/models"
	"holidaze/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	customerSession = "customer-session"
	managerSession  = "manager-session"
)

// fakeStore is an in-memory service.SessionStore
type fakeStore struct {
	sessions map[string]models.Session
	stats    map[string]models.ProfileStats
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions: map[string]models.Session{
			customerSession: {
				Credentials: models.Credentials{AccessToken: "token-cust", Name: "olanordmann"},
				Email:       "ola@stud.noroff.no",
			},
			managerSession: {
				Credentials:  models.Credentials{AccessToken: "token-mgr", Name: "karinordmann"},
				Email:        "kari@stud.noroff.no",
				VenueManager: true,
			},
		},
		stats: map[string]models.ProfileStats{},
	}
}

func (f *fakeStore) SaveSession(_ context.Context, id string, s models.Session) error {
	f.sessions[id] = s
	return nil
}

func (f *fakeStore) GetSession(_ context.Context, id string) (*models.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session not found")
	}
	return &s, nil
}

func (f *fakeStore) DeleteSession(_ context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func (f *fakeStore) GetProfileStats(_ context.Context, name string) (*models.ProfileStats, error) {
	s, ok := f.stats[name]
	if !ok {
		return nil, fmt.Errorf("stats not cached")
	}
	return &s, nil
}

func (f *fakeStore) SetProfileStats(_ context.Context, name string, s models.ProfileStats) error {
	f.stats[name] = s
	return nil
}

func (f *fakeStore) InvalidateProfileStats(_ context.Context, name string) error {
	delete(f.stats, name)
	return nil
}

// fakePublisher records published events
type fakePublisher struct {
	subjects []string
}

func (f *fakePublisher) Publish(subject string, _ interface{}) error {
	f.subjects = append(f.subjects, subject)
	return nil
}

// fakeUpstream mimics the Holidaze API with one busy venue
type fakeUpstream struct {
	server          *httptest.Server
	bookingAttempts int
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
}

func newFakeUpstream() *fakeUpstream {
	f := &fakeUpstream{}

	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	busyVenue := models.Venue{
		ID: "v1", Name: "Beach House", Price: 100, MaxGuests: 4,
		Bookings: []models.Booking{
			{ID: "b1", DateFrom: day(2024, 6, 1), DateTo: day(2024, 6, 5), Guests: 2},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /holidaze/venues", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, []models.Venue{
			{ID: "v1", Name: "Beach House", Price: 100, MaxGuests: 4},
			{ID: "v2", Name: "Mountain Cabin", Price: 50, MaxGuests: 2},
			{ID: "v3", Name: "City Flat", Price: 75, MaxGuests: 6},
		})
	})
	mux.HandleFunc("GET /holidaze/venues/v1", func(w http.ResponseWriter, r *http.Request) {
		v := busyVenue
		if r.URL.Query().Get("_bookings") != "true" {
			v.Bookings = nil
		}
		writeData(w, http.StatusOK, v)
	})
	mux.HandleFunc("POST /holidaze/bookings", func(w http.ResponseWriter, r *http.Request) {
		f.bookingAttempts++
		writeData(w, http.StatusCreated, models.Booking{ID: "b99"})
	})
	mux.HandleFunc("GET /holidaze/profiles/olanordmann/bookings", func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		writeData(w, http.StatusOK, []models.Booking{
			{ID: "past", DateFrom: now.AddDate(0, 0, -10), DateTo: now.AddDate(0, 0, -7), Guests: 2},
			{ID: "future", DateFrom: now.AddDate(0, 0, 7), DateTo: now.AddDate(0, 0, 10), Guests: 2},
		})
	})
	mux.HandleFunc("GET /holidaze/profiles/olanordmann", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, models.Profile{
			Name: "olanordmann", Email: "ola@stud.noroff.no",
			Count: &models.ProfileCount{Bookings: 2},
		})
	})

	f.server = httptest.NewServer(mux)
	return f
}

func setupRouter(upstreamURL string) (*gin.Engine, *fakeStore, *fakePublisher) {
	gin.SetMode(gin.TestMode)

	client := external.NewHolidazeClient(external.Config{
		BaseURL: upstreamURL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})

	store := newFakeStore()
	pub := &fakePublisher{}
	services := service.NewServices(client, store, pub)
	h := NewHandlers(services, 6, 20)

	r := gin.New()
	sessionAuth := middleware.SessionAuth(store)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/logout", sessionAuth, h.Logout)
		}

		venues := api.Group("/venues")
		{
			venues.GET("", h.ListVenues)
			venues.GET("/:id", h.GetVenue)
			venues.POST("", sessionAuth, middleware.RequireVenueManager(), h.CreateVenue)
		}

		bookings := api.Group("/bookings")
		bookings.Use(sessionAuth)
		{
			bookings.POST("", h.CreateBooking)
		}

		profiles := api.Group("/profiles/me")
		profiles.Use(sessionAuth)
		{
			profiles.GET("", h.GetMe)
			profiles.GET("/bookings", h.MyBookings)
		}
	}

	return r, store, pub
}

func doRequest(r *gin.Engine, method, path, session string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set("Authorization", "Bearer "+session)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListVenuesSortsByPrice(t *testing.T) {
	upstream := newFakeUpstream()
	defer upstream.server.Close()
	r, _, _ := setupRouter(upstream.server.URL)

	w := doRequest(r, "GET", "/api/venues?sort=priceAsc", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.VenueListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Items, 3)
	assert.Equal(t, []float64{50, 75, 100},
		[]float64{resp.Items[0].Price, resp.Items[1].Price, resp.Items[2].Price})
	assert.Equal(t, 1, resp.TotalPages)
	assert.False(t, resp.HasNext)
	assert.False(t, resp.HasPrev)
}

func TestListVenuesValidation(t *testing.T) {
	upstream := newFakeUpstream()
	defer upstream.server.Close()
	r, _, _ := setupRouter(upstream.server.URL)

	w := doRequest(r, "GET", "/api/venues?page=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, "GET", "/api/venues?pageSize=25", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, "GET", "/api/venues?sort=cheapest", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetVenueWithBlockedDays(t *testing.T) {
	upstream := newFakeUpstream()
	defer upstream.server.Close()
	r, _, _ := setupRouter(upstream.server.URL)

	w := doRequest(r, "GET", "/api/venues/v1?bookings=true", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.VenueDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "Beach House", resp.Venue.Name)
	assert.Equal(t, []string{"2024-06-01", "2024-06-02", "2024-06-03", "2024-06-04", "2024-06-05"}, resp.BlockedDays)
}

func TestCreateBookingRequiresSession(t *testing.T) {
	upstream := newFakeUpstream()
	defer upstream.server.Close()
	r, _, _ := setupRouter(upstream.server.URL)

	req := models.CreateBookingRequest{VenueID: "v1", DateFrom: "2024-07-01", DateTo: "2024-07-03", Guests: 2}
	w := doRequest(r, "POST", "/api/bookings", "", req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	upstream := newFakeUpstream()
	defer upstream.server.Close()
	r, _, pub := setupRouter(upstream.server.URL)

	req := models.CreateBookingRequest{VenueID: "v1", DateFrom: "2024-06-04", DateTo: "2024-06-06", Guests: 2}
	w := doRequest(r, "POST", "/api/bookings", customerSession, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	// The validator must reject before anything is submitted upstream.
	assert.Equal(t, 0, upstream.bookingAttempts)
	assert.Empty(t, pub.subjects)
}

func TestCreateBookingSuccess(t *testing.T) {
	upstream := newFakeUpstream()
	defer upstream.server.Close()
	r, _, pub := setupRouter(upstream.server.URL)

	req := models.CreateBookingRequest{VenueID: "v1", DateFrom: "2024-06-06", DateTo: "2024-06-08", Guests: 2}
	w := doRequest(r, "POST", "/api/bookings", customerSession, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.CreateBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "b99", resp.ID)

	assert.Equal(t, 1, upstream.bookingAttempts)
	assert.Equal(t, []string{models.EventBookingCreated}, pub.subjects)
}

func TestCreateBookingTooManyGuests(t *testing.T) {
	upstream := newFakeUpstream()
	defer upstream.server.Close()
	r, _, _ := setupRouter(upstream.server.URL)

	req := models.CreateBookingRequest{VenueID: "v1", DateFrom: "2024-06-06", DateTo: "2024-06-08", Guests: 9}
	w := doRequest(r, "POST", "/api/bookings", customerSession, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, upstream.bookingAttempts)
}

func TestCreateVenueRequiresManagerRole(t *testing.T) {
	upstream := newFakeUpstream()
	defer upstream.server.Close()
	r, _, _ := setupRouter(upstream.server.URL)

	req := models.VenueRequest{Name: "New Venue", Price: 80, MaxGuests: 2}

	w := doRequest(r, "POST", "/api/venues", customerSession, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMyBookingsSplitsUpcomingAndPast(t *testing.T) {
	upstream := newFakeUpstream()
	defer upstream.server.Close()
	r, _, _ := setupRouter(upstream.server.URL)

	w := doRequest(r, "GET", "/api/profiles/me/bookings", customerSession, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.MyBookingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Upcoming, 1)
	require.Len(t, resp.Past, 1)
	assert.Equal(t, "future", resp.Upcoming[0].ID)
	assert.Equal(t, "past", resp.Past[0].ID)
}

func TestGetMeCachesStats(t *testing.T) {
	upstream := newFakeUpstream()
	defer upstream.server.Close()
	r, store, _ := setupRouter(upstream.server.URL)

	w := doRequest(r, "GET", "/api/profiles/me", customerSession, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Stats.Bookings)

	_, ok := store.stats["olanordmann"]
	assert.True(t, ok)
}

func TestLogoutDestroysSession(t *testing.T) {
	upstream := newFakeUpstream()
	defer upstream.server.Close()
	r, _, _ := setupRouter(upstream.server.URL)

	w := doRequest(r, "POST", "/api/auth/logout", customerSession, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// The session is gone, so the same token no longer authenticates.
	w = doRequest(r, "POST", "/api/auth/logout", customerSession, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
