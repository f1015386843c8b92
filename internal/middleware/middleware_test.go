package middleware

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"holidaze/internal/logger"
	"holidaze/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore serves one fixed session for any ID
type stubStore struct {
	sess *models.Session
}

func (s *stubStore) SaveSession(context.Context, string, models.Session) error { return nil }

func (s *stubStore) GetSession(_ context.Context, _ string) (*models.Session, error) {
	if s.sess == nil {
		return nil, fmt.Errorf("session not found")
	}
	return s.sess, nil
}

func (s *stubStore) DeleteSession(context.Context, string) error { return nil }

func (s *stubStore) GetProfileStats(context.Context, string) (*models.ProfileStats, error) {
	return nil, fmt.Errorf("stats not cached")
}

func (s *stubStore) SetProfileStats(context.Context, string, models.ProfileStats) error { return nil }

func (s *stubStore) InvalidateProfileStats(context.Context, string) error { return nil }

func customerStore() *stubStore {
	return &stubStore{sess: &models.Session{
		Credentials: models.Credentials{AccessToken: "token", Name: "olanordmann"},
		Email:       "ola@stud.noroff.no",
	}}
}

func TestSessionAuthStoresProfileInContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/whoami", SessionAuth(customerStore()), func(c *gin.Context) {
		name, ok := logger.ProfileFromContext(c.Request.Context())
		require.True(t, ok)
		c.String(http.StatusOK, name)
	})

	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer some-session")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "olanordmann", w.Body.String())
}

func TestSessionAuthRejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/whoami", SessionAuth(customerStore()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestIDSetsHeaderAndContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		id, ok := logger.RequestIDFromContext(c.Request.Context())
		require.True(t, ok)
		c.String(http.StatusOK, id)
	})

	req, _ := http.NewRequest("GET", "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())
}

func TestRequestLogCarriesProfileAndRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	r := gin.New()
	r.Use(RequestID())
	r.Use(Logger())
	r.GET("/ping", SessionAuth(customerStore()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Bearer some-session")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	out := buf.String()
	assert.Contains(t, out, `"profile":"olanordmann"`)
	assert.Contains(t, out, `"request_id":"`+w.Header().Get("X-Request-ID")+`"`)
}
