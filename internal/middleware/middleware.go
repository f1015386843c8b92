package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"holidaze/internal/logger"
	"holidaze/internal/models"
	"holidaze/internal/service"

	"github.com/gin-gonic/gin"
)

// Gin context keys for the authenticated session
const (
	SessionKey   = "session"
	SessionIDKey = "session_id"
)

// SessionFromGin returns the authenticated session set by SessionAuth
func SessionFromGin(c *gin.Context) (*models.Session, string, bool) {
	v, exists := c.Get(SessionKey)
	if !exists {
		return nil, "", false
	}
	sess, ok := v.(*models.Session)
	if !ok {
		return nil, "", false
	}
	id, _ := c.Get(SessionIDKey)
	sessionID, _ := id.(string)
	return sess, sessionID, true
}

// CORS handles cross-origin requests from the browser front end
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	}
}

// RequestID assigns a unique ID to every request and echoes it back in the
// X-Request-ID response header for client-side correlation
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := logger.NewRequestID()
		c.Header("X-Request-ID", requestID)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), requestID))

		c.Next()
	}
}

// Logger emits one structured log line per completed request
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)

		logFields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if requestID, ok := logger.RequestIDFromContext(c.Request.Context()); ok {
			logFields = append(logFields, "request_id", requestID)
		}
		if profile, ok := logger.ProfileFromContext(c.Request.Context()); ok {
			logFields = append(logFields, "profile", profile)
		}

		if c.Writer.Status() >= 400 {
			if len(c.Errors) > 0 {
				logFields = append(logFields, "error", c.Errors.String())
			}
			slog.Error("Request completed with error", logFields...)
		} else {
			slog.Info("Request completed", logFields...)
		}
	}
}

// Recovery turns panics into 500 responses with full logging
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		slog.Error("PANIC recovered",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"client_ip", c.ClientIP(),
		)

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
	})
}

// SessionAuth resolves "Authorization: Bearer <session id>" against the
// session store and injects the session into the request. The gateway does
// no cryptographic verification of its own; trust is delegated to the
// upstream API, which rejects stale or revoked tokens.
func SessionAuth(store service.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		sessionID, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing session token"})
			return
		}

		sess, err := store.GetSession(c.Request.Context(), sessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		c.Set(SessionKey, sess)
		c.Set(SessionIDKey, sessionID)
		c.Request = c.Request.WithContext(logger.ContextWithProfile(c.Request.Context(), sess.Credentials.Name))

		c.Next()
	}
}

// RequireVenueManager gates venue-mutating routes on the profile's role
// flag. The upstream remains the authoritative enforcer.
func RequireVenueManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _, ok := SessionFromGin(c)
		if !ok || !sess.VenueManager {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Venue manager role required"})
			return
		}
		c.Next()
	}
}
