package handlers

import (
	"log/slog"
	"net/http"

	"holidaze/internal/middleware"
	"holidaze/internal/models"

	"github.com/gin-gonic/gin"
)

// GetMe - GET /api/profiles/me
// The session's profile with cached venue/booking counters
func (h *Handlers) GetMe(c *gin.Context) {
	sess, _, ok := middleware.SessionFromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}

	response, err := h.services.Profiles.Me(c.Request.Context(), sess)
	if err != nil {
		slog.Error("Failed to get profile", "error", err)
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateMe - PUT /api/profiles/me
// Partial profile update; may flip the venueManager role flag
func (h *Handlers) UpdateMe(c *gin.Context) {
	sess, sessionID, ok := middleware.SessionFromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.services.Profiles.UpdateMe(c.Request.Context(), sessionID, sess, req)
	if err != nil {
		slog.Error("Failed to update profile", "error", err)
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
