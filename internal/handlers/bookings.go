package handlers

import (
	"log/slog"
	"net/http"

	"holidaze/internal/middleware"
	"holidaze/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateBooking - POST /api/bookings
// Validate the candidate range locally, then submit upstream
func (h *Handlers) CreateBooking(c *gin.Context) {
	sess, _, ok := middleware.SessionFromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Bookings.Create(c.Request.Context(), sess, req)
	if err != nil {
		slog.Error("Failed to create booking", "error", err, "venue_id", req.VenueID)
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// CancelBooking - DELETE /api/bookings/:id
func (h *Handlers) CancelBooking(c *gin.Context) {
	sess, _, ok := middleware.SessionFromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}

	if err := h.services.Bookings.Cancel(c.Request.Context(), sess, c.Param("id")); err != nil {
		slog.Error("Failed to cancel booking", "error", err, "booking_id", c.Param("id"))
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MyBookings - GET /api/profiles/me/bookings
// The customer dashboard listing, split into upcoming and past stays
func (h *Handlers) MyBookings(c *gin.Context) {
	sess, _, ok := middleware.SessionFromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}

	response, err := h.services.Bookings.Mine(c.Request.Context(), sess)
	if err != nil {
		slog.Error("Failed to list own bookings", "error", err)
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
