package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"holidaze/internal/middleware"
	"holidaze/internal/models"
	"holidaze/internal/search"

	"github.com/gin-gonic/gin"
)

const dayFormat = "2006-01-02"

// ListVenues - GET /api/venues
// Browse venues with filtering, sorting and pagination
func (h *Handlers) ListVenues(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(h.defaultPageSize)))

	if page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be >= 1"})
		return
	}
	if pageSize < 1 || pageSize > h.maxPageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pageSize must be between 1 and " + strconv.Itoa(h.maxPageSize)})
		return
	}

	filters := search.Filters{
		Query: c.Query("query"),
		Sort:  c.Query("sort"),
	}

	switch filters.Sort {
	case search.SortNone, search.SortPriceAsc, search.SortPriceDesc, search.SortAvailable, search.SortRatingDesc:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown sort mode"})
		return
	}

	if guestsParam := c.Query("guests"); guestsParam != "" {
		guests, err := strconv.Atoi(guestsParam)
		if err != nil || guests < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "guests must be a positive number"})
			return
		}
		filters.Guests = guests
	}

	if checkIn := c.Query("checkIn"); checkIn != "" {
		t, err := time.Parse(dayFormat, checkIn)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "checkIn must be YYYY-MM-DD"})
			return
		}
		filters.CheckIn = t
	}
	if checkOut := c.Query("checkOut"); checkOut != "" {
		t, err := time.Parse(dayFormat, checkOut)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "checkOut must be YYYY-MM-DD"})
			return
		}
		filters.CheckOut = t
	}

	response, err := h.services.Venues.Browse(c.Request.Context(), filters, page, pageSize)
	if err != nil {
		slog.Error("Failed to browse venues", "error", err)
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetVenue - GET /api/venues/:id
// Fetch one venue; ?bookings=true embeds bookings and the blocked days
func (h *Handlers) GetVenue(c *gin.Context) {
	id := c.Param("id")
	includeBookings := c.Query("bookings") == "true"

	response, err := h.services.Venues.Get(c.Request.Context(), id, includeBookings)
	if err != nil {
		slog.Error("Failed to get venue", "error", err, "venue_id", id)
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CreateVenue - POST /api/venues
// Venue managers only
func (h *Handlers) CreateVenue(c *gin.Context) {
	sess, _, ok := middleware.SessionFromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}

	var req models.VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	venue, err := h.services.Venues.Create(c.Request.Context(), sess, req)
	if err != nil {
		slog.Error("Failed to create venue", "error", err)
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, venue)
}

// UpdateVenue - PUT /api/venues/:id
// Venue managers only
func (h *Handlers) UpdateVenue(c *gin.Context) {
	sess, _, ok := middleware.SessionFromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}

	var req models.VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	venue, err := h.services.Venues.Update(c.Request.Context(), sess, c.Param("id"), req)
	if err != nil {
		slog.Error("Failed to update venue", "error", err, "venue_id", c.Param("id"))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, venue)
}

// DeleteVenue - DELETE /api/venues/:id
// Venue managers only
func (h *Handlers) DeleteVenue(c *gin.Context) {
	sess, _, ok := middleware.SessionFromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}

	if err := h.services.Venues.Delete(c.Request.Context(), sess, c.Param("id")); err != nil {
		slog.Error("Failed to delete venue", "error", err, "venue_id", c.Param("id"))
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MyVenues - GET /api/profiles/me/venues
// The manager dashboard listing, bookings embedded
func (h *Handlers) MyVenues(c *gin.Context) {
	sess, _, ok := middleware.SessionFromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}

	venues, err := h.services.Venues.Mine(c.Request.Context(), sess)
	if err != nil {
		slog.Error("Failed to list own venues", "error", err)
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, venues)
}
