package handlers

import (
	"log/slog"
	"net/http"

	"holidaze/internal/middleware"
	"holidaze/internal/models"

	"github.com/gin-gonic/gin"
)

// Register - POST /api/auth/register
// Create a new customer or venue manager profile upstream
func (h *Handlers) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.services.Auth.Register(c.Request.Context(), req)
	if err != nil {
		slog.Error("Failed to register profile", "error", err, "name", req.Name)
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// Login - POST /api/auth/login
// Open a gateway session and return its opaque token
func (h *Handlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.services.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Error("Failed to login", "error", err)
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout - POST /api/auth/logout
// Destroy the current gateway session
func (h *Handlers) Logout(c *gin.Context) {
	_, sessionID, ok := middleware.SessionFromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}

	if err := h.services.Auth.Logout(c.Request.Context(), sessionID); err != nil {
		slog.Error("Failed to logout", "error", err)
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
