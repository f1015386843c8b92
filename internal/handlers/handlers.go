package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "holidaze/internal/errors"
	"holidaze/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services        *service.Services
	defaultPageSize int
	maxPageSize     int
}

func NewHandlers(services *service.Services, defaultPageSize, maxPageSize int) *Handlers {
	if defaultPageSize < 1 {
		defaultPageSize = 6
	}
	if maxPageSize < defaultPageSize {
		maxPageSize = 20
	}
	return &Handlers{
		services:        services,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// respondError maps the error taxonomy onto HTTP statuses. Conflicts are
// reported the same way whether the local validator or the upstream caught
// them; nothing is retried automatically.
func (h *Handlers) respondError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, apperrors.ErrBadInput):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrUpstream):
		status = http.StatusBadGateway
	default:
		slog.Error("Unhandled error", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
