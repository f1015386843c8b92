package consumers

import (
	"context"
	"encoding/json"
	"log/slog"

	"holidaze/internal/cache"
	"holidaze/internal/models"

	"github.com/nats-io/stan.go"
)

// Handlers keeps the cached profile counters honest: whenever a booking or
// venue changes, the owning profile's stats entry is dropped so the next
// dashboard request recomputes it from the upstream.
type Handlers struct {
	valkey *cache.ValkeyClient
}

func NewHandlers(valkey *cache.ValkeyClient) *Handlers {
	return &Handlers{valkey: valkey}
}

func makeMsgHandler(handle func([]byte)) stan.MsgHandler {
	return func(m *stan.Msg) {
		handle(m.Data)
		if err := m.Ack(); err != nil {
			slog.Error("Failed to ack message", "subject", m.Subject, "error", err)
		}
	}
}

func (h *Handlers) HandleBookingCreated(data []byte) {
	var event models.BookingCreatedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		slog.Error("Failed to unmarshal booking created event", "error", err)
		return
	}

	slog.Info("Processing booking created event",
		"booking_id", event.BookingID,
		"venue_id", event.VenueID,
		"customer", event.Customer)

	h.invalidateStats(event.Customer)
}

func (h *Handlers) HandleBookingCancelled(data []byte) {
	var event models.BookingCancelledEvent
	if err := json.Unmarshal(data, &event); err != nil {
		slog.Error("Failed to unmarshal booking cancelled event", "error", err)
		return
	}

	slog.Info("Processing booking cancelled event",
		"booking_id", event.BookingID,
		"customer", event.Customer)

	h.invalidateStats(event.Customer)
}

func (h *Handlers) HandleVenueChanged(data []byte) {
	var event models.VenueChangedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		slog.Error("Failed to unmarshal venue event", "error", err)
		return
	}

	slog.Info("Processing venue event",
		"venue_id", event.VenueID,
		"manager", event.Manager)

	h.invalidateStats(event.Manager)
}

func (h *Handlers) invalidateStats(profile string) {
	if profile == "" {
		return
	}
	if err := h.valkey.InvalidateProfileStats(context.Background(), profile); err != nil {
		slog.Error("Failed to invalidate profile stats", "profile", profile, "error", err)
	}
}
