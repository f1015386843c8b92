package consumers

import (
	"context"
	"log/slog"

	"holidaze/internal/cache"
	"holidaze/internal/config"
	"holidaze/internal/messaging"
	"holidaze/internal/models"
)

type ConsumerService struct {
	valkey   *cache.ValkeyClient
	nats     *messaging.NATSClient
	handlers *Handlers
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	valkeyClient, err := cache.NewValkeyClient(cfg.Valkey)
	if err != nil {
		return nil, err
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	return &ConsumerService{
		valkey:   valkeyClient,
		nats:     natsClient,
		handlers: NewHandlers(valkeyClient),
	}, nil
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	subjects := map[string]func([]byte){
		models.EventBookingCreated:   cs.handlers.HandleBookingCreated,
		models.EventBookingCancelled: cs.handlers.HandleBookingCancelled,
		models.EventVenueCreated:     cs.handlers.HandleVenueChanged,
		models.EventVenueUpdated:     cs.handlers.HandleVenueChanged,
		models.EventVenueDeleted:     cs.handlers.HandleVenueChanged,
	}

	for subject, handle := range subjects {
		if _, err := cs.nats.SubscribeQueue(subject, "consumers", makeMsgHandler(handle)); err != nil {
			return err
		}
	}

	slog.Info("All consumers started successfully")
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if cs.valkey != nil {
		if err := cs.valkey.Close(); err != nil {
			slog.Error("Error closing Valkey connection", "error", err)
			return err
		}
	}

	return nil
}
