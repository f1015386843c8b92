package api

import (
	"fmt"
	"log"
	"net/http"

	"holidaze/internal/cache"
	"holidaze/internal/config"
	"holidaze/internal/external"
	"holidaze/internal/handlers"
	"holidaze/internal/messaging"
	"holidaze/internal/middleware"
	"holidaze/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the gateway HTTP server
type Server struct {
	router   *gin.Engine
	config   *config.Config
	valkey   *cache.ValkeyClient
	nats     *messaging.NATSClient
	services *service.Services
}

// NewServer wires the session store, event publisher, upstream client and
// services, then configures the routes.
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	valkeyClient, err := cache.NewValkeyClient(cfg.Valkey)
	if err != nil {
		log.Fatalf("Failed to connect to Valkey: %v", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}

	holidazeClient := external.NewHolidazeClient(cfg.Holidaze)

	services := service.NewServices(holidazeClient, valkeyClient, natsClient)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	server := &Server{
		router:   router,
		config:   cfg,
		valkey:   valkeyClient,
		nats:     natsClient,
		services: services,
	}

	server.setupRoutes()

	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services, s.config.DefaultPageSize, s.config.MaxPageSize)
	sessionAuth := middleware.SessionAuth(s.valkey)

	api := s.router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.POST("/logout", sessionAuth, h.Logout)
		}

		// Anonymous browsing of venues
		venues := api.Group("/venues")
		{
			venues.GET("", h.ListVenues)
			venues.GET("/:id", h.GetVenue)

			// Mutations require a session with the manager role
			venues.POST("", sessionAuth, middleware.RequireVenueManager(), h.CreateVenue)
			venues.PUT("/:id", sessionAuth, middleware.RequireVenueManager(), h.UpdateVenue)
			venues.DELETE("/:id", sessionAuth, middleware.RequireVenueManager(), h.DeleteVenue)
		}

		bookings := api.Group("/bookings")
		bookings.Use(sessionAuth)
		{
			bookings.POST("", h.CreateBooking)
			bookings.DELETE("/:id", h.CancelBooking)
		}

		profiles := api.Group("/profiles/me")
		profiles.Use(sessionAuth)
		{
			profiles.GET("", h.GetMe)
			profiles.PUT("", h.UpdateMe)
			profiles.GET("/venues", middleware.RequireVenueManager(), h.MyVenues)
			profiles.GET("/bookings", h.MyBookings)
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "holidaze-gateway",
		"version": "1.0.0",
	})
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter returns the router for testing
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes the backing connections
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			log.Printf("Error closing NATS connection: %v", err)
		}
	}

	if s.valkey != nil {
		if err := s.valkey.Close(); err != nil {
			log.Printf("Error closing Valkey connection: %v", err)
			return err
		}
	}

	return nil
}
