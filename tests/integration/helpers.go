package integration

import (
	"fmt"
	"os"
	"testing"
	"time"

	"holidaze/internal/models"
)

const (
	DefaultGatewayURL = "http://localhost:8080"
)

// GatewayURL returns the base URL of the gateway under test. Tests are
// skipped unless HOLIDAZE_GATEWAY_URL is set, so `go test ./...` stays
// green without a running stack.
func GatewayURL(t *testing.T) string {
	url := os.Getenv("HOLIDAZE_GATEWAY_URL")
	if url == "" {
		t.Skip("HOLIDAZE_GATEWAY_URL not set, skipping integration test")
	}
	return url
}

// TestAccount returns the credentials of the pre-registered test profile.
// The upstream API only accepts stud.noroff.no addresses.
func TestAccount() (email, password string) {
	email = os.Getenv("HOLIDAZE_TEST_EMAIL")
	password = os.Getenv("HOLIDAZE_TEST_PASSWORD")
	return email, password
}

// FutureDay formats a date n days from now as YYYY-MM-DD
func FutureDay(n int) string {
	return time.Now().AddDate(0, 0, n).Format("2006-01-02")
}

// UniqueVenueName generates a venue name that will not collide across runs
func UniqueVenueName() string {
	return fmt.Sprintf("integration-venue-%d", time.Now().UnixNano())
}

// FindVenueByName finds a venue in the list by exact name
func FindVenueByName(venues []models.Venue, name string) *models.Venue {
	for i := range venues {
		if venues[i].Name == name {
			return &venues[i]
		}
	}
	return nil
}

// AssertSortedByPriceAsc verifies the venues are in non-decreasing price order
func AssertSortedByPriceAsc(t *testing.T, venues []models.Venue) {
	for i := 1; i < len(venues); i++ {
		if venues[i].Price < venues[i-1].Price {
			t.Fatalf("Venues not sorted by price: %.2f at %d before %.2f at %d",
				venues[i-1].Price, i-1, venues[i].Price, i)
		}
	}
}

// LogTestStep logs a test step for better debugging
func LogTestStep(t *testing.T, step string, args ...interface{}) {
	t.Logf("🔹 "+step, args...)
}

// LogTestResult logs a test result
func LogTestResult(t *testing.T, result string, args ...interface{}) {
	t.Logf("✅ "+result, args...)
}
