// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"cardlink/internal/delivery/http/middleware"
	"cardlink/internal/delivery/http/response"
	"cardlink/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// locationPayload is the optional client-reported capture location.
type locationPayload struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	City      string   `json:"city"`
	Country   string   `json:"country"`
}

func (p *locationPayload) toGeoLocation() entity.GeoLocation {
	if p == nil {
		return entity.GeoLocation{}
	}

	return entity.GeoLocation{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		City:      p.City,
		Country:   p.Country,
	}
}

// currentUserID extracts the authenticated user id set by the auth middleware.
func currentUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(middleware.KeyUserID).(uuid.UUID)

	return userID, ok
}

// pathUUID parses a UUID path parameter.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
