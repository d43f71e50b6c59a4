package v1

import (
	"github.com/evyataryagoni/aqi2cigarette/internal/handler"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures the /api/v1 routes
func SetupRoutes(aqiHandler *handler.AQIHandler) chi.Router {
	r := chi.NewRouter()

	// POST /api/v1/send/location
	r.Post("/send/location", aqiHandler.SendLocation)

	return r
}
