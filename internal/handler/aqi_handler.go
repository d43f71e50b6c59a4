package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/evyataryagoni/aqi2cigarette/internal/logger"
	"github.com/evyataryagoni/aqi2cigarette/internal/models"
	"github.com/evyataryagoni/aqi2cigarette/internal/service"
)

const maxBodyBytes = 1 << 20

// AQIHandler handles HTTP requests for cigarette-equivalent lookups.
// It only deals with HTTP concerns; resolution and conversion live in
// service.AQIService.
type AQIHandler struct {
	service *service.AQIService
	logger  *logger.Logger
}

// NewAQIHandler creates a new AQI handler with the given service
func NewAQIHandler(svc *service.AQIService, log *logger.Logger) *AQIHandler {
	return &AQIHandler{
		service: svc,
		logger:  log.WithComponent("AQIHandler"),
	}
}

// SendLocation handles POST /api/v1/send/location
// @Summary      Cigarette equivalent of current air quality
// @Description  Resolve the current overall AQI for a coordinate pair or place name and convert it to cigarettes smoked per day. Coordinates win when both lat and lon are numeric.
// @Tags         Air Quality
// @Accept       json
// @Produce      json
// @Param        request  body       models.LocationRequest  true  "Coordinates and/or place name"
// @Success      200      {object}   models.LocationResponse
// @Failure      400      {object}   models.ErrorResponse  "Missing or invalid location input"
// @Failure      429      {object}   models.ErrorResponse  "Rate limit exceeded"
// @Failure      500      {object}   models.ErrorResponse  "Internal server error"
// @Failure      502      {object}   models.ErrorResponse  "Air quality provider unavailable"
// @Router       /api/v1/send/location [post]
func (h *AQIHandler) SendLocation(w http.ResponseWriter, r *http.Request) {
	var req models.LocationRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn().Err(err).Msg("Undecodable request body")
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exp, err := h.service.Lookup(r.Context(), req.Descriptor())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.LocationResponse{
		Msg:           "success",
		Lat:           req.Lat,
		Lon:           req.Lon,
		Location:      req.Location,
		AQI:           exp.AQI,
		PM25:          exp.PM25,
		NoOfCigarette: exp.Cigarettes,
		Extrapolated:  exp.Extrapolated,
	})
}

func (h *AQIHandler) respondServiceError(w http.ResponseWriter, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		h.logger.Error().Err(err).Msg("Unexpected lookup failure")
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	switch se.Kind {
	case service.KindMissingInput, service.KindInvalidInput:
		h.respondError(w, http.StatusBadRequest, se.Detail)
	case service.KindUpstreamUnavailable, service.KindInvalidAQI:
		h.respondError(w, http.StatusBadGateway, se.Detail)
	default:
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// respondJSON writes a JSON response with the given status code
func (h *AQIHandler) respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// respondError writes the error envelope
func (h *AQIHandler) respondError(w http.ResponseWriter, statusCode int, status string) {
	h.respondJSON(w, statusCode, models.NewErrorResponse(statusCode, status))
}
