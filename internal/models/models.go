package models

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// Location is what the resolver looks AQI up for.
// It is either Coordinates or PlaceName; no other implementations exist.
type Location interface {
	isLocation()
}

// Coordinates is a latitude/longitude pair in decimal degrees
type Coordinates struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

// PlaceName is a free-form place (city) name resolved by the provider itself
type PlaceName struct {
	Name string
}

func (Coordinates) isLocation() {}
func (PlaceName) isLocation()   {}

// Coordinate is a loosely typed JSON number.
// Both 23.96 and "23.96" decode as valid; null, booleans and non-numeric
// strings decode as not valid without failing the whole body.
type Coordinate struct {
	Value float64
	Valid bool
}

// NewCoordinate returns a valid Coordinate holding v
func NewCoordinate(v float64) Coordinate {
	return Coordinate{Value: v, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	*c = Coordinate{}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		c.Value, c.Valid = v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			c.Value, c.Valid = f, true
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (c Coordinate) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(c.Value, 'f', -1, 64)), nil
}

// LocationRequest is the body of POST /api/v1/send/location
type LocationRequest struct {
	Lat      Coordinate `json:"lat" swaggertype:"number" example:"23.96"`
	Lon      Coordinate `json:"lon" swaggertype:"number" example:"86.80"`
	Location string     `json:"location" example:"jamtara"`
}

// Descriptor picks the lookup target for the request.
// Coordinates win when both are numeric, then a non-blank place name.
// It returns nil when the request carries neither.
func (r LocationRequest) Descriptor() Location {
	if r.Lat.Valid && r.Lon.Valid {
		return Coordinates{Lat: r.Lat.Value, Lon: r.Lon.Value}
	}
	if name := strings.TrimSpace(r.Location); name != "" {
		return PlaceName{Name: name}
	}
	return nil
}

// Exposure is the outcome of one lookup: the AQI and what it means in cigarettes
type Exposure struct {
	AQI          float64
	PM25         float64
	Cigarettes   string // fixed-point, two decimals
	Extrapolated bool   // AQI was above the highest published band
}

// LocationResponse is the success body of POST /api/v1/send/location
type LocationResponse struct {
	Msg           string     `json:"msg" example:"success"`
	Lat           Coordinate `json:"lat,omitzero" swaggertype:"number" example:"23.96"`
	Lon           Coordinate `json:"lon,omitzero" swaggertype:"number" example:"86.80"`
	Location      string     `json:"location,omitempty" example:"jamtara"`
	AQI           float64    `json:"aqi" example:"90"`
	PM25          float64    `json:"pm25" example:"30.65"` // µg/m³ the AQI corresponds to
	NoOfCigarette string     `json:"noOfCigarette" example:"1.39"`
	Extrapolated  bool       `json:"extrapolated,omitempty"`
}

// ErrorDetail is one entry of an error envelope
type ErrorDetail struct {
	Title  string `json:"title" example:"Bad Request"`
	Code   string `json:"code" example:"400"`
	Status string `json:"status" example:"location input missing"`
}

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Errors []ErrorDetail `json:"errors"`
}

// NewErrorResponse builds a single-entry envelope for an HTTP status.
// Title is the status text and code the numeric status as a string.
func NewErrorResponse(statusCode int, status string) ErrorResponse {
	return ErrorResponse{
		Errors: []ErrorDetail{{
			Title:  http.StatusText(statusCode),
			Code:   strconv.Itoa(statusCode),
			Status: status,
		}},
	}
}

// Breakpoint is one band of the AQI to PM2.5 conversion table.
// AQI values in [AQILow, AQIHigh] map linearly onto [PM25Low, PM25High] µg/m³.
type Breakpoint struct {
	AQILow   float64 `json:"aqi_low"`
	AQIHigh  float64 `json:"aqi_high"`
	PM25Low  float64 `json:"pm25_low"`
	PM25High float64 `json:"pm25_high"`
}
