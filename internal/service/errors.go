package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a lookup failed
type ErrorKind string

const (
	// KindMissingInput means neither usable coordinates nor a place name were given
	KindMissingInput ErrorKind = "missing_input"

	// KindInvalidInput means coordinates were given but are out of range
	KindInvalidInput ErrorKind = "invalid_input"

	// KindUpstreamUnavailable means the air quality API call failed
	KindUpstreamUnavailable ErrorKind = "upstream_unavailable"

	// KindInvalidAQI means the AQI could not be converted
	KindInvalidAQI ErrorKind = "invalid_aqi"
)

// Error is the single failure type returned by AQIService.
// Err holds the underlying cause, if any.
type Error struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a service error, or "" for any other error
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

func newError(kind ErrorKind, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: cause}
}
