package utils

import "errors"

var (
	ErrPlanNotFound       = errors.New("plan not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidLimit       = errors.New("invalid limit parameter")
	ErrInvalidDateRange   = errors.New("start date is after end date")
	ErrMalformedDate      = errors.New("malformed trip date")
	ErrNoFlightsFound     = errors.New("no flights found")
	ErrGeocodingFailed    = errors.New("geocoding failed")
	ErrNoAttractionsFound = errors.New("no attractions found")
	ErrExtractionFailed   = errors.New("extraction failed")
	ErrDatabaseError      = errors.New("database error")
)
