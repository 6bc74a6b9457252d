package domain

import "errors"

// Sentinel errors for the crew domain. Use errors.Is() to check these.
var (
	// ErrCrewNotFound indicates the requested crew does not exist.
	ErrCrewNotFound = errors.New("crew not found")

	// ErrCrewInactive indicates an operation targeted a deactivated crew.
	ErrCrewInactive = errors.New("crew is inactive")
)
