package domain

import "errors"

// Sentinel errors for the notification domain. Use errors.Is() to check these.
var (
	ErrInvalidPlatform = errors.New("platform must be ios or android")
)
