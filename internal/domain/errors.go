package domain

import "errors"

// Position acquisition failures. These are the only locator errors surfaced to callers.
var (
	ErrPositionUnavailable = errors.New("position unavailable: no location capability")
	ErrPositionDenied      = errors.New("position denied: location permission was declined")
	ErrPositionTimeout     = errors.New("position timeout: location request exceeded its bound")
)

// ErrSuperseded is returned to a lookup whose result arrived after a newer lookup started.
var ErrSuperseded = errors.New("lookup superseded by a newer request")

var (
	ErrStoreNotFound  = errors.New("store not found")
	ErrInvalidContact = errors.New("invalid contact message")
)
