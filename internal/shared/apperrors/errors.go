package apperrors

import (
	"errors"
	"net/http"
)

// Business-rule and protocol errors shared across services. Controllers map
// these to HTTP codes with errors.Is; services wrap them with context via
// fmt.Errorf("...: %w", ...).
var (
	ErrTierMismatch     = errors.New("tier does not match slot coordinates")
	ErrTierClosed       = errors.New("tier is closed for new reservations")
	ErrSlotConflict     = errors.New("slot already has a booking for that window")
	ErrDuplicateOffer   = errors.New("buyer already has a pending offer on this slot")
	ErrBookingNotActive = errors.New("target booking is not active")
	ErrInvalidAmount    = errors.New("offer amount is below the minimum")
	ErrUnauthorized     = errors.New("not authorized for this action")
	ErrNotFound         = errors.New("record not found")
	ErrUpstreamPayment  = errors.New("payment provider request failed")
	ErrTransientStore   = errors.New("transient store failure")

	// ErrAlreadyResolved signals the record is already in the desired state.
	// Callers treat it as success; duplicate webhook deliveries and lost
	// races against the sweeper both land here.
	ErrAlreadyResolved = errors.New("already resolved")
)

// HTTPStatus maps a service error to an HTTP status code.
// ErrAlreadyResolved maps to 200: the desired state holds.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAlreadyResolved):
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrTierMismatch),
		errors.Is(err, ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, ErrTierClosed),
		errors.Is(err, ErrSlotConflict),
		errors.Is(err, ErrDuplicateOffer),
		errors.Is(err, ErrBookingNotActive):
		return http.StatusConflict
	case errors.Is(err, ErrUpstreamPayment):
		return http.StatusBadGateway
	case errors.Is(err, ErrTransientStore):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
