package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrAlreadyResolved, http.StatusOK},
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusForbidden},
		{ErrTierMismatch, http.StatusBadRequest},
		{ErrInvalidAmount, http.StatusBadRequest},
		{ErrTierClosed, http.StatusConflict},
		{ErrSlotConflict, http.StatusConflict},
		{ErrDuplicateOffer, http.StatusConflict},
		{ErrBookingNotActive, http.StatusConflict},
		{ErrUpstreamPayment, http.StatusBadGateway},
		{ErrTransientStore, http.StatusServiceUnavailable},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Errorf("HTTPStatus(%v): got %d, want %d", c.err, got, c.want)
		}
	}
}

func TestHTTPStatusSeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("slot (3,4) window [2026-03-10, 2026-04-09): %w", ErrSlotConflict)
	if got := HTTPStatus(wrapped); got != http.StatusConflict {
		t.Errorf("got %d, want %d", got, http.StatusConflict)
	}
}
