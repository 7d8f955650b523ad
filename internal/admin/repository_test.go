package admin

import (
	"testing"

	"gridspot/internal/bookings"
)

func TestCancelPredicateReachesEveryNonCancelledStatus(t *testing.T) {
	all := []bookings.Status{
		bookings.StatusPending,
		bookings.StatusActive,
		bookings.StatusExpired,
		bookings.StatusCancelled,
	}

	reachable := map[bookings.Status]bool{}
	for _, s := range cancellableStatuses {
		reachable[s] = true
	}

	for _, s := range all {
		if s == bookings.StatusCancelled {
			if reachable[s] {
				t.Error("a cancelled booking must not be re-cancelled")
			}
			continue
		}
		if !reachable[s] {
			t.Errorf("operator cancel must reach %s bookings", s)
		}
	}
}
