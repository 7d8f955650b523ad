package bookings

import (
	"testing"
	"time"
)

func TestDeadlinePassedExpiresAtGoverns(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// end_date already passed, but expires_at is still in the future
	future := now.Add(6 * time.Hour)
	b := &Booking{
		EndDate:   DateOnly(now).AddDate(0, 0, -1),
		ExpiresAt: &future,
	}
	if b.DeadlinePassed(now) {
		t.Error("expires_at in the future must keep the booking alive")
	}

	// expires_at passed even though end_date has not
	past := now.Add(-time.Minute)
	b = &Booking{
		EndDate:   DateOnly(now).AddDate(0, 0, 5),
		ExpiresAt: &past,
	}
	if !b.DeadlinePassed(now) {
		t.Error("expires_at in the past must retire the booking")
	}
}

func TestDeadlinePassedEndDateFallback(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	b := &Booking{EndDate: DateOnly(now)}
	if !b.DeadlinePassed(now) {
		t.Error("end_date equal to today must count as passed")
	}

	b = &Booking{EndDate: DateOnly(now).AddDate(0, 0, 1)}
	if b.DeadlinePassed(now) {
		t.Error("end_date tomorrow must not count as passed")
	}
}

func TestRemainingDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	b := &Booking{EndDate: DateOnly(now).AddDate(0, 0, 10)}
	if got := b.RemainingDays(now); got != 10 {
		t.Errorf("got %d, want 10", got)
	}

	b = &Booking{EndDate: DateOnly(now).AddDate(0, 0, -3)}
	if got := b.RemainingDays(now); got != 0 {
		t.Errorf("past end_date: got %d, want 0", got)
	}
}

func TestToPublicHidesPaymentReferences(t *testing.T) {
	b := &Booking{
		CheckoutSessionID: "sess_secret",
		ChargeID:          "ch_secret",
		DisplayName:       "Visible",
	}
	pub := b.ToPublic()
	if pub.DisplayName != "Visible" {
		t.Errorf("display name: got %q", pub.DisplayName)
	}
	// PublicBooking has no payment fields at all; this test documents that
	// the projection is the only thing handed to public endpoints.
}
