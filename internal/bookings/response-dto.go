package bookings

// ReservationResponse represents the reservation creation response: the
// pending booking plus the redirect handle the client follows to pay.
type ReservationResponse struct {
	Booking     PublicBooking `json:"booking"`
	AmountCents int64         `json:"amount_cents"`
	RedirectURL string        `json:"redirect_url"`
}
