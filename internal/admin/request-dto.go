package admin

// CancelBookingRequest carries the operator's cancellation reason
type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// ExtendBookingRequest extends a booking's term by whole days
type ExtendBookingRequest struct {
	Days int `json:"days" binding:"required,min=1,max=365"`
}

// ResolveOfferRequest carries the operator's decision on a buyout offer
type ResolveOfferRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accept reject"`
}

// TierAvailabilityRequest opens or closes a tier for new reservations
type TierAvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// TierPriceRequest updates a tier's daily rate
type TierPriceRequest struct {
	PricePerDay float64 `json:"price_per_day" binding:"required,gt=0"`
}
