package offers

// SubmitOfferRequest represents a buyout offer submission
type SubmitOfferRequest struct {
	X               int    `json:"x" binding:"min=0,max=36"`
	Y               int    `json:"y" binding:"min=0,max=36"`
	TargetBookingID string `json:"target_booking_id" binding:"required,uuid"`

	BuyerName  string `json:"buyer_name" binding:"required,min=1,max=100"`
	BuyerEmail string `json:"buyer_email" binding:"required,email"`

	AmountCents int64  `json:"amount_cents" binding:"required,min=1"`
	Message     string `json:"message" binding:"max=500"`

	// Creative applied on acceptance
	DisplayName string `json:"display_name" binding:"omitempty,max=100"`
	TargetURL   string `json:"target_url" binding:"omitempty,url"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
}

// ResolveOfferRequest carries the holder's decision. The token is the signed
// decision credential delivered with the offer-received notification.
type ResolveOfferRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accept reject"`
	Token    string `json:"token" binding:"required"`
}
