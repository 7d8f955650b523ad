package bookings

// ReservationRequest represents a slot reservation request.
// The tier field defends against stale client state: the server recomputes
// the tier from the coordinates and rejects a mismatch.
type ReservationRequest struct {
	X            int    `json:"x" binding:"min=0,max=36"`
	Y            int    `json:"y" binding:"min=0,max=36"`
	Tier         string `json:"tier" binding:"required,tier"`
	DurationDays int    `json:"duration_days" binding:"required,min=1,max=365"`

	HolderName  string `json:"holder_name" binding:"required,min=1,max=100"`
	HolderEmail string `json:"holder_email" binding:"required,email"`

	DisplayName string `json:"display_name" binding:"required,min=1,max=100"`
	TargetURL   string `json:"target_url" binding:"required,url"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
	Boosted     bool   `json:"boosted"`
}
