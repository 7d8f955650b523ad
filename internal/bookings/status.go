package bookings

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusExpired   Status = "EXPIRED"
	StatusCancelled Status = "CANCELLED"
)

// IsValid checks if the booking status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusExpired, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is expected
func (s Status) IsTerminal() bool {
	return s == StatusExpired || s == StatusCancelled
}

// OccupiesSlot reports whether a booking in this status blocks the slot for
// an overlapping window
func (s Status) OccupiesSlot() bool {
	return s == StatusPending || s == StatusActive
}
