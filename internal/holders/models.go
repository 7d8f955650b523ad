package holders

import (
	"time"

	"github.com/google/uuid"
)

// Holder is the party occupying (or bidding on) a slot. Identity resolution
// is idempotent on email; there is no account or session concept here.
type Holder struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Holder) TableName() string {
	return "holders"
}
