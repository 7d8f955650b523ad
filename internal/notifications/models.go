package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Kind enumerates the notification kinds this core requests from the
// external delivery collaborator
type Kind string

const (
	KindPaymentConfirmed Kind = "PAYMENT_CONFIRMED"
	KindExpiryReminder   Kind = "EXPIRY_REMINDER"
	KindExpiryNotice     Kind = "EXPIRY_NOTICE"
	KindOfferReceived    Kind = "OFFER_RECEIVED"
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusQueued  Status = "QUEUED"
)

// Message is the envelope published to the notification bus. Delivery
// (templating, email sending, retries) is the consuming collaborator's job.
type Message struct {
	ID        uuid.UUID              `json:"id"`
	Kind      Kind                   `json:"kind"`
	Recipient string                 `json:"recipient"`
	Data      map[string]interface{} `json:"data"`
	Status    Status                 `json:"status"`
	CreatedAt time.Time              `json:"created_at"`
}

func NewMessage(kind Kind, recipient string, data map[string]interface{}) *Message {
	if data == nil {
		data = make(map[string]interface{})
	}
	return &Message{
		ID:        uuid.New(),
		Kind:      kind,
		Recipient: recipient,
		Data:      data,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
}

// ToJSON serializes the message for the wire
func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// GetPartitionKey routes all messages for one recipient to one partition
func (m *Message) GetPartitionKey() string {
	return m.Recipient
}
