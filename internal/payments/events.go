package payments

import (
	"encoding/json"
	"fmt"
)

// The provider delivers loosely-typed webhook payloads. They are translated
// exactly once, here at the boundary, into one of three event variants; the
// rest of the system only ever sees the typed form.

type EventType string

const (
	EventSessionCompleted EventType = "checkout.session.completed"
	EventSessionExpired   EventType = "checkout.session.expired"
	EventChargeRefunded   EventType = "charge.refunded"
)

type SessionCompleted struct {
	SessionRef  string
	ChargeRef   string
	CustomerRef string
}

type SessionExpired struct {
	SessionRef string
}

type ChargeRefunded struct {
	ChargeRef string
}

// incomingEvent is the raw provider envelope
type incomingEvent struct {
	Type EventType       `json:"type"`
	Data json.RawMessage `json:"data"`
}

type sessionPayload struct {
	SessionID  string `json:"session_id"`
	ChargeID   string `json:"charge_id"`
	CustomerID string `json:"customer_id"`
}

type chargePayload struct {
	ChargeID string `json:"charge_id"`
}

// ParseEvent translates a raw webhook body into one of the typed variants.
// The returned value is *SessionCompleted, *SessionExpired or *ChargeRefunded;
// unknown event types return (nil, nil) so the caller can acknowledge and skip.
func ParseEvent(body []byte) (interface{}, error) {
	var inc incomingEvent
	if err := json.Unmarshal(body, &inc); err != nil {
		return nil, fmt.Errorf("decode webhook envelope: %w", err)
	}

	switch inc.Type {
	case EventSessionCompleted:
		var p sessionPayload
		if err := json.Unmarshal(inc.Data, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", inc.Type, err)
		}
		if p.SessionID == "" {
			return nil, fmt.Errorf("%s payload missing session_id", inc.Type)
		}
		return &SessionCompleted{SessionRef: p.SessionID, ChargeRef: p.ChargeID, CustomerRef: p.CustomerID}, nil

	case EventSessionExpired:
		var p sessionPayload
		if err := json.Unmarshal(inc.Data, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", inc.Type, err)
		}
		if p.SessionID == "" {
			return nil, fmt.Errorf("%s payload missing session_id", inc.Type)
		}
		return &SessionExpired{SessionRef: p.SessionID}, nil

	case EventChargeRefunded:
		var p chargePayload
		if err := json.Unmarshal(inc.Data, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", inc.Type, err)
		}
		if p.ChargeID == "" {
			return nil, fmt.Errorf("%s payload missing charge_id", inc.Type)
		}
		return &ChargeRefunded{ChargeRef: p.ChargeID}, nil

	default:
		return nil, nil
	}
}
