package payments

import "testing"

func TestParseEventSessionCompleted(t *testing.T) {
	body := []byte(`{"type":"checkout.session.completed","data":{"session_id":"sess_1","charge_id":"ch_1","customer_id":"cus_1"}}`)

	event, err := ParseEvent(body)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}

	completed, ok := event.(*SessionCompleted)
	if !ok {
		t.Fatalf("got %T, want *SessionCompleted", event)
	}
	if completed.SessionRef != "sess_1" || completed.ChargeRef != "ch_1" {
		t.Errorf("got %+v", completed)
	}
}

func TestParseEventSessionExpired(t *testing.T) {
	body := []byte(`{"type":"checkout.session.expired","data":{"session_id":"sess_2"}}`)

	event, err := ParseEvent(body)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}

	expired, ok := event.(*SessionExpired)
	if !ok {
		t.Fatalf("got %T, want *SessionExpired", event)
	}
	if expired.SessionRef != "sess_2" {
		t.Errorf("got %+v", expired)
	}
}

func TestParseEventChargeRefunded(t *testing.T) {
	body := []byte(`{"type":"charge.refunded","data":{"charge_id":"ch_9"}}`)

	event, err := ParseEvent(body)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}

	refunded, ok := event.(*ChargeRefunded)
	if !ok {
		t.Fatalf("got %T, want *ChargeRefunded", event)
	}
	if refunded.ChargeRef != "ch_9" {
		t.Errorf("got %+v", refunded)
	}
}

func TestParseEventUnknownTypeIsSkipped(t *testing.T) {
	body := []byte(`{"type":"invoice.created","data":{}}`)

	event, err := ParseEvent(body)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	if event != nil {
		t.Errorf("unknown event type must yield nil, got %T", event)
	}
}

func TestParseEventMalformed(t *testing.T) {
	cases := []string{
		`not json`,
		`{"type":"checkout.session.completed","data":{}}`,
		`{"type":"charge.refunded","data":{}}`,
	}
	for _, body := range cases {
		if _, err := ParseEvent([]byte(body)); err == nil {
			t.Errorf("body %q: expected error", body)
		}
	}
}
