package amqp

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

func TestLedgerEventJSON(t *testing.T) {
	ev := NewLedgerEvent(EventUpdated, "4b1c", "alice")
	ev.Field = "amount"

	body, err := ev.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	for _, want := range []string{`"type":"updated"`, `"id":"4b1c"`, `"owner":"alice"`, `"field":"amount"`} {
		if !strings.Contains(string(body), want) {
			t.Errorf("expected %s in %s", want, body)
		}
	}

	var got LedgerEvent
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Type != EventUpdated || got.ID != "4b1c" || got.Field != "amount" || !got.Timestamp.Equal(ev.Timestamp) {
		t.Errorf("unexpected event: %+v", got)
	}
}

func TestLedgerEventOmitsEmptyField(t *testing.T) {
	body, _ := NewLedgerEvent(EventCreated, "1", "bob").ToJSON()
	if strings.Contains(string(body), "field") {
		t.Errorf("field should be omitted for create events: %s", body)
	}
}

func TestNewPublishing(t *testing.T) {
	ev := NewLedgerEvent(EventDeleted, "9", "alice")
	ev.Timestamp = time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)

	msg, err := newPublishing(ev)
	if err != nil {
		t.Fatalf("newPublishing: %v", err)
	}
	if msg.ContentType != "application/json" {
		t.Errorf("content type = %q", msg.ContentType)
	}
	if msg.DeliveryMode != amqp091.Persistent {
		t.Errorf("delivery mode = %d, want persistent", msg.DeliveryMode)
	}
	if msg.Type != "deleted" || !msg.Timestamp.Equal(ev.Timestamp) {
		t.Errorf("unexpected publishing headers: %+v", msg)
	}
	var got LedgerEvent
	if err := json.Unmarshal(msg.Body, &got); err != nil || got.ID != "9" {
		t.Errorf("body does not decode: %+v, %v", got, err)
	}
}
