package amqp

import (
	"encoding/json"
	"time"
)

// EventType names the ledger mutation an event reports.
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// LedgerEvent is published after a ledger mutation has been committed.
// It carries only identifiers; consumers read the record from the ledger.
type LedgerEvent struct {
	Type      EventType `json:"type"`
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Field     string    `json:"field,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerEvent(t EventType, id, owner string) *LedgerEvent {
	return &LedgerEvent{
		Type:      t,
		ID:        id,
		Owner:     owner,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (m *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
