package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Ledger event actions.
const (
	ActionAppended = "appended"
	ActionDeleted  = "deleted"
	ActionErased   = "erased"
)

// LedgerEvent is published after a successful ledger mutation. It carries
// only references; consumers fetch current state from the store, so a stale
// or replayed event is harmless.
type LedgerEvent struct {
	EventID       string    `json:"event_id"`
	Action        string    `json:"action"`
	Email         string    `json:"email"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewLedgerEvent creates an event with a fresh id and timestamp.
func NewLedgerEvent(action, email, transactionID string) *LedgerEvent {
	return &LedgerEvent{
		EventID:       uuid.NewString(),
		Action:        action,
		Email:         email,
		TransactionID: transactionID,
		Timestamp:     time.Now(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON creates an event from JSON bytes.
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
