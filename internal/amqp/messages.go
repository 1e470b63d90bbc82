package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// BillEventMessage is a lightweight notification about a bill mutation.
// It carries only the ID and action; the worker fetches the full bill
// from the backend when it needs more.
type BillEventMessage struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Month     string    `json:"month,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBillEventMessage(id, action, month string) *BillEventMessage {
	return &BillEventMessage{
		ID:        id,
		Action:    action,
		Month:     month,
		Timestamp: time.Now(),
	}
}

func (m *BillEventMessage) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("bill event without id")
	}
	switch m.Action {
	case ActionCreated, ActionUpdated, ActionDeleted:
		return nil
	default:
		return fmt.Errorf("unknown bill event action %q", m.Action)
	}
}

func (m *BillEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func BillEventMessageFromJSON(data []byte) (*BillEventMessage, error) {
	var msg BillEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
