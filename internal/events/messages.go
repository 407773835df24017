package events

import (
	"encoding/json"
	"time"
)

// Mutation kinds published after a successful ledger write.
const (
	KindExpenseAdded = "expense_added"
	KindBillAdded    = "bill_added"
	KindGoalSet      = "savings_goal_set"
)

// LedgerEventMessage is the lightweight notification emitted for each ledger
// mutation. Consumers fetch the full record from the ledger if they need it.
type LedgerEventMessage struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerEventMessage(kind, id string) *LedgerEventMessage {
	return &LedgerEventMessage{
		Kind:      kind,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
