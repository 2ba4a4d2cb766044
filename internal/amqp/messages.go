package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"finman/internal/core"
)

// TransactionRecordedType is the AMQP message type of TransactionRecordedMessage.
const TransactionRecordedType = "transaction.recorded"

// TransactionRecordedMessage announces a record accepted by the ledger,
// together with the balance right after it.
type TransactionRecordedMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Kind      core.Kind `json:"kind"`
	Label     string    `json:"label"`
	Amount    float64   `json:"amount"`
	Balance   float64   `json:"balance"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTransactionRecordedMessage creates a message with a fresh UUID.
func NewTransactionRecordedMessage(sessionID string, t core.Transaction, balance float64) *TransactionRecordedMessage {
	return &TransactionRecordedMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Kind:      t.Kind,
		Label:     t.Label,
		Amount:    t.Amount,
		Balance:   balance,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionRecordedMessageFromJSON creates a message from JSON bytes
func TransactionRecordedMessageFromJSON(data []byte) (*TransactionRecordedMessage, error) {
	var msg TransactionRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
