package server

import (
	"encoding/json"
	"time"

	"github.com/lox/blackjack/internal/table"
)

// MessageType identifies the payload carried by a Message
type MessageType string

// Client → Server
const (
	MessageTypeHit     MessageType = "hit"
	MessageTypeStand   MessageType = "stand"
	MessageTypeBetUp   MessageType = "bet_up"
	MessageTypeBetDown MessageType = "bet_down"
	MessageTypeReset   MessageType = "reset"
	MessageTypeState   MessageType = "state"
)

// Server → Client
const (
	MessageTypeError MessageType = "error"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a message stamped with now
func NewMessage(messageType MessageType, data any, now time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: now,
	}, nil
}

// StateData is the table as seen by one session
type StateData struct {
	SessionID string `json:"sessionId"`
	table.Snapshot
}

// ErrorData describes a rejected request
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrorCodeInvalidMessage = "invalid_message"
	ErrorCodeUnknownType    = "unknown_type"
	ErrorCodeNotYourTurn    = "not_your_turn"
	ErrorCodeRoundFinished  = "round_finished"
	ErrorCodeInvalidBet     = "invalid_bet"
	ErrorCodeHandFull       = "hand_full"
	ErrorCodeInternal       = "internal_error"
)
