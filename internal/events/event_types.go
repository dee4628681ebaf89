package events

import (
	"time"

	"github.com/feeportal/fee-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventFeeRequestSubmitted EventType = "fee_request_submitted"
	EventFeeRequestDecided   EventType = "fee_request_decided"
	EventFeeRequestPaid      EventType = "fee_request_paid"
)

// AllEventTypes lists every type the workflow emits.
var AllEventTypes = []EventType{
	EventFeeRequestSubmitted,
	EventFeeRequestDecided,
	EventFeeRequestPaid,
}

// Actor encapsulates actor metadata for an event.
type Actor struct {
	AccountID string      `json:"account_id,omitempty"`
	Role      domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RequestID string      `json:"request_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SubmittedPayload payload.
type SubmittedPayload struct {
	RegNumber string         `json:"reg_number"`
	FeeType   domain.FeeType `json:"fee_type"`
	Amount    float64        `json:"amount"`
}

// StatusChangedPayload is carried by decided and paid events.
type StatusChangedPayload struct {
	OldStatus domain.RequestStatus `json:"old_status"`
	NewStatus domain.RequestStatus `json:"new_status"`
	Reason    string               `json:"reason,omitempty"`
	Faculty   string               `json:"faculty,omitempty"`
}
