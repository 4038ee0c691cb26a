package events

import "time"

const EmailRequestedTopic = "hr.notification.email.v1"

// EmailRequestedEvent is a fully composed message; the consumer only has to
// deliver it.
type EmailRequestedEvent struct {
	EventType  string    `json:"event_type"`
	CompanyID  string    `json:"company_id"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	To         []string  `json:"to"`
	Cc         []string  `json:"cc,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EventTypeLeaveApplied       = "leave.applied"
	EventTypeLeaveStatusChanged = "leave.status_changed"
)
