package event

import (
	"context"
	"time"
)

type DecisionEvaluatedEvent struct {
	SessionID       string    `json:"sessionId"`
	CustomerID      string    `json:"customerId"`
	Status          string    `json:"status"`
	RequestedAmount int64     `json:"requestedAmount"`
	ApprovedAmount  int64     `json:"approvedAmount,omitempty"`
	CreditScore     int64     `json:"creditScore,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

type LetterIssuedEvent struct {
	SessionID      string    `json:"sessionId"`
	CustomerID     string    `json:"customerId"`
	ApprovedAmount int64     `json:"approvedAmount"`
	TenureMonths   int       `json:"tenureMonths"`
	Filename       string    `json:"filename"`
	Timestamp      time.Time `json:"timestamp"`
}

type Publisher interface {
	PublishDecisionEvaluated(ctx context.Context, event DecisionEvaluatedEvent) error
	PublishLetterIssued(ctx context.Context, event LetterIssuedEvent) error
}

// NoopPublisher is used when event publishing is disabled.
type NoopPublisher struct{}

var _ Publisher = NoopPublisher{}

func (NoopPublisher) PublishDecisionEvaluated(context.Context, DecisionEvaluatedEvent) error {
	return nil
}

func (NoopPublisher) PublishLetterIssued(context.Context, LetterIssuedEvent) error {
	return nil
}
