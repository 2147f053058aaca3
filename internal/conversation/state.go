package conversation

import (
	"time"

	"github.com/google/uuid"

	"loan-origination/internal/domain/customer"
	"loan-origination/internal/domain/underwriting"
)

type State string

const (
	StateAwaitingPhone      State = "AWAITING_PHONE"
	StateAwaitingLoanAmount State = "AWAITING_LOAN_AMOUNT"
	StateAwaitingTenure     State = "AWAITING_TENURE"
	StateAwaitingSalarySlip State = "AWAITING_SALARY_SLIP"
	StateEnded              State = "ENDED"
)

// Outcome labels how a conversation terminated.
type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeRejected Outcome = "rejected"
	OutcomeError    Outcome = "error"
)

// LoanRequest is the per-conversation negotiation state. It is created when
// the amount-collection step starts and discarded with the session.
type LoanRequest struct {
	RequestedAmount       int64 `json:"requested_amount"`
	RequestedTenureMonths int   `json:"requested_tenure_months"`
	FinalAmount           int64 `json:"final_amount"`
	FinalTenureMonths     int   `json:"final_tenure_months"`
}

// Session holds one conversation's state. A session is exclusively owned by
// its conversation; it is never shared between callers.
type Session struct {
	ID           string                 `json:"id"`
	State        State                  `json:"state"`
	Customer     *customer.Record       `json:"customer,omitempty"`
	Request      LoanRequest            `json:"request"`
	Decision     *underwriting.Decision `json:"decision,omitempty"`
	Outcome      Outcome                `json:"outcome,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	LastActiveAt time.Time              `json:"last_active_at"`
}

func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:           uuid.NewString(),
		State:        StateAwaitingPhone,
		CreatedAt:    now,
		LastActiveAt: now,
	}
}

func (s *Session) Touch() {
	s.LastActiveAt = time.Now()
}

func (s *Session) end(outcome Outcome) {
	s.State = StateEnded
	s.Outcome = outcome
}
