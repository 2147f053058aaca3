package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"loan-origination/internal/domain/customer"
	"loan-origination/internal/domain/negotiation"
	"loan-origination/internal/domain/sanction"
	"loan-origination/internal/domain/underwriting"
	"loan-origination/internal/event"
	"loan-origination/internal/infrastructure/monitoring"
	"loan-origination/internal/pkg/apperrors"
)

const (
	msgGreeting        = "Welcome! I'm here to help you with your personal loan needs. To get started, could you please provide your 10-digit mobile number?"
	msgInvalidPhone    = "That doesn't seem to be a valid 10-digit number. Please provide your mobile number to get started."
	msgPhoneNotFound   = "I'm sorry, but I couldn't find an account associated with that number. Please check and try again."
	msgAskTenure       = "Great. And for how many months would you like the tenure? (e.g., 60)"
	msgInvalidAmount   = "It seems there was an issue with the number. Please enter a numeric loan amount."
	msgInvalidTenure   = "It seems there was an issue with the number. Please enter a numeric tenure in months."
	msgSystemError     = "A system error occurred while processing your application. Please try again later."
	msgRenderFailure   = "There was an issue generating your sanction letter. Please contact support."
	msgSlipNotVerified = "We could not verify the uploaded salary slip, so the application cannot proceed. Please contact support if you believe this is a mistake."
	msgSlipVerified    = "Document verified. Your installment fits within the 50% salary limit, and your loan has been approved."
	msgConcluded       = "This conversation has concluded. Please start a new conversation for further assistance."
)

// Engine drives the conversation state machine. It owns all the I/O around
// the pure underwriting decision: verification, negotiation, the remote
// lookups, document verification, letter rendering and event publishing. The
// session passed to Advance must be exclusively owned by the caller.
type Engine struct {
	verifier     customer.VerificationService
	negotiator   negotiation.Negotiator
	underwriter  underwriting.Service
	renderer     sanction.Renderer
	documents    DocumentVerifier
	publisher    event.Publisher
	policy       negotiation.SuggestionPolicy
	interestRate decimal.Decimal
	logger       *slog.Logger
}

type EngineConfig struct {
	Verifier           customer.VerificationService
	Negotiator         negotiation.Negotiator
	Underwriter        underwriting.Service
	Renderer           sanction.Renderer
	Documents          DocumentVerifier
	Publisher          event.Publisher
	SuggestionPolicy   negotiation.SuggestionPolicy
	AnnualInterestRate decimal.Decimal
	Logger             *slog.Logger
}

func NewEngine(cfg EngineConfig) *Engine {
	if cfg.Verifier == nil || cfg.Negotiator == nil || cfg.Underwriter == nil || cfg.Renderer == nil {
		panic("conversation engine dependencies cannot be nil")
	}
	if cfg.Documents == nil {
		cfg.Documents = StubDocumentVerifier{}
	}
	if cfg.Publisher == nil {
		cfg.Publisher = event.NoopPublisher{}
	}
	if cfg.SuggestionPolicy == "" {
		cfg.SuggestionPolicy = negotiation.PolicyAutoAccept
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewEngine, using default stderr handler")
	}
	return &Engine{
		verifier:     cfg.Verifier,
		negotiator:   cfg.Negotiator,
		underwriter:  cfg.Underwriter,
		renderer:     cfg.Renderer,
		documents:    cfg.Documents,
		publisher:    cfg.Publisher,
		policy:       cfg.SuggestionPolicy,
		interestRate: cfg.AnnualInterestRate,
		logger:       logger.With(slog.String("component", "conversationEngine")),
	}
}

// StartSession creates a fresh session and returns it with the greeting.
func (e *Engine) StartSession() (*Session, string) {
	session := NewSession()
	monitoring.RecordConversationStarted()
	e.logger.Info("Conversation started", slog.String("sessionID", session.ID))
	return session, msgGreeting
}

// Advance feeds one user message into the state machine and returns the
// chatbot's reply. Every failure mode maps to a reply plus a state decision;
// no error escapes to the transport.
func (e *Engine) Advance(ctx context.Context, session *Session, input string) string {
	session.Touch()
	input = strings.TrimSpace(input)

	switch session.State {
	case StateAwaitingPhone:
		return e.handlePhone(ctx, session, input)
	case StateAwaitingLoanAmount:
		return e.handleAmount(session, input)
	case StateAwaitingTenure:
		return e.handleTenure(ctx, session, input)
	case StateAwaitingSalarySlip:
		return e.handleSalarySlip(ctx, session, input)
	case StateEnded:
		return msgConcluded
	default:
		e.logger.Error("Session in unknown state", slog.String("sessionID", session.ID), slog.String("state", string(session.State)))
		return msgSystemError
	}
}

func (e *Engine) handlePhone(ctx context.Context, session *Session, input string) string {
	record, err := e.verifier.VerifyPhone(ctx, input)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidInput):
			return msgInvalidPhone
		case errors.Is(err, apperrors.ErrNotFound):
			return msgPhoneNotFound
		default:
			e.logger.ErrorContext(ctx, "Verification failed", slog.Any("error", err))
			return e.conclude(session, OutcomeError, msgSystemError)
		}
	}

	session.Customer = record
	session.State = StateAwaitingLoanAmount
	return fmt.Sprintf("Thank you, %s! I've found your profile. How much would you like to borrow? (e.g., 500000)", record.Name)
}

func (e *Engine) handleAmount(session *Session, input string) string {
	amount, err := parsePositiveInt(input)
	if err != nil {
		return msgInvalidAmount
	}

	session.Request.RequestedAmount = amount
	session.State = StateAwaitingTenure
	return msgAskTenure
}

// handleTenure runs the synchronous pipeline: negotiation, underwriting and,
// unless the application suspends on a salary slip, letter rendering.
func (e *Engine) handleTenure(ctx context.Context, session *Session, input string) string {
	tenure, err := parsePositiveInt(input)
	if err != nil {
		return msgInvalidTenure
	}
	session.Request.RequestedTenureMonths = int(tenure)

	outcome, err := e.negotiator.Negotiate(ctx, session.Customer.Phone, session.Request.RequestedAmount, int(tenure))
	if err != nil {
		e.logger.ErrorContext(ctx, "Negotiation failed", slog.Any("error", err))
		return e.conclude(session, OutcomeError, msgSystemError)
	}

	session.Request.FinalAmount = outcome.Commit(e.policy)
	session.Request.FinalTenureMonths = outcome.FinalTenureMonths

	var reply strings.Builder
	reply.WriteString(outcome.Message)
	if outcome.Status == negotiation.StatusSuggestion {
		if e.policy == negotiation.PolicyAutoAccept {
			reply.WriteString(" I've taken the liberty of proceeding with the suggested amount for instant approval.")
		} else {
			reply.WriteString(" Proceeding with your original request for evaluation.")
		}
	}

	decision := e.underwriter.EvaluateApplication(ctx, session.Customer.Phone, session.Request.FinalAmount)
	session.Decision = &decision
	monitoring.RecordDecision(string(decision.Status))
	e.publishDecision(ctx, session, decision)

	switch decision.Status {
	case underwriting.StatusApprovedInstant:
		reply.WriteString("\n\n")
		reply.WriteString(e.finalizeApproval(ctx, session, decision.ApprovedAmount))
		return reply.String()

	case underwriting.StatusPendingSalarySlip:
		session.State = StateAwaitingSalarySlip
		reply.WriteString("\n\n")
		reply.WriteString(decision.Reason)
		return reply.String()

	case underwriting.StatusRejected:
		reply.WriteString("\n\n")
		reply.WriteString(decision.Reason)
		return e.conclude(session, OutcomeRejected, reply.String())

	default:
		reply.WriteString("\n\n")
		reply.WriteString(decision.Reason)
		return e.conclude(session, OutcomeError, reply.String())
	}
}

func (e *Engine) handleSalarySlip(ctx context.Context, session *Session, input string) string {
	verified, err := e.documents.VerifySalarySlip(ctx, session, input)
	if err != nil {
		e.logger.ErrorContext(ctx, "Salary slip verification failed", slog.Any("error", err))
		return e.conclude(session, OutcomeError, msgSystemError)
	}
	if !verified {
		return e.conclude(session, OutcomeRejected, msgSlipNotVerified)
	}

	return msgSlipVerified + "\n\n" + e.finalizeApproval(ctx, session, session.Request.FinalAmount)
}

// finalizeApproval renders the sanction letter and ends the session. A
// rendering failure still ends the conversation, with a support message.
func (e *Engine) finalizeApproval(ctx context.Context, session *Session, approvedAmount int64) string {
	loan := sanction.Loan{
		ApprovedAmount:     approvedAmount,
		InterestRate:       e.interestRate,
		TenureMonths:       session.Request.FinalTenureMonths,
		MonthlyInstallment: negotiation.EstimateEMI(approvedAmount, e.interestRate, session.Request.FinalTenureMonths),
	}

	artifact, err := e.renderer.Render(ctx, session.Customer, loan)
	if err != nil {
		monitoring.RecordLetterFailed()
		e.logger.ErrorContext(ctx, "Sanction letter rendering failed", slog.Any("error", err))
		return e.conclude(session, OutcomeError, msgRenderFailure)
	}

	monitoring.RecordLetterIssued()
	e.publishLetter(ctx, session, loan, artifact)

	msg := fmt.Sprintf("Congratulations! Your loan of %s has been approved. Your sanction letter '%s' has been generated. You will receive a copy on your email and SMS shortly.",
		underwriting.FormatRupees(approvedAmount), artifact.Filename)
	return e.conclude(session, OutcomeApproved, msg)
}

func (e *Engine) conclude(session *Session, outcome Outcome, reply string) string {
	session.end(outcome)
	monitoring.RecordConversationCompleted(string(outcome))
	e.logger.Info("Conversation concluded",
		slog.String("sessionID", session.ID),
		slog.String("outcome", string(outcome)),
	)
	return reply
}

func (e *Engine) publishDecision(ctx context.Context, session *Session, decision underwriting.Decision) {
	evt := event.DecisionEvaluatedEvent{
		SessionID:       session.ID,
		CustomerID:      session.Customer.CustomerID,
		Status:          string(decision.Status),
		RequestedAmount: session.Request.FinalAmount,
		ApprovedAmount:  decision.ApprovedAmount,
		CreditScore:     decision.CreditScore,
		Timestamp:       time.Now(),
	}
	if err := e.publisher.PublishDecisionEvaluated(ctx, evt); err != nil {
		e.logger.WarnContext(ctx, "Failed to publish decision event", slog.Any("error", err))
	}
}

func (e *Engine) publishLetter(ctx context.Context, session *Session, loan sanction.Loan, artifact sanction.Artifact) {
	evt := event.LetterIssuedEvent{
		SessionID:      session.ID,
		CustomerID:     session.Customer.CustomerID,
		ApprovedAmount: loan.ApprovedAmount,
		TenureMonths:   loan.TenureMonths,
		Filename:       artifact.Filename,
		Timestamp:      time.Now(),
	}
	if err := e.publisher.PublishLetterIssued(ctx, evt); err != nil {
		e.logger.WarnContext(ctx, "Failed to publish letter event", slog.Any("error", err))
	}
}

func parsePositiveInt(input string) (int64, error) {
	value, err := strconv.ParseInt(strings.ReplaceAll(input, ",", ""), 10, 64)
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, fmt.Errorf("value must be positive")
	}
	return value, nil
}
