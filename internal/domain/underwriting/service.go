package underwriting

import (
	"context"
	"log/slog"
	"os"
)

// Bureau provides the two remote lookups underwriting relies on. Both are
// keyed by the customer's phone number and independent of each other.
type Bureau interface {
	CreditScore(ctx context.Context, phone string) (int64, error)

	PreApprovedLimit(ctx context.Context, phone string) (int64, error)
}

type Service interface {
	// EvaluateApplication fetches the credit score and pre-approved limit for
	// the phone number and runs the decision policy against them. Any lookup
	// failure surfaces as a single StatusError decision; nothing is retried
	// here beyond the bureau client's own retry budget.
	EvaluateApplication(ctx context.Context, phone string, requestedAmount int64) Decision
}

var _ Service = (*service)(nil)

type service struct {
	bureau Bureau
	logger *slog.Logger
}

func NewService(bureau Bureau, logger *slog.Logger) Service {
	if bureau == nil {
		panic("bureau client cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewService, using default stderr handler")
	}
	return &service{
		bureau: bureau,
		logger: logger.With(slog.String("component", "underwritingService")),
	}
}

func (s *service) EvaluateApplication(ctx context.Context, phone string, requestedAmount int64) Decision {
	s.logger.InfoContext(ctx, "Evaluating loan application", slog.Int64("requestedAmount", requestedAmount))

	creditScore, err := s.bureau.CreditScore(ctx, phone)
	if err != nil {
		s.logger.ErrorContext(ctx, "Credit score lookup failed", slog.Any("error", err))
		return errorDecision()
	}

	limit, err := s.bureau.PreApprovedLimit(ctx, phone)
	if err != nil {
		s.logger.ErrorContext(ctx, "Pre-approved limit lookup failed", slog.Any("error", err))
		return errorDecision()
	}

	decision := Evaluate(creditScore, limit, requestedAmount)
	s.logger.InfoContext(ctx, "Application evaluated",
		slog.String("status", string(decision.Status)),
		slog.Int64("creditScore", creditScore),
		slog.Int64("preApprovedLimit", limit),
	)
	return decision
}

func errorDecision() Decision {
	return Decision{
		Status: StatusError,
		Reason: "A system error occurred while checking your application. Please try again later.",
	}
}
