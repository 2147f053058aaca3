package negotiation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	"loan-origination/internal/domain/underwriting"
	"loan-origination/internal/pkg/apperrors"
)

// OfferSource yields a customer's pre-approved limit. The bureau client
// satisfies this.
type OfferSource interface {
	PreApprovedLimit(ctx context.Context, phone string) (int64, error)
}

type Negotiator interface {
	// Negotiate compares the requested amount against the customer's
	// pre-approved offer and clamps the tenure into product bounds. When the
	// request exceeds the limit the outcome carries a suggestion; committing
	// an amount from it is the caller's job via Outcome.Commit.
	Negotiate(ctx context.Context, phone string, requestedAmount int64, tenureMonths int) (Outcome, error)
}

type Config struct {
	AnnualInterestRate decimal.Decimal
	MinTenureMonths    int
	MaxTenureMonths    int
}

var _ Negotiator = (*negotiator)(nil)

type negotiator struct {
	offers OfferSource
	cfg    Config
	logger *slog.Logger
}

func NewNegotiator(offers OfferSource, cfg Config, logger *slog.Logger) Negotiator {
	if offers == nil {
		panic("offer source cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewNegotiator, using default stderr handler")
	}
	return &negotiator{
		offers: offers,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "negotiator")),
	}
}

func (n *negotiator) Negotiate(ctx context.Context, phone string, requestedAmount int64, tenureMonths int) (Outcome, error) {
	if requestedAmount <= 0 {
		return Outcome{}, fmt.Errorf("%w: requested amount must be positive", apperrors.ErrInvalidInput)
	}
	if tenureMonths <= 0 {
		return Outcome{}, fmt.Errorf("%w: tenure must be positive", apperrors.ErrInvalidInput)
	}

	limit, err := n.offers.PreApprovedLimit(ctx, phone)
	if err != nil {
		n.logger.ErrorContext(ctx, "Pre-approved limit lookup failed during negotiation", slog.Any("error", err))
		return Outcome{}, err
	}

	finalTenure := n.clampTenure(tenureMonths)

	if requestedAmount <= limit {
		emi := EstimateEMI(requestedAmount, n.cfg.AnnualInterestRate, finalTenure)
		return Outcome{
			Status:             StatusConfirmed,
			FinalAmount:        requestedAmount,
			FinalTenureMonths:  finalTenure,
			MonthlyInstallment: emi,
			Message: fmt.Sprintf("Great news! %s over %d months fits your pre-approved offer. Your estimated monthly installment is %s.",
				underwriting.FormatRupees(requestedAmount), finalTenure, formatDecimalRupees(emi)),
		}, nil
	}

	emi := EstimateEMI(limit, n.cfg.AnnualInterestRate, finalTenure)
	return Outcome{
		Status:             StatusSuggestion,
		FinalAmount:        requestedAmount,
		FinalTenureMonths:  finalTenure,
		SuggestedAmount:    limit,
		MonthlyInstallment: emi,
		Message: fmt.Sprintf("The requested %s is above your pre-approved offer of %s. Taking %s instead would qualify for instant approval.",
			underwriting.FormatRupees(requestedAmount), underwriting.FormatRupees(limit), underwriting.FormatRupees(limit)),
	}, nil
}

func (n *negotiator) clampTenure(tenureMonths int) int {
	if n.cfg.MinTenureMonths > 0 && tenureMonths < n.cfg.MinTenureMonths {
		return n.cfg.MinTenureMonths
	}
	if n.cfg.MaxTenureMonths > 0 && tenureMonths > n.cfg.MaxTenureMonths {
		return n.cfg.MaxTenureMonths
	}
	return tenureMonths
}

func formatDecimalRupees(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}
