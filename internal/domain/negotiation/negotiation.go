package negotiation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Status string

const (
	// StatusConfirmed means the requested amount fits the customer's
	// pre-approved offer and is committed as-is.
	StatusConfirmed Status = "CONFIRMED"

	// StatusSuggestion means the requested amount exceeds the pre-approved
	// limit; the negotiator proposes the limit for an instant approval.
	StatusSuggestion Status = "SUGGESTION"
)

// SuggestionPolicy decides which amount is committed when the negotiator
// returns a suggestion. One policy applies to every transport.
type SuggestionPolicy string

const (
	// PolicyAutoAccept commits the suggested amount.
	PolicyAutoAccept SuggestionPolicy = "autoAccept"

	// PolicyKeepRequested commits the customer's original request and lets
	// underwriting decide.
	PolicyKeepRequested SuggestionPolicy = "keepRequested"
)

type Outcome struct {
	Status             Status
	FinalAmount        int64
	FinalTenureMonths  int
	SuggestedAmount    int64
	MonthlyInstallment decimal.Decimal
	Message            string
}

// Commit resolves the suggestion branch to a single final amount under the
// given policy. Confirmed outcomes are returned unchanged.
func (o Outcome) Commit(policy SuggestionPolicy) int64 {
	if o.Status != StatusSuggestion {
		return o.FinalAmount
	}
	if policy == PolicyKeepRequested {
		return o.FinalAmount
	}
	return o.SuggestedAmount
}

// EstimateEMI computes the equated monthly installment for a principal at an
// annual percentage rate over tenureMonths, rounded to two decimal places.
func EstimateEMI(principal int64, annualRatePercent decimal.Decimal, tenureMonths int) decimal.Decimal {
	if principal <= 0 || tenureMonths <= 0 {
		return decimal.Zero
	}
	p := decimal.NewFromInt(principal)
	if annualRatePercent.IsZero() {
		return p.Div(decimal.NewFromInt(int64(tenureMonths))).Round(2)
	}

	monthlyRate := annualRatePercent.Div(decimal.NewFromInt(1200))
	factor := decimal.NewFromInt(1).Add(monthlyRate).Pow(decimal.NewFromInt(int64(tenureMonths)))

	numerator := p.Mul(monthlyRate).Mul(factor)
	denominator := factor.Sub(decimal.NewFromInt(1))
	return numerator.Div(denominator).Round(2)
}

func ParseSuggestionPolicy(raw string) (SuggestionPolicy, error) {
	switch SuggestionPolicy(raw) {
	case PolicyAutoAccept:
		return PolicyAutoAccept, nil
	case PolicyKeepRequested:
		return PolicyKeepRequested, nil
	default:
		return "", fmt.Errorf("unknown suggestion policy %q", raw)
	}
}
