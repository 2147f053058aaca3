package underwriting

import "fmt"

const (
	// MinCreditScore is the floor below which every application is rejected.
	MinCreditScore = 700

	// LimitMultiplier caps the offerable amount at a multiple of the
	// customer's pre-approved limit.
	LimitMultiplier = 2

	// MaxEMIPercent is the salary share an installment may consume when an
	// application needs salary-slip verification.
	MaxEMIPercent = 50
)

type Status string

const (
	StatusApprovedInstant   Status = "APPROVED_INSTANT"
	StatusPendingSalarySlip Status = "PENDING_SALARY_SLIP"
	StatusRejected          Status = "REJECTED"
	StatusError             Status = "ERROR"
)

type Decision struct {
	Status         Status
	Reason         string
	ApprovedAmount int64
	CreditScore    int64
	MaxEMIPercent  int
}

// Evaluate applies the underwriting policy to a loan application. Rules are
// checked in order and the first match wins. Both the pre-approved limit and
// twice the limit are inclusive boundaries.
func Evaluate(creditScore, preApprovedLimit, requestedAmount int64) Decision {
	if creditScore < MinCreditScore {
		return Decision{
			Status:      StatusRejected,
			Reason:      fmt.Sprintf("Unfortunately, your application could not be approved as your credit score (%d) is below our minimum requirement of %d.", creditScore, MinCreditScore),
			CreditScore: creditScore,
		}
	}

	if requestedAmount <= preApprovedLimit {
		return Decision{
			Status:         StatusApprovedInstant,
			Reason:         "Congratulations! Your loan has been instantly approved based on your pre-approved offer.",
			ApprovedAmount: requestedAmount,
			CreditScore:    creditScore,
		}
	}

	if requestedAmount <= LimitMultiplier*preApprovedLimit {
		return Decision{
			Status:        StatusPendingSalarySlip,
			Reason:        "Your request is being processed. To proceed, please upload your latest salary slip for verification.",
			CreditScore:   creditScore,
			MaxEMIPercent: MaxEMIPercent,
		}
	}

	maxOffer := LimitMultiplier * preApprovedLimit
	return Decision{
		Status:      StatusRejected,
		Reason:      fmt.Sprintf("Unfortunately, we cannot approve the requested amount. The maximum amount we can offer is %s.", FormatRupees(maxOffer)),
		CreditScore: creditScore,
	}
}

// FormatRupees renders an amount with a rupee sign and thousand separators.
func FormatRupees(amount int64) string {
	s := fmt.Sprintf("%d", amount)
	neg := false
	if amount < 0 {
		neg = true
		s = s[1:]
	}

	out := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}

	if neg {
		return "₹-" + string(out)
	}
	return "₹" + string(out)
}
