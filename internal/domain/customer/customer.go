package customer

import (
	"fmt"

	"loan-origination/internal/pkg/apperrors"
)

// Record is a customer's identity and credit profile. Records are loaded once
// at startup and never mutated afterwards, so they are safe to share across
// concurrent conversations.
type Record struct {
	CustomerID       string `json:"customer_id"`
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Address          string `json:"address"`
	CreditScore      int64  `json:"credit_score"`
	PreApprovedLimit int64  `json:"pre_approved_limit"`
}

func (r *Record) Validate() error {
	if r.CustomerID == "" {
		return apperrors.NewValidationError("customer_id", "must not be empty")
	}
	if r.Name == "" {
		return apperrors.NewValidationError("name", "must not be empty")
	}
	if !IsValidPhone(r.Phone) {
		return apperrors.NewValidationError("phone", fmt.Sprintf("'%s' is not a 10-digit phone number", r.Phone))
	}
	if r.PreApprovedLimit < 0 {
		return apperrors.NewValidationError("pre_approved_limit", "must not be negative")
	}
	return nil
}

// IsValidPhone reports whether phone is exactly 10 ASCII digits.
func IsValidPhone(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for _, c := range phone {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
