package sanction

import (
	"context"

	"github.com/shopspring/decimal"

	"loan-origination/internal/domain/customer"
)

// Loan holds the final approved terms handed to the letter renderer.
type Loan struct {
	ApprovedAmount     int64
	InterestRate       decimal.Decimal
	TenureMonths       int
	MonthlyInstallment decimal.Decimal
}

// Artifact references a rendered sanction letter.
type Artifact struct {
	Filename string
	Path     string
}

// Renderer produces the formal sanction letter for an approved loan.
type Renderer interface {
	Render(ctx context.Context, cust *customer.Record, loan Loan) (Artifact, error)
}
