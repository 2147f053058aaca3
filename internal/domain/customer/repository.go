package customer

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("customer not found")

	ErrDuplicatePhone = errors.New("phone number already registered to another customer")
)

// Directory is the read-only customer record store keyed by phone number.
type Directory interface {
	FindByPhone(ctx context.Context, phone string) (*Record, error)

	Count() int
}
