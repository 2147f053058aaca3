package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"loan-origination/internal/domain/customer"
	"loan-origination/internal/pkg/apperrors"
)

// JSONDirectory is a customer.Directory backed by a JSON file loaded once at
// startup. The map is never written after NewJSONDirectory returns, so reads
// need no locking.
type JSONDirectory struct {
	byPhone map[string]*customer.Record
	logger  *slog.Logger
}

var _ customer.Directory = (*JSONDirectory)(nil)

func NewJSONDirectory(dataFile string, logger *slog.Logger) (*JSONDirectory, error) {
	raw, err := os.ReadFile(dataFile)
	if err != nil {
		return nil, fmt.Errorf("reading customer data file %s: %w", dataFile, err)
	}

	var records []customer.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parsing customer data file %s: %w", dataFile, err)
	}

	byPhone := make(map[string]*customer.Record, len(records))
	for i := range records {
		rec := &records[i]
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("invalid customer record %q: %w", rec.CustomerID, err)
		}
		if _, exists := byPhone[rec.Phone]; exists {
			return nil, fmt.Errorf("%w: phone %s", customer.ErrDuplicatePhone, rec.Phone)
		}
		byPhone[rec.Phone] = rec
	}

	logger.Info("Customer directory loaded", "file", dataFile, "records", len(byPhone))
	return &JSONDirectory{
		byPhone: byPhone,
		logger:  logger.With(slog.String("component", "JSONDirectory")),
	}, nil
}

func (d *JSONDirectory) FindByPhone(_ context.Context, phone string) (*customer.Record, error) {
	rec, ok := d.byPhone[phone]
	if !ok {
		return nil, fmt.Errorf("%w: phone %s", apperrors.ErrNotFound, phone)
	}
	return rec, nil
}

func (d *JSONDirectory) Count() int {
	return len(d.byPhone)
}
