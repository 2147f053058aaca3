package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"loan-origination/internal/pkg/apperrors"
)

type VerificationService interface {
	// VerifyPhone normalizes the supplied phone number, validates its format
	// and looks the customer up in the directory.
	VerifyPhone(ctx context.Context, rawPhone string) (*Record, error)
}

var _ VerificationService = (*verificationService)(nil)

type verificationService struct {
	directory Directory
	logger    *slog.Logger
}

func NewVerificationService(directory Directory, logger *slog.Logger) VerificationService {
	if directory == nil {
		panic("customer directory cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewVerificationService, using default stderr handler")
	}
	return &verificationService{
		directory: directory,
		logger:    logger.With(slog.String("component", "verificationService")),
	}
}

func (s *verificationService) VerifyPhone(ctx context.Context, rawPhone string) (*Record, error) {
	phone := NormalizePhone(rawPhone)
	if !IsValidPhone(phone) {
		return nil, fmt.Errorf("%w: phone number must be exactly 10 digits", apperrors.ErrInvalidInput)
	}

	record, err := s.directory.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			s.logger.InfoContext(ctx, "Phone number not found in directory")
			return nil, fmt.Errorf("%w: no account for phone number", apperrors.ErrNotFound)
		}
		s.logger.ErrorContext(ctx, "Directory lookup failed", slog.Any("error", err))
		return nil, fmt.Errorf("%w: directory lookup failed: %v", apperrors.ErrInternalServer, err)
	}

	s.logger.InfoContext(ctx, "Customer verified", slog.String("customerID", record.CustomerID))
	return record, nil
}

// NormalizePhone strips spaces, dashes and a leading +91 country prefix.
func NormalizePhone(raw string) string {
	phone := strings.TrimSpace(raw)
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	if strings.HasPrefix(phone, "+91") && len(phone) == 13 {
		phone = phone[3:]
	}
	return phone
}
