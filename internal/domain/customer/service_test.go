package customer

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"loan-origination/internal/pkg/apperrors"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

type MockDirectory struct {
	mock.Mock
}

func (_m *MockDirectory) FindByPhone(ctx context.Context, phone string) (*Record, error) {
	ret := _m.Called(ctx, phone)

	var r0 *Record
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Record)
	}
	return r0, ret.Error(1)
}

func (_m *MockDirectory) Count() int {
	ret := _m.Called()
	return ret.Int(0)
}

func TestVerifyPhoneSuccess(t *testing.T) {
	dir := new(MockDirectory)
	rec := validRecord()
	dir.On("FindByPhone", mock.Anything, "9876543210").Return(&rec, nil)

	svc := NewVerificationService(dir, logger)
	got, err := svc.VerifyPhone(context.Background(), "9876543210")

	assert.NoError(t, err)
	assert.Equal(t, "CUST1001", got.CustomerID)
	dir.AssertExpectations(t)
}

func TestVerifyPhoneNormalizesBeforeLookup(t *testing.T) {
	dir := new(MockDirectory)
	rec := validRecord()
	dir.On("FindByPhone", mock.Anything, "9876543210").Return(&rec, nil)

	svc := NewVerificationService(dir, logger)
	got, err := svc.VerifyPhone(context.Background(), " +91 98765-43210 ")

	assert.NoError(t, err)
	assert.Equal(t, "Rajesh Kumar", got.Name)
}

func TestVerifyPhoneInvalidFormat(t *testing.T) {
	dir := new(MockDirectory)
	svc := NewVerificationService(dir, logger)

	for _, raw := range []string{"12345", "not-a-phone", "", "123456789012345"} {
		_, err := svc.VerifyPhone(context.Background(), raw)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "raw %q", raw)
	}
	dir.AssertNotCalled(t, "FindByPhone", mock.Anything, mock.Anything)
}

func TestVerifyPhoneNotFound(t *testing.T) {
	dir := new(MockDirectory)
	dir.On("FindByPhone", mock.Anything, "1234567890").Return(nil, ErrNotFound)

	svc := NewVerificationService(dir, logger)
	_, err := svc.VerifyPhone(context.Background(), "1234567890")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestVerifyPhoneDirectoryFailure(t *testing.T) {
	dir := new(MockDirectory)
	dir.On("FindByPhone", mock.Anything, "1234567890").Return(nil, errors.New("disk error"))

	svc := NewVerificationService(dir, logger)
	_, err := svc.VerifyPhone(context.Background(), "1234567890")

	assert.ErrorIs(t, err, apperrors.ErrInternalServer)
}
