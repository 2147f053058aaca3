package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRecord() Record {
	return Record{
		CustomerID:       "CUST1001",
		Name:             "Rajesh Kumar",
		Phone:            "9876543210",
		Email:            "rajesh.kumar@example.com",
		Address:          "12 MG Road, Bengaluru",
		CreditScore:      750,
		PreApprovedLimit: 500000,
	}
}

func TestRecordValidate(t *testing.T) {
	t.Run("valid record passes", func(t *testing.T) {
		rec := validRecord()
		assert.NoError(t, rec.Validate())
	})

	t.Run("missing customer id fails", func(t *testing.T) {
		rec := validRecord()
		rec.CustomerID = ""
		assert.Error(t, rec.Validate())
	})

	t.Run("missing name fails", func(t *testing.T) {
		rec := validRecord()
		rec.Name = ""
		assert.Error(t, rec.Validate())
	})

	t.Run("short phone fails", func(t *testing.T) {
		rec := validRecord()
		rec.Phone = "98765"
		assert.Error(t, rec.Validate())
	})

	t.Run("negative pre-approved limit fails", func(t *testing.T) {
		rec := validRecord()
		rec.PreApprovedLimit = -1
		assert.Error(t, rec.Validate())
	})
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"9876543210", true},
		{"0000000000", true},
		{"987654321", false},
		{"98765432100", false},
		{"98765x3210", false},
		{"", false},
		{"9876 54321", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, IsValidPhone(tt.phone), "phone %q", tt.phone)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"9876543210", "9876543210"},
		{"  9876543210  ", "9876543210"},
		{"98765 43210", "9876543210"},
		{"98765-43210", "9876543210"},
		{"+919876543210", "9876543210"},
		{"+91 98765 43210", "9876543210"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizePhone(tt.raw), "raw %q", tt.raw)
	}
}
