package directory

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-origination/internal/domain/customer"
	"loan-origination/internal/pkg/apperrors"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

func writeDataFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "customers.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validData = `[
  {
    "customer_id": "CUST1001",
    "name": "Rajesh Kumar",
    "phone": "9876543210",
    "email": "rajesh@example.com",
    "address": "12 MG Road, Bengaluru",
    "credit_score": 750,
    "pre_approved_limit": 500000
  },
  {
    "customer_id": "CUST1002",
    "name": "Priya Sharma",
    "phone": "9876543211",
    "email": "priya@example.com",
    "address": "45 Linking Road, Mumbai",
    "credit_score": 750,
    "pre_approved_limit": 600000
  }
]`

func TestNewJSONDirectory(t *testing.T) {
	t.Run("loads valid data file", func(t *testing.T) {
		dir, err := NewJSONDirectory(writeDataFile(t, validData), logger)
		require.NoError(t, err)
		assert.Equal(t, 2, dir.Count())
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := NewJSONDirectory(filepath.Join(t.TempDir(), "nope.json"), logger)
		assert.Error(t, err)
	})

	t.Run("invalid JSON fails", func(t *testing.T) {
		_, err := NewJSONDirectory(writeDataFile(t, "{not json"), logger)
		assert.Error(t, err)
	})

	t.Run("duplicate phone fails", func(t *testing.T) {
		data := `[
		  {"customer_id":"A","name":"A","phone":"9876543210","credit_score":700,"pre_approved_limit":1},
		  {"customer_id":"B","name":"B","phone":"9876543210","credit_score":700,"pre_approved_limit":1}
		]`
		_, err := NewJSONDirectory(writeDataFile(t, data), logger)
		assert.ErrorIs(t, err, customer.ErrDuplicatePhone)
	})

	t.Run("invalid record fails", func(t *testing.T) {
		data := `[{"customer_id":"A","name":"A","phone":"123","credit_score":700,"pre_approved_limit":1}]`
		_, err := NewJSONDirectory(writeDataFile(t, data), logger)
		assert.Error(t, err)
	})
}

func TestFindByPhone(t *testing.T) {
	dir, err := NewJSONDirectory(writeDataFile(t, validData), logger)
	require.NoError(t, err)

	t.Run("known phone returns record", func(t *testing.T) {
		rec, err := dir.FindByPhone(context.Background(), "9876543211")
		require.NoError(t, err)
		assert.Equal(t, "Priya Sharma", rec.Name)
		assert.Equal(t, int64(600000), rec.PreApprovedLimit)
	})

	t.Run("unknown phone returns not found", func(t *testing.T) {
		_, err := dir.FindByPhone(context.Background(), "1234567890")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
