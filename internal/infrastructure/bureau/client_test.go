package bureau

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-origination/internal/config"
	"loan-origination/internal/pkg/apperrors"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

func newClient(baseURL string, maxRetries int) *Client {
	return NewClient(config.BureauConfig{
		BaseURL:    baseURL,
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
	}, logger)
}

func TestCreditScoreSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/credit-score", r.URL.Path)
		assert.Equal(t, "9876543210", r.URL.Query().Get("phone"))
		w.Write([]byte(`{"credit_score": 750}`))
	}))
	defer srv.Close()

	score, err := newClient(srv.URL, 0).CreditScore(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.Equal(t, int64(750), score)
}

func TestPreApprovedLimitSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pre-approved-limit", r.URL.Path)
		w.Write([]byte(`{"pre_approved_limit": 600000}`))
	}))
	defer srv.Close()

	limit, err := newClient(srv.URL, 0).PreApprovedLimit(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.Equal(t, int64(600000), limit)
}

func TestLookupMissingFieldIsRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected": 1}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, 2).CreditScore(context.Background(), "9876543210")
	assert.ErrorIs(t, err, apperrors.ErrRemoteService)
}

func TestLookupMalformedBodyIsRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, 0).CreditScore(context.Background(), "9876543210")
	assert.ErrorIs(t, err, apperrors.ErrRemoteService)
}

func TestLookupRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"credit_score": 720}`))
	}))
	defer srv.Close()

	score, err := newClient(srv.URL, 2).CreditScore(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.Equal(t, int64(720), score)
	assert.Equal(t, int32(3), calls.Load())
}

func TestLookupDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "customer not found"}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, 3).CreditScore(context.Background(), "1234567890")
	assert.ErrorIs(t, err, apperrors.ErrRemoteService)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLookupExhaustsRetryBudget(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, 2).CreditScore(context.Background(), "9876543210")
	assert.ErrorIs(t, err, apperrors.ErrRemoteService)
	assert.Equal(t, int32(3), calls.Load())
}

func TestLookupUnreachableServer(t *testing.T) {
	_, err := newClient("http://127.0.0.1:1", 0).CreditScore(context.Background(), "9876543210")
	assert.ErrorIs(t, err, apperrors.ErrRemoteService)
}
