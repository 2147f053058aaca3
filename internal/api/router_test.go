package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-origination/internal/config"
	"loan-origination/internal/conversation"
	"loan-origination/internal/domain/customer"
	"loan-origination/internal/domain/negotiation"
	"loan-origination/internal/domain/sanction"
	"loan-origination/internal/domain/underwriting"
)

type stubDirectory struct{}

func (stubDirectory) FindByPhone(_ context.Context, phone string) (*customer.Record, error) {
	if phone != "9876543210" {
		return nil, customer.ErrNotFound
	}
	return &customer.Record{CustomerID: "CUST-001", Name: "Rajesh Kumar", Phone: phone, CreditScore: 750, PreApprovedLimit: 500000}, nil
}

func (stubDirectory) Count() int { return 1 }

type stubBureau struct{}

func (stubBureau) CreditScore(context.Context, string) (int64, error) { return 750, nil }

func (stubBureau) PreApprovedLimit(context.Context, string) (int64, error) { return 500000, nil }

type stubRenderer struct{}

func (stubRenderer) Render(context.Context, *customer.Record, sanction.Loan) (sanction.Artifact, error) {
	return sanction.Artifact{Filename: "Sanction_Letter_Test.pdf"}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rate := decimal.RequireFromString("10.99")

	engine := conversation.NewEngine(conversation.EngineConfig{
		Verifier:           customer.NewVerificationService(stubDirectory{}, logger),
		Negotiator:         negotiation.NewNegotiator(stubBureau{}, negotiation.Config{AnnualInterestRate: rate, MinTenureMonths: 6, MaxTenureMonths: 84}, logger),
		Underwriter:        underwriting.NewService(stubBureau{}, logger),
		Renderer:           stubRenderer{},
		SuggestionPolicy:   negotiation.PolicyAutoAccept,
		AnnualInterestRate: rate,
		Logger:             logger,
	})

	cfg := &config.Config{}
	cfg.Metrics.Path = "/metrics"
	cfg.Letter.OutputDir = t.TempDir()

	return SetupRouter(engine, conversation.NewMemoryStore(30*time.Minute), cfg, logger)
}

func TestRouterServesChatPage(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "chat-box")
	assert.Contains(t, rr.Body.String(), "/download_letter/")
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestRouterChatEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "session_id")
	assert.Contains(t, rr.Body.String(), "10-digit mobile number")
}

func TestRouterDownloadRouteWired(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/download_letter/missing.pdf", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
