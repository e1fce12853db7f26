package finance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOutgoing(t *testing.T) {
	var got CreateTransactionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/transactions/outgoing", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(TransactionRef{ID: "txn-1"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second)
	ref, err := client.CreateOutgoing(context.Background(), CreateTransactionRequest{
		Amount:         decimal.NewFromInt(50000),
		Category:       "salary",
		SubjectID:      "dev-1",
		Source:         SourceTag{Type: SourceTypeSalary, ID: "rec-1"},
		CheckDuplicate: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "txn-1", ref.ID)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, SourceTypeSalary, got.Source.Type)
	assert.True(t, got.CheckDuplicate)
}

func TestCreateOutgoingAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":{"code":"INVALID_AMOUNT","message":"amount must be positive"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second)
	_, err := client.CreateOutgoing(context.Background(), CreateTransactionRequest{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "INVALID_AMOUNT", apiErr.ErrorCode)
	assert.Contains(t, apiErr.Message, "must be positive")
}

func TestCancelForSourceNotFoundIsNoOp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/transactions/cancel-by-source", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second)
	err := client.CancelForSource(context.Background(), SourceTag{Type: SourceTypeSalary, ID: "rec-1"}, "reverted")
	assert.NoError(t, err)
}

func TestCancelForSourceSurfacesOtherErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second)
	err := client.CancelForSource(context.Background(), SourceTag{Type: SourceTypeSalary, ID: "rec-1"}, "reverted")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}
