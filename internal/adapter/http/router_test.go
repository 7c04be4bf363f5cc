package http_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerhttp "github.com/iho/coinledger/internal/adapter/http"
	"github.com/iho/coinledger/internal/adapter/http/dto"
	"github.com/iho/coinledger/internal/adapter/http/handler"
	"github.com/iho/coinledger/internal/adapter/repository/memory"
	"github.com/iho/coinledger/internal/usecase"
)

// newTestServer wires the full stack with in-memory stores, the same way the
// server entrypoint does.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	accountRepo := memory.NewAccountRepository()
	txRepo := memory.NewTransactionRepository()
	idGen := memory.NewUUIDGenerator()

	accountUC := usecase.NewAccountUseCase(accountRepo, idGen, nil)
	transactionUC := usecase.NewTransactionUseCase(accountRepo, txRepo, accountUC, idGen, nil)

	router := ledgerhttp.NewRouter(ledgerhttp.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		HealthHandler:      handler.NewHealthHandler(),
		Logger:             zerolog.Nop(),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, srv *httptest.Server, path, body string) (int, []byte) {
	t.Helper()

	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func getJSON(t *testing.T, srv *httptest.Server, path string) (int, []byte) {
	t.Helper()

	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func createAccount(t *testing.T, srv *httptest.Server, name, direction string) dto.AccountResponse {
	t.Helper()

	body := fmt.Sprintf(`{"name":%q,"direction":%q}`, name, direction)
	status, data := postJSON(t, srv, "/accounts", body)
	require.Equal(t, http.StatusCreated, status, "body: %s", data)

	var account dto.AccountResponse
	require.NoError(t, json.Unmarshal(data, &account))
	return account
}

func fetchBalance(t *testing.T, srv *httptest.Server, accountID string) int64 {
	t.Helper()

	status, data := getJSON(t, srv, "/accounts/"+accountID)
	require.Equal(t, http.StatusOK, status)

	var account dto.AccountResponse
	require.NoError(t, json.Unmarshal(data, &account))
	return account.Balance
}

func TestRouterTransferFlow(t *testing.T) {
	srv := newTestServer(t)

	cash := createAccount(t, srv, "cash", "debit")
	revenue := createAccount(t, srv, "revenue", "credit")
	assert.Equal(t, "USD", cash.Currency)
	assert.Equal(t, int64(0), cash.Balance)

	txBody := fmt.Sprintf(`{
		"name": "sale",
		"entries": [
			{"account_id": %q, "direction": "debit", "amount": 100},
			{"account_id": %q, "direction": "credit", "amount": 100}
		]
	}`, cash.ID, revenue.ID)

	status, data := postJSON(t, srv, "/transactions", txBody)
	require.Equal(t, http.StatusCreated, status, "body: %s", data)

	var tx dto.TransactionResponse
	require.NoError(t, json.Unmarshal(data, &tx))
	assert.NotEmpty(t, tx.ID)
	require.Len(t, tx.Entries, 2)
	assert.NotEmpty(t, tx.Entries[0].ID)
	assert.Equal(t, "USD", tx.Entries[0].Currency)

	// Direction matching the account direction increases its balance.
	assert.Equal(t, int64(100), fetchBalance(t, srv, cash.ID))
	assert.Equal(t, int64(100), fetchBalance(t, srv, revenue.ID))

	status, data = getJSON(t, srv, "/transactions/"+tx.ID)
	require.Equal(t, http.StatusOK, status)

	var fetched dto.TransactionResponse
	require.NoError(t, json.Unmarshal(data, &fetched))
	assert.Equal(t, tx.ID, fetched.ID)
}

func TestRouterIdempotentReplay(t *testing.T) {
	srv := newTestServer(t)

	cash := createAccount(t, srv, "cash", "debit")
	revenue := createAccount(t, srv, "revenue", "credit")

	txID := "33333333-3333-4333-8333-333333333333"
	txBody := fmt.Sprintf(`{
		"id": %q,
		"name": "sale",
		"entries": [
			{"account_id": %q, "direction": "debit", "amount": 100},
			{"account_id": %q, "direction": "credit", "amount": 100}
		]
	}`, txID, cash.ID, revenue.ID)

	status, data := postJSON(t, srv, "/transactions", txBody)
	require.Equal(t, http.StatusCreated, status, "body: %s", data)

	var first dto.TransactionResponse
	require.NoError(t, json.Unmarshal(data, &first))

	// Resubmitting the identical request answers 201 with the stored record
	// and must not move balances again.
	status, data = postJSON(t, srv, "/transactions", txBody)
	require.Equal(t, http.StatusCreated, status, "body: %s", data)

	var replay dto.TransactionResponse
	require.NoError(t, json.Unmarshal(data, &replay))
	assert.Equal(t, first.ID, replay.ID)
	assert.Equal(t, first.CreatedAt, replay.CreatedAt)

	assert.Equal(t, int64(100), fetchBalance(t, srv, cash.ID))
	assert.Equal(t, int64(100), fetchBalance(t, srv, revenue.ID))

	// A different payload under the same id is a conflict.
	conflicting := strings.Replace(txBody, `"amount": 100`, `"amount": 200`, 2)
	status, data = postJSON(t, srv, "/transactions", conflicting)
	require.Equal(t, http.StatusConflict, status)

	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &errResp))
	assert.Contains(t, errResp.Error, "already exists with different data")
}

func TestRouterRejectedTransactionLeavesBalancesUntouched(t *testing.T) {
	srv := newTestServer(t)

	cash := createAccount(t, srv, "cash", "debit")
	revenue := createAccount(t, srv, "revenue", "credit")

	txBody := fmt.Sprintf(`{
		"entries": [
			{"account_id": %q, "direction": "debit", "amount": 100},
			{"account_id": %q, "direction": "credit", "amount": 50}
		]
	}`, cash.ID, revenue.ID)

	status, data := postJSON(t, srv, "/transactions", txBody)
	require.Equal(t, http.StatusBadRequest, status)

	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &errResp))
	assert.Contains(t, errResp.Error, "transaction must be balanced")

	assert.Equal(t, int64(0), fetchBalance(t, srv, cash.ID))
	assert.Equal(t, int64(0), fetchBalance(t, srv, revenue.ID))
}

func TestRouterHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	status, data := getJSON(t, srv, "/health")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(data))

	status, data = getJSON(t, srv, "/ready")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ready"}`, string(data))
}

func TestRouterMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	// Generate at least one observed request before scraping.
	status, _ := getJSON(t, srv, "/health")
	require.Equal(t, http.StatusOK, status)

	status, data := getJSON(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(data), "coinledger_http_requests_total")
}
