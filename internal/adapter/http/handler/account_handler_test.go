package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/coinledger/internal/adapter/http/dto"
	"github.com/iho/coinledger/internal/adapter/http/handler"
	"github.com/iho/coinledger/internal/domain"
	"github.com/iho/coinledger/internal/usecase"
)

type accountServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	getFn    func(ctx context.Context, id string) (*domain.Account, error)
	listFn   func(ctx context.Context) ([]*domain.Account, error)
}

func (s *accountServiceStub) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return s.listFn(ctx)
}

func newAccountRouter(svc *accountServiceStub) http.Handler {
	h := handler.NewAccountHandler(svc)
	r := chi.NewRouter()
	r.Post("/accounts", h.Create)
	r.Get("/accounts", h.List)
	r.Get("/accounts/{id}", h.Get)
	return r
}

func TestAccountHandler_Create(t *testing.T) {
	svc := &accountServiceStub{
		createFn: func(_ context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			return &domain.Account{
				ID:        "acc-1",
				Name:      input.Name,
				Direction: input.Direction,
				Balance:   input.Balance,
				Currency:  domain.USD,
			}, nil
		},
	}
	router := newAccountRouter(svc)

	body := `{"name":"cash","direction":"debit","balance":100}`
	req := httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp dto.AccountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "acc-1", resp.ID)
	assert.Equal(t, "cash", resp.Name)
	assert.Equal(t, "debit", resp.Direction)
	assert.Equal(t, int64(100), resp.Balance)
	assert.Equal(t, "USD", resp.Currency)
}

func TestAccountHandler_CreateInvalidBody(t *testing.T) {
	router := newAccountRouter(&accountServiceStub{})

	req := httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid request body", resp.Error)
}

func TestAccountHandler_CreateValidationError(t *testing.T) {
	router := newAccountRouter(&accountServiceStub{})

	req := httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader(`{"direction":"sideways"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "direction must be 'debit' or 'credit'")
}

func TestAccountHandler_CreateConflict(t *testing.T) {
	svc := &accountServiceStub{
		createFn: func(_ context.Context, _ usecase.CreateAccountInput) (*domain.Account, error) {
			return nil, fmt.Errorf("%w: account with id acc-1 already exists", domain.ErrConflict)
		},
	}
	router := newAccountRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader(`{"direction":"debit"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAccountHandler_Get(t *testing.T) {
	svc := &accountServiceStub{
		getFn: func(_ context.Context, id string) (*domain.Account, error) {
			if id != "acc-1" {
				return nil, fmt.Errorf("%w: account not found: %s", domain.ErrNotFound, id)
			}
			return &domain.Account{ID: "acc-1", Direction: domain.Debit, Balance: 42, Currency: domain.USD}, nil
		},
	}
	router := newAccountRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.AccountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.Balance)
}

func TestAccountHandler_GetNotFound(t *testing.T) {
	svc := &accountServiceStub{
		getFn: func(_ context.Context, id string) (*domain.Account, error) {
			return nil, fmt.Errorf("%w: account not found: %s", domain.ErrNotFound, id)
		},
	}
	router := newAccountRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/accounts/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "account not found: missing")
}

func TestAccountHandler_GetInternalErrorIsGeneric(t *testing.T) {
	svc := &accountServiceStub{
		getFn: func(_ context.Context, _ string) (*domain.Account, error) {
			return nil, errors.New("store exploded")
		},
	}
	router := newAccountRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Error)
}

func TestAccountHandler_List(t *testing.T) {
	svc := &accountServiceStub{
		listFn: func(_ context.Context) ([]*domain.Account, error) {
			return []*domain.Account{
				{ID: "acc-1", Direction: domain.Debit, Currency: domain.USD},
				{ID: "acc-2", Direction: domain.Credit, Currency: domain.EUR},
			}, nil
		},
	}
	router := newAccountRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.AccountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}
