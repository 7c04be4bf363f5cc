package dto

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/iho/coinledger/internal/domain"
	"github.com/iho/coinledger/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Direction string `json:"direction"`
	Balance   int64  `json:"balance,omitempty"`
	Currency  string `json:"currency,omitempty"`
}

// Validate checks the request and converts it to use case input. Direction
// and currency values are case-insensitive; problems are collected and
// reported in one validation error.
func (r *CreateAccountRequest) Validate() (usecase.CreateAccountInput, error) {
	var errs []string

	direction, err := domain.ParseDirection(r.Direction)
	if err != nil {
		if strings.TrimSpace(r.Direction) == "" {
			errs = append(errs, "direction is required")
		} else {
			errs = append(errs, "direction must be 'debit' or 'credit'")
		}
	}

	if r.Balance < 0 {
		errs = append(errs, "balance must be a non-negative integer")
	}

	if r.ID != "" {
		if err := uuid.Validate(r.ID); err != nil {
			errs = append(errs, "id must be a valid UUID")
		}
	}

	var currency domain.Currency
	if r.Currency != "" {
		currency, err = domain.ParseCurrency(r.Currency)
		if err != nil {
			errs = append(errs, supportedCurrencyMessage("currency"))
		}
	}

	if len(errs) > 0 {
		return usecase.CreateAccountInput{}, fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(errs, ", "))
	}

	return usecase.CreateAccountInput{
		ID:        r.ID,
		Name:      r.Name,
		Direction: direction,
		Balance:   r.Balance,
		Currency:  currency,
	}, nil
}

// CreateTransactionRequest represents a request to create a transaction.
type CreateTransactionRequest struct {
	ID      string                          `json:"id,omitempty"`
	Name    string                          `json:"name,omitempty"`
	Entries []CreateTransactionEntryRequest `json:"entries"`
}

// CreateTransactionEntryRequest represents one entry of a transaction
// request.
type CreateTransactionEntryRequest struct {
	ID        string `json:"id,omitempty"`
	AccountID string `json:"account_id"`
	Direction string `json:"direction"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency,omitempty"`
}

// Validate checks the request and converts it to use case input.
func (r *CreateTransactionRequest) Validate() (usecase.CreateTransactionInput, error) {
	if len(r.Entries) == 0 {
		return usecase.CreateTransactionInput{}, fmt.Errorf("%w: entries must be a non-empty array", domain.ErrValidation)
	}

	var errs []string

	if r.ID != "" {
		if err := uuid.Validate(r.ID); err != nil {
			errs = append(errs, "id must be a valid UUID")
		}
	}

	entries := make([]usecase.CreateTransactionEntryInput, len(r.Entries))
	for i, e := range r.Entries {
		if e.AccountID == "" {
			errs = append(errs, fmt.Sprintf("entries[%d].account_id is required", i))
		} else if err := uuid.Validate(e.AccountID); err != nil {
			errs = append(errs, fmt.Sprintf("entries[%d].account_id must be a valid UUID", i))
		}

		direction, err := domain.ParseDirection(e.Direction)
		if err != nil {
			errs = append(errs, fmt.Sprintf("entries[%d].direction is required and must be 'debit' or 'credit'", i))
		}

		if e.Amount <= 0 {
			errs = append(errs, fmt.Sprintf("entries[%d].amount must be a positive integer", i))
		}

		var currency domain.Currency
		if e.Currency != "" {
			currency, err = domain.ParseCurrency(e.Currency)
			if err != nil {
				errs = append(errs, supportedCurrencyMessage(fmt.Sprintf("entries[%d].currency", i)))
			}
		}

		entries[i] = usecase.CreateTransactionEntryInput{
			ID:        e.ID,
			AccountID: e.AccountID,
			Direction: direction,
			Amount:    e.Amount,
			Currency:  currency,
		}
	}

	if len(errs) > 0 {
		return usecase.CreateTransactionInput{}, fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(errs, ", "))
	}

	return usecase.CreateTransactionInput{
		ID:      r.ID,
		Name:    r.Name,
		Entries: entries,
	}, nil
}

func supportedCurrencyMessage(field string) string {
	return field + " must be a supported currency code (USD, EUR, GBP, JPY, KWD)"
}
