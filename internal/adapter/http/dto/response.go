package dto

import (
	"time"

	"github.com/iho/coinledger/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Direction string `json:"direction"`
	Balance   int64  `json:"balance"`
	Currency  string `json:"currency"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Direction: string(a.Direction),
		Balance:   a.Balance,
		Currency:  string(a.Currency),
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// TransactionEntryResponse represents a transaction entry in API responses.
type TransactionEntryResponse struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Direction string `json:"direction"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID        string                     `json:"id"`
	Name      string                     `json:"name"`
	Entries   []TransactionEntryResponse `json:"entries"`
	CreatedAt time.Time                  `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	entries := make([]TransactionEntryResponse, len(t.Entries))
	for i, e := range t.Entries {
		entries[i] = TransactionEntryResponse{
			ID:        e.ID,
			AccountID: e.AccountID,
			Direction: string(e.Direction),
			Amount:    e.Amount,
			Currency:  string(e.Currency),
		}
	}

	return &TransactionResponse{
		ID:        t.ID,
		Name:      t.Name,
		Entries:   entries,
		CreatedAt: t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
