package usecase

import (
	"context"

	"github.com/iho/coinledger/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	// Create inserts a new account, failing with domain.ErrConflict if the
	// id is already taken.
	Create(ctx context.Context, account *domain.Account) error
	FindByID(ctx context.Context, id string) (*domain.Account, bool)
	// Update merges the non-nil patch fields into an existing account and
	// silently does nothing for unknown ids; existence is the caller's
	// responsibility.
	Update(ctx context.Context, id string, patch domain.AccountPatch)
	GetAll(ctx context.Context) []*domain.Account
	Clear(ctx context.Context)
}

// TransactionRepository defines data access for transactions.
type TransactionRepository interface {
	// Create inserts a new transaction all-or-nothing. It fails with
	// domain.ErrConflict if the transaction id is taken, if the submission
	// repeats an entry id, or if any entry id was already committed by a
	// previously stored transaction.
	Create(ctx context.Context, tx *domain.Transaction) error
	FindByID(ctx context.Context, id string) (*domain.Transaction, bool)
	GetAll(ctx context.Context) []*domain.Transaction
	Clear(ctx context.Context)
}

// BalanceApplier applies net balance deltas to accounts.
type BalanceApplier interface {
	ApplyBalanceChanges(ctx context.Context, changes map[string]int64) error
}

// IDGenerator generates unique ids.
type IDGenerator interface {
	Generate() string
}

// MetricsRecorder receives ledger activity counters.
type MetricsRecorder interface {
	AccountCreated()
	TransactionCreated()
	IdempotentReplay()
	TransactionRejected(kind string)
}

type nopMetrics struct{}

func (nopMetrics) AccountCreated()                 {}
func (nopMetrics) TransactionCreated()             {}
func (nopMetrics) IdempotentReplay()               {}
func (nopMetrics) TransactionRejected(kind string) {}
