package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iho/coinledger/internal/domain"
)

// TransactionUseCase handles transaction business logic: idempotency
// resolution, validation, balance application and persistence.
type TransactionUseCase struct {
	// mu serializes the idempotency decision, the conflict checks and the
	// balance mutation so competing requests observe them atomically.
	mu sync.Mutex

	accountRepo AccountRepository
	txRepo      TransactionRepository
	balances    BalanceApplier
	idGen       IDGenerator
	metrics     MetricsRecorder
}

// NewTransactionUseCase creates a new TransactionUseCase. A nil recorder
// disables metrics.
func NewTransactionUseCase(
	accountRepo AccountRepository,
	txRepo TransactionRepository,
	balances BalanceApplier,
	idGen IDGenerator,
	metrics MetricsRecorder,
) *TransactionUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &TransactionUseCase{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		balances:    balances,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// CreateTransactionEntryInput represents one entry of a transaction request.
// An empty Currency defaults to the referenced account's currency.
type CreateTransactionEntryInput struct {
	ID        string
	AccountID string
	Direction domain.Direction
	Amount    int64
	Currency  domain.Currency
}

// CreateTransactionInput represents input for creating a transaction.
type CreateTransactionInput struct {
	ID      string
	Name    string
	Entries []CreateTransactionEntryInput
}

// CreateTransaction runs the full creation pipeline: idempotency check when
// the caller supplied an id, entry resolution, validation, persistence and
// balance application. A safe replay returns the stored transaction
// unchanged with no new balance effects.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	id := input.ID
	if id == "" {
		id = uc.idGen.Generate()
	}

	// Generated ids cannot collide with an existing record, so the
	// resolver only runs for caller-supplied ids.
	if input.ID != "" {
		existing, replayed, err := uc.resolveIdempotent(ctx, id, input)
		if err != nil {
			uc.metrics.TransactionRejected(errorKind(err))
			return nil, err
		}
		if replayed {
			uc.metrics.IdempotentReplay()
			return existing, nil
		}
	}

	tx := &domain.Transaction{
		ID:        id,
		Name:      input.Name,
		Entries:   uc.resolveEntries(ctx, input.Entries, true),
		CreatedAt: time.Now().UTC(),
	}

	if err := domain.ValidateTransaction(tx, uc.lookup(ctx)); err != nil {
		uc.metrics.TransactionRejected(errorKind(err))
		return nil, err
	}

	changes := domain.BalanceChanges(tx.Entries, uc.lookup(ctx))

	// Persist before touching balances: the store's all-or-nothing create
	// is the last step that can fail, and a failure must leave account
	// state untouched.
	if err := uc.txRepo.Create(ctx, tx); err != nil {
		uc.metrics.TransactionRejected(errorKind(err))
		return nil, err
	}

	if err := uc.balances.ApplyBalanceChanges(ctx, changes); err != nil {
		return nil, err
	}

	uc.metrics.TransactionCreated()

	return tx, nil
}

// GetTransaction retrieves a transaction by id.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	tx, ok := uc.txRepo.FindByID(ctx, id)
	if !ok {
		return nil, fmt.Errorf("%w: transaction not found: %s", domain.ErrNotFound, id)
	}
	return tx, nil
}

// ListTransactions returns all transactions. Inspection only.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context) ([]*domain.Transaction, error) {
	return uc.txRepo.GetAll(ctx), nil
}

// resolveIdempotent decides whether a resubmission under an existing id is a
// safe replay. It compares canonical projections of the stored transaction
// and the incoming request; entry ids are ignored on both sides.
func (uc *TransactionUseCase) resolveIdempotent(ctx context.Context, id string, input CreateTransactionInput) (*domain.Transaction, bool, error) {
	existing, ok := uc.txRepo.FindByID(ctx, id)
	if !ok {
		return nil, false, nil
	}

	stored := domain.ProjectTransaction(existing.Name, existing.Entries)
	submitted := domain.ProjectTransaction(input.Name, uc.resolveEntries(ctx, input.Entries, false))

	if stored.Equal(submitted) {
		return existing, true, nil
	}

	return nil, false, fmt.Errorf("%w: transaction with id %s already exists with different data", domain.ErrConflict, id)
}

// resolveEntries turns request entries into concrete domain entries. An
// omitted currency falls back to the referenced account's currency, or to
// the default currency when the account is unknown; existence itself is the
// validator's job. Entry ids are only generated when assignIDs is set, so
// the idempotency comparison never burns generated ids.
func (uc *TransactionUseCase) resolveEntries(ctx context.Context, inputs []CreateTransactionEntryInput, assignIDs bool) []domain.Entry {
	entries := make([]domain.Entry, len(inputs))

	for i, in := range inputs {
		currency := in.Currency
		if currency == "" {
			if account, ok := uc.accountRepo.FindByID(ctx, in.AccountID); ok {
				currency = account.Currency
			} else {
				currency = domain.DefaultCurrency
			}
		}

		id := in.ID
		if id == "" && assignIDs {
			id = uc.idGen.Generate()
		}

		entries[i] = domain.Entry{
			ID:        id,
			AccountID: in.AccountID,
			Direction: in.Direction,
			Amount:    in.Amount,
			Currency:  currency,
		}
	}

	return entries
}

func (uc *TransactionUseCase) lookup(ctx context.Context) domain.AccountLookup {
	return func(id string) (*domain.Account, bool) {
		return uc.accountRepo.FindByID(ctx, id)
	}
}

// errorKind labels an error with its failure kind for metrics.
func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
