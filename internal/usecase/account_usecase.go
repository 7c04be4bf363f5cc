package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/iho/coinledger/internal/domain"
)

// AccountUseCase handles account business logic. It also acts as the balance
// updater: committed transactions hand it a map of net deltas to apply.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
	metrics     MetricsRecorder
}

// NewAccountUseCase creates a new AccountUseCase. A nil recorder disables
// metrics.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator, metrics MetricsRecorder) *AccountUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// CreateAccountInput represents input for creating an account. The boundary
// has already normalized directions and currencies; empty ID and Currency
// mean "assign one".
type CreateAccountInput struct {
	ID        string
	Name      string
	Direction domain.Direction
	Balance   int64
	Currency  domain.Currency
}

// CreateAccount creates a new account, assigning an id and the default
// currency where the request left them out.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	id := input.ID
	if id == "" {
		id = uc.idGen.Generate()
	}

	if _, ok := uc.accountRepo.FindByID(ctx, id); ok {
		return nil, fmt.Errorf("%w: account with id %s already exists", domain.ErrConflict, id)
	}

	currency := input.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	account := &domain.Account{
		ID:        id,
		Name:      input.Name,
		Direction: input.Direction,
		Balance:   input.Balance,
		Currency:  currency,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	uc.metrics.AccountCreated()

	return account, nil
}

// GetAccount retrieves an account by id.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, ok := uc.accountRepo.FindByID(ctx, id)
	if !ok {
		return nil, fmt.Errorf("%w: account not found: %s", domain.ErrNotFound, id)
	}
	return account, nil
}

// ListAccounts returns all accounts. Inspection only, not on the transaction
// path.
func (uc *AccountUseCase) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return uc.accountRepo.GetAll(ctx), nil
}

// ApplyBalanceChanges applies a net minor-unit delta to each account in
// changes. Accounts are touched in sorted id order so the effect is
// deterministic. The store's Update is permissive about unknown ids, but
// this layer is strict: a missing account fails with domain.ErrNotFound.
func (uc *AccountUseCase) ApplyBalanceChanges(ctx context.Context, changes map[string]int64) error {
	ids := make([]string, 0, len(changes))
	for id := range changes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		account, ok := uc.accountRepo.FindByID(ctx, id)
		if !ok {
			return fmt.Errorf("%w: account not found: %s", domain.ErrNotFound, id)
		}

		balance := account.Balance + changes[id]
		uc.accountRepo.Update(ctx, id, domain.AccountPatch{Balance: &balance})
	}

	return nil
}
