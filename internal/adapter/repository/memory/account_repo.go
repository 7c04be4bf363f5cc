package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/iho/coinledger/internal/domain"
)

// AccountRepository is an in-memory account store. All methods hand out
// copies so stored records only change through Update.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// NewAccountRepository creates an empty AccountRepository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Create inserts a new account, failing with domain.ErrConflict if the id is
// already taken.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; ok {
		return fmt.Errorf("%w: account with id %s already exists", domain.ErrConflict, account.ID)
	}

	stored := *account
	r.accounts[account.ID] = &stored

	return nil
}

// FindByID returns a copy of the account, or false if absent.
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, false
	}

	out := *account
	return &out, true
}

// Update merges the non-nil patch fields into an existing account. Unknown
// ids are silently ignored: the service layer confirms existence before
// applying balance changes, so this path is a safety net, not an error.
func (r *AccountRepository) Update(ctx context.Context, id string, patch domain.AccountPatch) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return
	}

	if patch.Name != nil {
		account.Name = *patch.Name
	}
	if patch.Balance != nil {
		account.Balance = *patch.Balance
	}
}

// GetAll returns copies of all accounts.
func (r *AccountRepository) GetAll(ctx context.Context) []*domain.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		a := *account
		out = append(out, &a)
	}

	return out
}

// Clear removes all accounts.
func (r *AccountRepository) Clear(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts = make(map[string]*domain.Account)
}
