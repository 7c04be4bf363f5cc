package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/iho/coinledger/internal/domain"
)

// MockAccountRepository is a mock implementation of usecase.AccountRepository.
// Unset Func fields fall back to a map-backed default behavior.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc   func(ctx context.Context, account *domain.Account) error
	FindByIDFunc func(ctx context.Context, id string) (*domain.Account, bool)
	UpdateFunc   func(ctx context.Context, id string, patch domain.AccountPatch)
	GetAllFunc   func(ctx context.Context) []*domain.Account
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; ok {
		return fmt.Errorf("%w: account with id %s already exists", domain.ErrConflict, account.ID)
	}
	stored := *account
	m.accounts[account.ID] = &stored
	return nil
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, bool) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.accounts[id]
	if !ok {
		return nil, false
	}
	out := *account
	return &out, true
}

func (m *MockAccountRepository) Update(ctx context.Context, id string, patch domain.AccountPatch) {
	if m.UpdateFunc != nil {
		m.UpdateFunc(ctx, id, patch)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[id]
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

func (m *MockAccountRepository) GetAll(ctx context.Context) []*domain.Account {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Account, 0, len(m.accounts))
	for _, account := range m.accounts {
		a := *account
		out = append(out, &a)
	}
	return out
}

func (m *MockAccountRepository) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts = make(map[string]*domain.Account)
}

// MockTransactionRepository is a mock implementation of
// usecase.TransactionRepository with the same global entry-id tracking as the
// real store.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction
	entryIDs     map[string]string

	CreateFunc   func(ctx context.Context, tx *domain.Transaction) error
	FindByIDFunc func(ctx context.Context, id string) (*domain.Transaction, bool)
	GetAllFunc   func(ctx context.Context) []*domain.Transaction
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
		entryIDs:     make(map[string]string),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[tx.ID]; ok {
		return fmt.Errorf("%w: transaction with id %s already exists", domain.ErrConflict, tx.ID)
	}
	seen := make(map[string]struct{}, len(tx.Entries))
	for _, e := range tx.Entries {
		if _, ok := seen[e.ID]; ok {
			return fmt.Errorf("%w: duplicate entry id %s in transaction", domain.ErrConflict, e.ID)
		}
		seen[e.ID] = struct{}{}
		if owner, ok := m.entryIDs[e.ID]; ok {
			return fmt.Errorf("%w: entry with id %s already exists in transaction %s", domain.ErrConflict, e.ID, owner)
		}
	}
	stored := *tx
	stored.Entries = append([]domain.Entry(nil), tx.Entries...)
	m.transactions[tx.ID] = &stored
	for _, e := range stored.Entries {
		m.entryIDs[e.ID] = tx.ID
	}
	return nil
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id string) (*domain.Transaction, bool) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	tx, ok := m.transactions[id]
	if !ok {
		return nil, false
	}
	out := *tx
	out.Entries = append([]domain.Entry(nil), tx.Entries...)
	return &out, true
}

func (m *MockTransactionRepository) GetAll(ctx context.Context) []*domain.Transaction {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Transaction, 0, len(m.transactions))
	for _, tx := range m.transactions {
		t := *tx
		t.Entries = append([]domain.Entry(nil), tx.Entries...)
		out = append(out, &t)
	}
	return out
}

func (m *MockTransactionRepository) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = make(map[string]*domain.Transaction)
	m.entryIDs = make(map[string]string)
}

// MockIDGenerator is a mock implementation of usecase.IDGenerator. By default
// it produces a deterministic sequence.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockBalanceApplier is a mock implementation of usecase.BalanceApplier.
type MockBalanceApplier struct {
	Applied []map[string]int64

	ApplyFunc func(ctx context.Context, changes map[string]int64) error
}

func NewMockBalanceApplier() *MockBalanceApplier {
	return &MockBalanceApplier{}
}

func (m *MockBalanceApplier) ApplyBalanceChanges(ctx context.Context, changes map[string]int64) error {
	if m.ApplyFunc != nil {
		return m.ApplyFunc(ctx, changes)
	}
	m.Applied = append(m.Applied, changes)
	return nil
}
