package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/iho/coinledger/internal/domain"
)

// TransactionRepository is an in-memory transaction store. Besides the
// transaction records themselves it tracks every entry id ever committed, so
// entry ids stay unique across the store's whole lifetime.
type TransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction
	entryIDs     map[string]string // entry id -> owning transaction id
}

// NewTransactionRepository creates an empty TransactionRepository.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		transactions: make(map[string]*domain.Transaction),
		entryIDs:     make(map[string]string),
	}
}

// Create inserts a transaction all-or-nothing. It fails with
// domain.ErrConflict if the transaction id is taken, if the submission
// repeats an entry id, or if any entry id was already committed by a
// previous transaction. On conflict nothing is stored.
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.transactions[tx.ID]; ok {
		return fmt.Errorf("%w: transaction with id %s already exists", domain.ErrConflict, tx.ID)
	}

	seen := make(map[string]struct{}, len(tx.Entries))
	for _, e := range tx.Entries {
		if _, ok := seen[e.ID]; ok {
			return fmt.Errorf("%w: duplicate entry id %s in transaction", domain.ErrConflict, e.ID)
		}
		seen[e.ID] = struct{}{}

		if owner, ok := r.entryIDs[e.ID]; ok {
			return fmt.Errorf("%w: entry with id %s already exists in transaction %s", domain.ErrConflict, e.ID, owner)
		}
	}

	stored := copyTransaction(tx)
	r.transactions[tx.ID] = stored
	for _, e := range stored.Entries {
		r.entryIDs[e.ID] = tx.ID
	}

	return nil
}

// FindByID returns a copy of the transaction, or false if absent.
func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*domain.Transaction, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tx, ok := r.transactions[id]
	if !ok {
		return nil, false
	}

	return copyTransaction(tx), true
}

// GetAll returns copies of all transactions.
func (r *TransactionRepository) GetAll(ctx context.Context) []*domain.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Transaction, 0, len(r.transactions))
	for _, tx := range r.transactions {
		out = append(out, copyTransaction(tx))
	}

	return out
}

// Clear removes all transactions and forgets all committed entry ids.
func (r *TransactionRepository) Clear(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.transactions = make(map[string]*domain.Transaction)
	r.entryIDs = make(map[string]string)
}

func copyTransaction(tx *domain.Transaction) *domain.Transaction {
	out := *tx
	out.Entries = make([]domain.Entry, len(tx.Entries))
	copy(out.Entries, tx.Entries)
	return &out
}
