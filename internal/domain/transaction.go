package domain

import "time"

// Entry is one leg of a transaction. Its direction is independent of the
// referenced account's polarity, and its id must be globally unique across
// the whole transaction store, not just within its own transaction.
type Entry struct {
	ID        string
	AccountID string
	Direction Direction
	Amount    int64 // strictly positive, minor units
	Currency  Currency
}

// Transaction is an immutable set of entries committed together.
// Entry order is preserved as submitted but carries no validation meaning.
type Transaction struct {
	ID        string
	Name      string
	Entries   []Entry
	CreatedAt time.Time
}
