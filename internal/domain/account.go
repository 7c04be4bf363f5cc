package domain

import (
	"fmt"
	"strings"
)

// Direction is the polarity of an account or entry.
type Direction string

const (
	Debit  Direction = "debit"
	Credit Direction = "credit"
)

// ParseDirection normalizes and validates a direction value.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Debit:
		return Debit, nil
	case Credit:
		return Credit, nil
	default:
		return "", fmt.Errorf("%w: direction must be 'debit' or 'credit'", ErrValidation)
	}
}

// Account is a ledger account with a fixed normal-balance polarity.
// Direction never changes after creation; Balance only changes as a
// consequence of a committed transaction.
type Account struct {
	ID        string
	Name      string
	Direction Direction
	Balance   int64 // minor units of Currency
	Currency  Currency
}

// EffectOf returns the signed balance effect of applying an entry to this
// account: an entry whose direction matches the account's polarity increases
// the balance, an opposing entry decreases it.
func (a *Account) EffectOf(e Entry) int64 {
	if e.Direction == a.Direction {
		return e.Amount
	}
	return -e.Amount
}

// AccountPatch holds the optional fields of a partial account update.
// Nil fields are left untouched.
type AccountPatch struct {
	Name    *string
	Balance *int64
}
