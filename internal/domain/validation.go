package domain

import (
	"fmt"
	"strings"
)

// AccountLookup resolves an account by id. The bool reports existence.
type AccountLookup func(id string) (*Account, bool)

// ValidateTransaction enforces the ledger's structural and economic rules on
// a fully resolved transaction. Checks run in a fixed order and the first
// violation wins:
//
//  1. at least 2 entries
//  2. every entry's account exists
//  3. every entry's currency matches its account's currency
//  4. a single currency across the whole transaction
//  5. at least one debit and one credit entry
//  6. debit amounts sum equals credit amounts sum
func ValidateTransaction(tx *Transaction, lookup AccountLookup) error {
	entries := tx.Entries

	if len(entries) < 2 {
		return fmt.Errorf("%w: transaction must have at least 2 entries", ErrValidation)
	}

	var (
		hasDebit, hasCredit bool
		debitSum, creditSum int64
		currencies          []Currency
	)
	seenCurrency := make(map[Currency]struct{})

	for _, e := range entries {
		account, ok := lookup(e.AccountID)
		if !ok {
			return fmt.Errorf("%w: account not found: %s", ErrNotFound, e.AccountID)
		}

		if e.Currency != account.Currency {
			return fmt.Errorf(
				"%w: entry currency %s does not match account currency %s for account %s",
				ErrValidation, e.Currency, account.Currency, e.AccountID,
			)
		}

		if _, ok := seenCurrency[e.Currency]; !ok {
			seenCurrency[e.Currency] = struct{}{}
			currencies = append(currencies, e.Currency)
		}

		if e.Direction == Debit {
			hasDebit = true
			debitSum += e.Amount
		} else {
			hasCredit = true
			creditSum += e.Amount
		}
	}

	// Only reachable when entries reference accounts with different
	// currencies; kept as its own check for defense in depth.
	if len(currencies) > 1 {
		codes := make([]string, len(currencies))
		for i, c := range currencies {
			codes[i] = string(c)
		}
		return fmt.Errorf("%w: transaction cannot mix currencies: %s", ErrValidation, strings.Join(codes, ", "))
	}

	if !hasDebit || !hasCredit {
		return fmt.Errorf("%w: transaction must have at least one debit and one credit entry", ErrValidation)
	}

	if debitSum != creditSum {
		return fmt.Errorf("%w: transaction must be balanced: debits=%d, credits=%d", ErrValidation, debitSum, creditSum)
	}

	return nil
}

// BalanceChanges computes the net minor-unit delta each account receives from
// a validated set of entries. Entries targeting the same account accumulate
// into a single adjustment. Account existence is guaranteed by
// ValidateTransaction, so unknown ids are skipped rather than reported.
func BalanceChanges(entries []Entry, lookup AccountLookup) map[string]int64 {
	changes := make(map[string]int64)

	for _, e := range entries {
		account, ok := lookup(e.AccountID)
		if !ok {
			continue
		}
		changes[e.AccountID] += account.EffectOf(e)
	}

	return changes
}
