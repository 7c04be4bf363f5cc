package domain

import "sort"

// entryKey is the order- and id-independent view of an entry used for replay
// comparison. Entry ids are excluded: a resubmission may omit ids that the
// original request had generated.
type entryKey struct {
	AccountID string
	Direction Direction
	Amount    int64
	Currency  Currency
}

// Projection is the canonical view of a transaction used to decide whether a
// resubmission under an existing id is a safe replay. Two requests with the
// same projection are considered identical regardless of entry order.
type Projection struct {
	Name    string
	Entries []entryKey
}

// ProjectTransaction builds the canonical projection of a transaction.
// Entries are sorted by account id, direction and currency
// (lexicographically), then amount (ascending).
func ProjectTransaction(name string, entries []Entry) Projection {
	keys := make([]entryKey, len(entries))
	for i, e := range entries {
		keys[i] = entryKey{
			AccountID: e.AccountID,
			Direction: e.Direction,
			Amount:    e.Amount,
			Currency:  e.Currency,
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.AccountID != b.AccountID {
			return a.AccountID < b.AccountID
		}
		if a.Direction != b.Direction {
			return a.Direction < b.Direction
		}
		if a.Currency != b.Currency {
			return a.Currency < b.Currency
		}
		return a.Amount < b.Amount
	})

	return Projection{Name: name, Entries: keys}
}

// Equal reports whether two projections are structurally identical.
func (p Projection) Equal(other Projection) bool {
	if p.Name != other.Name || len(p.Entries) != len(other.Entries) {
		return false
	}
	for i := range p.Entries {
		if p.Entries[i] != other.Entries[i] {
			return false
		}
	}
	return true
}
