package accounting

import (
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceChanges maps an account ID to the delta that must be added to its balance.
type BalanceChanges map[int64]decimal.Decimal

// Add accumulates delta onto accountID. Deltas on the same account collapse into one entry.
func (c BalanceChanges) Add(accountID int64, delta decimal.Decimal) {
	c[accountID] = c[accountID].Add(delta)
}

// NonZero returns a copy without entries whose delta is zero.
func (c BalanceChanges) NonZero() BalanceChanges {
	out := make(BalanceChanges, len(c))
	for id, delta := range c {
		if !delta.IsZero() {
			out[id] = delta
		}
	}
	return out
}

// PostingChanges returns the balance change caused by posting txn.
func PostingChanges(txn domain.Transaction) BalanceChanges {
	changes := BalanceChanges{}
	changes.Add(txn.AccountID, txn.Effect())
	return changes
}

// ReversalChanges returns the balance change that undoes txn: balance -= effect(amount, type).
func ReversalChanges(txn domain.Transaction) BalanceChanges {
	changes := BalanceChanges{}
	changes.Add(txn.AccountID, txn.Effect().Neg())
	return changes
}

// ReassignmentChanges reverses oldTxn from its account and applies newTxn to its account.
// When both live on the same account the two entries collapse into NetDelta.
func ReassignmentChanges(oldTxn, newTxn domain.Transaction) BalanceChanges {
	changes := BalanceChanges{}
	changes.Add(oldTxn.AccountID, oldTxn.Effect().Neg())
	changes.Add(newTxn.AccountID, newTxn.Effect())
	return changes
}

// NetDelta is the single-step balance change for rewriting oldTxn into newTxn on one account.
func NetDelta(oldTxn, newTxn domain.Transaction) decimal.Decimal {
	return newTxn.Effect().Sub(oldTxn.Effect())
}

// SumEffects returns the balance implied by a set of transactions, keyed by account.
func SumEffects(transactions []domain.Transaction) BalanceChanges {
	sums := BalanceChanges{}
	for _, txn := range transactions {
		sums.Add(txn.AccountID, txn.Effect())
	}
	return sums
}
