// Package cart holds the client-local cart state and the quantity reducer
// applied to it. It is pure: no storage, no network. Staleness against the
// live catalog is accepted here; the authoritative stock check happens when
// the cart is submitted to the order engine.
package cart

import "github.com/shopspring/decimal"

// Cart maps item id to the desired quantity for that item.
type Cart map[int64]int64

// ApplyDelta returns a copy of c with the quantity for itemID adjusted by
// delta, clamped against the caller's best-known stock ceiling.
//
// The floor is 1, not 0: a decrement can never remove an entry, only Delete
// can. When knownStock is 0 or negative the ceiling is 0, but a push below 1
// still lands on 1; removal has to be explicit.
func ApplyDelta(c Cart, itemID, delta, knownStock int64) Cart {
	out := make(Cart, len(c)+1)
	for id, q := range c {
		out[id] = q
	}

	proposed := out[itemID] + delta
	switch {
	case proposed < 1:
		out[itemID] = 1
	case proposed <= knownStock:
		out[itemID] = proposed
	default:
		out[itemID] = knownStock
	}
	return out
}

// Delete returns a copy of c without itemID. No stock check.
func Delete(c Cart, itemID int64) Cart {
	out := make(Cart, len(c))
	for id, q := range c {
		if id != itemID {
			out[id] = q
		}
	}
	return out
}

// Total sums quantity*price across entries whose id resolves via priceOf.
// Entries that no longer resolve are excluded, so the total can silently
// under-report against a mutated catalog until submission re-reads it.
func Total(c Cart, priceOf func(itemID int64) (decimal.Decimal, bool)) decimal.Decimal {
	total := decimal.Zero
	for id, q := range c {
		price, ok := priceOf(id)
		if !ok {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(q)))
	}
	return total
}

// Quantity returns the desired quantity for itemID, zero when absent.
func Quantity(c Cart, itemID int64) int64 {
	return c[itemID]
}
