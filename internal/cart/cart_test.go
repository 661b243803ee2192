package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestApplyDeltaFloorsAtOne(t *testing.T) {
	got := ApplyDelta(Cart{}, 7, -5, 10)
	assert.EqualValues(t, 1, got[7])
}

func TestApplyDeltaClampsToKnownStock(t *testing.T) {
	c := Cart{7: 8}
	got := ApplyDelta(c, 7, +5, 10)
	assert.EqualValues(t, 10, got[7])
}

func TestApplyDeltaWithinBounds(t *testing.T) {
	c := Cart{7: 3}
	got := ApplyDelta(c, 7, +2, 10)
	assert.EqualValues(t, 5, got[7])

	got = ApplyDelta(got, 7, -1, 10)
	assert.EqualValues(t, 4, got[7])
}

// With zero known stock the ceiling is 0 but the floor still wins: a
// decrement below 1 lands on 1, never 0. Removal has to go through Delete.
func TestApplyDeltaZeroStockTension(t *testing.T) {
	got := ApplyDelta(Cart{}, 7, -1, 0)
	assert.EqualValues(t, 1, got[7])

	got = ApplyDelta(Cart{7: 1}, 7, +1, 0)
	assert.EqualValues(t, 0, got[7])
}

func TestApplyDeltaIsPure(t *testing.T) {
	orig := Cart{7: 2, 8: 1}
	_ = ApplyDelta(orig, 7, +1, 10)
	assert.EqualValues(t, 2, orig[7])
	assert.Len(t, orig, 2)
}

func TestDeleteRemovesEntry(t *testing.T) {
	c := Cart{7: 2, 8: 1}
	got := Delete(c, 7)
	assert.NotContains(t, got, int64(7))
	assert.Contains(t, got, int64(8))
	// input untouched
	assert.Contains(t, c, int64(7))
}

func TestTotalSkipsUnresolvableItems(t *testing.T) {
	prices := map[int64]decimal.Decimal{
		1: decimal.RequireFromString("12.50"),
		2: decimal.RequireFromString("3.25"),
	}
	priceOf := func(id int64) (decimal.Decimal, bool) {
		p, ok := prices[id]
		return p, ok
	}

	c := Cart{1: 2, 2: 4, 99: 10} // 99 no longer in the catalog
	total := Total(c, priceOf)
	assert.True(t, total.Equal(decimal.RequireFromString("38.00")), "got %s", total)
}

func TestTotalEmptyCart(t *testing.T) {
	total := Total(Cart{}, func(int64) (decimal.Decimal, bool) {
		return decimal.Zero, true
	})
	assert.True(t, total.IsZero())
}

func TestQuantity(t *testing.T) {
	c := Cart{7: 2}
	assert.EqualValues(t, 2, Quantity(c, 7))
	assert.EqualValues(t, 0, Quantity(c, 8))
}
