package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateFinalPrice(t *testing.T) {
	assert.Equal(t, 200000.0, CalculateFinalPrice(200000, 0))
	assert.Equal(t, 99.99, CalculateFinalPrice(99.99, 0))
	assert.Equal(t, 150000.0, CalculateFinalPrice(200000, 25))
	assert.Equal(t, 0.0, CalculateFinalPrice(200000, 100))
	assert.Equal(t, 66.0, CalculateFinalPrice(99, 33))
}

func TestCalculateFinalPriceMatchesFormulaAcrossDiscounts(t *testing.T) {
	prices := []float64{1, 9.5, 50, 100, 149999, 250000}
	for _, price := range prices {
		for d := 1; d <= 100; d++ {
			want := math.Round(price * (1 - float64(d)/100))
			assert.Equal(t, want, CalculateFinalPrice(price, float64(d)), "price=%v discount=%d", price, d)
		}
	}
}

func TestApplyPricingAndUnitPrice(t *testing.T) {
	g := &Game{Price: 100, DiscountPercent: 50}
	g.ApplyPricing()
	assert.Equal(t, 50.0, g.FinalPrice)
	assert.Equal(t, 50.0, g.UnitPrice())

	g.DiscountPercent = 0
	g.ApplyPricing()
	assert.Equal(t, 100.0, g.UnitPrice())

	legacy := &Game{Price: 100, FinalPrice: 0}
	assert.Equal(t, 100.0, legacy.UnitPrice())

	giveaway := &Game{Price: 100, DiscountPercent: 100}
	giveaway.ApplyPricing()
	assert.Equal(t, 0.0, giveaway.UnitPrice())
}

func TestParseGameSort(t *testing.T) {
	assert.Equal(t, SortTopSell, ParseGameSort("top-sell"))
	assert.Equal(t, SortPriceDesc, ParseGameSort("price-desc"))
	assert.Equal(t, SortNewest, ParseGameSort(""))
	assert.Equal(t, SortNewest, ParseGameSort("cheapest"))
}
