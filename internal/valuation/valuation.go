// Package valuation converts raw reward balances into estimated monetary
// value and aggregates accepted rewards into summary totals. Everything here
// is pure arithmetic over already-validated inputs.
package valuation

import (
	"math"

	"github.com/perkflow/perkflow/internal/model"
)

// Estimate returns the estimated value of a balance in whole currency units.
// Cash-back balances are stored in cents, so their value is the balance
// itself scaled down; every other category is balance times the program's
// per-unit rate.
func Estimate(category model.Category, balance int64, valuePerUnit float64) int64 {
	if category == model.CategoryCashBack {
		return int64(math.Round(float64(balance) / 100))
	}
	return int64(math.Round(float64(balance) * valuePerUnit))
}

// CategoryTotal sums the accepted rewards within one category.
type CategoryTotal struct {
	Category       model.Category
	Rewards        int
	Balance        int64
	EstimatedValue int64
}

// Summary is the aggregate view of a scan's accepted rewards.
type Summary struct {
	ByCategory []CategoryTotal
	GrandTotal int64
}

// categoryOrder fixes the presentation order of aggregate rows.
var categoryOrder = []model.Category{
	model.CategoryMiles,
	model.CategoryHotelPoints,
	model.CategoryCreditCardPoints,
	model.CategoryTravelCredit,
	model.CategoryCashBack,
}

// Aggregate groups rewards by category, summing balances and estimated
// values. Categories with no rewards are omitted. The row order is fixed so
// output is stable regardless of input order.
func Aggregate(rewards []model.ExtractedReward) Summary {
	byCategory := make(map[model.Category]*CategoryTotal)
	var grand int64

	for _, r := range rewards {
		t, ok := byCategory[r.Category]
		if !ok {
			t = &CategoryTotal{Category: r.Category}
			byCategory[r.Category] = t
		}
		t.Rewards++
		t.Balance += r.Balance
		t.EstimatedValue += r.EstimatedValue
		grand += r.EstimatedValue
	}

	summary := Summary{GrandTotal: grand}
	for _, c := range categoryOrder {
		if t, ok := byCategory[c]; ok {
			summary.ByCategory = append(summary.ByCategory, *t)
		}
	}
	return summary
}
