package finance

import (
	"sort"
	"time"
)

// Stats is the financial summary served to the admin dashboard.
type Stats struct {
	TotalRevenue      float64            `json:"totalRevenue"`
	TotalExpenses     float64            `json:"totalExpenses"`
	NetBalance        float64            `json:"netBalance"`
	TransactionCount  int                `json:"transactionCount"`
	CategoryBreakdown map[string]float64 `json:"categoryBreakdown"`
}

// ComputeStats aggregates a transaction list, optionally restricted to an
// inclusive [start, end] window on the transaction date. The category
// breakdown sums expenses only; income never contributes to it.
func ComputeStats(txs []Transaction, start, end *time.Time) Stats {
	stats := Stats{CategoryBreakdown: make(map[string]float64)}
	for _, tx := range txs {
		if start != nil && tx.Date.Before(*start) {
			continue
		}
		if end != nil && tx.Date.After(*end) {
			continue
		}
		stats.TransactionCount++
		switch tx.Type {
		case TypeIncome:
			stats.TotalRevenue += tx.Amount
		case TypeExpense:
			stats.TotalExpenses += tx.Amount
			stats.CategoryBreakdown[tx.Category] += tx.Amount
		}
	}
	stats.NetBalance = stats.TotalRevenue - stats.TotalExpenses
	return stats
}

// CategoryTotal is one entry of the sorted breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// TopCategories sorts the breakdown by amount descending and keeps the first
// n entries; n <= 0 keeps everything.
func TopCategories(breakdown map[string]float64, n int) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(breakdown))
	for cat, amt := range breakdown {
		out = append(out, CategoryTotal{Category: cat, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
