// Package aggregate reduces categorized transactions to per-category totals.
// Category order comes from the category store, so reports follow the order
// users arranged their categories in, not an alphabetical or hardcoded one.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"sitapp/spend-report/internal/models"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// CategoryTotal is one category's share of the summary.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// Summary holds the aggregated result of one categorization run.
type Summary struct {
	// CategoryTotals follows the category store's order. Categories
	// without transactions appear with a zero total.
	CategoryTotals []CategoryTotal
	// GrandTotal is the sum over all stored categories.
	GrandTotal decimal.Decimal

	txns []models.CategorizedTransaction
}

// Summarize totals the transactions per stored category. Amounts
// categorized into a name absent from the store are dropped; the rule
// editor is supposed to prevent that, so it is logged rather than fatal.
func Summarize(txns []models.CategorizedTransaction, categories []models.Category) *Summary {
	totals := make(map[string]decimal.Decimal, len(categories))
	for _, c := range categories {
		totals[c.Name] = decimal.Zero
	}

	for _, t := range txns {
		current, ok := totals[t.Category]
		if !ok {
			log.WithFields(logrus.Fields{
				"category":    t.Category,
				"description": t.Description,
			}).Warn("Transaction categorized into unknown category, omitting from totals")
			continue
		}
		totals[t.Category] = current.Add(t.Amount)
	}

	s := &Summary{
		CategoryTotals: make([]CategoryTotal, 0, len(categories)),
		txns:           txns,
	}
	for _, c := range categories {
		total := totals[c.Name]
		s.CategoryTotals = append(s.CategoryTotals, CategoryTotal{Category: c.Name, Total: total})
		s.GrandTotal = s.GrandTotal.Add(total)
	}
	return s
}

// Percent returns the category's share of total spending as a percentage
// of absolute amounts. A zero grand total yields zero for every category.
func (s *Summary) Percent(category string) decimal.Decimal {
	grand := s.GrandTotal.Abs()
	if grand.IsZero() {
		return decimal.Zero
	}
	for _, ct := range s.CategoryTotals {
		if ct.Category == category {
			return ct.Total.Abs().Div(grand).Mul(decimal.NewFromInt(100))
		}
	}
	return decimal.Zero
}

// LargeTransactions returns the transactions whose amount magnitude exceeds
// the threshold, ordered by date.
func (s *Summary) LargeTransactions(threshold decimal.Decimal) []models.CategorizedTransaction {
	large := make([]models.CategorizedTransaction, 0)
	for _, t := range s.txns {
		if t.Amount.Abs().GreaterThan(threshold) {
			large = append(large, t)
		}
	}
	sort.SliceStable(large, func(i, j int) bool {
		return large[i].Date.Before(large[j].Date)
	})
	return large
}

// VendorTotals breaks one category down by vendor, largest spend first.
func (s *Summary) VendorTotals(category string) []CategoryTotal {
	byVendor := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	for _, t := range s.txns {
		if t.Category != category {
			continue
		}
		if _, seen := byVendor[t.Vendor]; !seen {
			order = append(order, t.Vendor)
		}
		byVendor[t.Vendor] = byVendor[t.Vendor].Add(t.Amount)
	}

	totals := make([]CategoryTotal, 0, len(order))
	for _, v := range order {
		totals = append(totals, CategoryTotal{Category: v, Total: byVendor[v]})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.Abs().GreaterThan(totals[j].Total.Abs())
	})
	return totals
}
