// Package report renders aggregation results: the console summary, the CSV
// exports, and the plain-text snapshot block handed to downstream tooling.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"sitapp/spend-report/internal/aggregate"
	"sitapp/spend-report/internal/models"
)

type summaryRow struct {
	Category string `csv:"Category"`
	Total    string `csv:"Total"`
	Percent  string `csv:"Percent"`
}

// WriteSummaryCSV writes one row per category with its total and share of
// spending, followed by a grand-total row.
func WriteSummaryCSV(w io.Writer, s *aggregate.Summary) error {
	rows := make([]summaryRow, 0, len(s.CategoryTotals)+1)
	for _, ct := range s.CategoryTotals {
		rows = append(rows, summaryRow{
			Category: ct.Category,
			Total:    ct.Total.StringFixed(2),
			Percent:  s.Percent(ct.Category).StringFixed(2) + "%",
		})
	}
	rows = append(rows, summaryRow{
		Category: "Total",
		Total:    s.GrandTotal.StringFixed(2),
		Percent:  "100.00%",
	})
	return gocsv.Marshal(&rows, w)
}

type vendorRow struct {
	Category string `csv:"Category"`
	Vendor   string `csv:"Vendor"`
	Total    string `csv:"Total"`
}

// WriteVendorBreakdownCSV writes each category's per-vendor totals as an
// indented block: a category line, one line per vendor, a category total,
// and a blank separator. Categories without transactions are skipped.
func WriteVendorBreakdownCSV(w io.Writer, s *aggregate.Summary) error {
	var rows []vendorRow
	for _, ct := range s.CategoryTotals {
		vendors := s.VendorTotals(ct.Category)
		if len(vendors) == 0 {
			continue
		}
		rows = append(rows, vendorRow{Category: ct.Category})
		for _, v := range vendors {
			rows = append(rows, vendorRow{Vendor: v.Category, Total: v.Total.StringFixed(2)})
		}
		rows = append(rows, vendorRow{Vendor: "Category Total", Total: ct.Total.StringFixed(2)})
		rows = append(rows, vendorRow{})
	}
	return gocsv.Marshal(&rows, w)
}

type largeTxnRow struct {
	Date     string `csv:"Date"`
	Vendor   string `csv:"Vendor"`
	Category string `csv:"Category"`
	Amount   string `csv:"Amount"`
}

// WriteLargeTransactionsCSV writes the large-transaction report, one row per
// transaction in date order.
func WriteLargeTransactionsCSV(w io.Writer, txns []models.CategorizedTransaction) error {
	rows := make([]largeTxnRow, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, largeTxnRow{
			Date:     t.Date.Format("01/02/2006"),
			Vendor:   t.Vendor,
			Category: t.Category,
			Amount:   t.Amount.StringFixed(2),
		})
	}
	return gocsv.Marshal(&rows, w)
}

const rule70 = "----------------------------------------------------------------------"
const bar70 = "======================================================================"

// RenderText prints the monthly console summary.
func RenderText(w io.Writer, s *aggregate.Summary, month time.Month, year int, threshold decimal.Decimal) {
	fmt.Fprintln(w, bar70)
	fmt.Fprintf(w, "SPENDING SUMMARY FOR %02d/%d\n", int(month), year)
	fmt.Fprintln(w, bar70)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Category Breakdown:")
	fmt.Fprintln(w, rule70)
	for _, ct := range s.CategoryTotals {
		fmt.Fprintf(w, "  %-40s $%10s (%5s%%)\n",
			ct.Category, ct.Total.Abs().StringFixed(2), s.Percent(ct.Category).StringFixed(1))
	}
	fmt.Fprintln(w, rule70)
	fmt.Fprintf(w, "  %-40s $%10s (100.0%%)\n", "TOTAL", s.GrandTotal.Abs().StringFixed(2))
	fmt.Fprintln(w, bar70)
	fmt.Fprintln(w)

	large := s.LargeTransactions(threshold)
	if len(large) == 0 {
		fmt.Fprintf(w, "No transactions over $%s\n", threshold.String())
		return
	}
	fmt.Fprintf(w, "Large Transactions (> $%s): %d\n", threshold.String(), len(large))
	fmt.Fprintln(w, rule70)
	shown := large
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for _, t := range shown {
		fmt.Fprintf(w, "  %s | %-40s $%10s\n",
			t.Date.Format("01/02/2006"), t.Vendor, t.Amount.Abs().StringFixed(2))
	}
	if len(large) > 10 {
		fmt.Fprintf(w, "  ... and %d more\n", len(large)-10)
	}
}

// SnapshotContext renders the active rules and categories as a plain-text
// block. Downstream explanation tooling feeds this to a language model so
// generated answers stay grounded in the policy actually in effect.
func SnapshotContext(rules []models.Rule, categories []models.Category) string {
	sorted := make([]models.Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority > sorted[j].Priority
		}
		return sorted[i].RuleID < sorted[j].RuleID
	})

	var b strings.Builder
	b.WriteString("CATEGORIES:\n")
	for _, c := range categories {
		b.WriteString("- " + c.Name)
		if c.Parent != "" {
			b.WriteString(" (parent: " + c.Parent + ")")
		}
		if c.Description != "" {
			b.WriteString(": " + c.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nRULES (highest priority first):\n")
	for _, r := range sorted {
		fmt.Fprintf(&b, "- [%s] priority %d: vendor contains %q -> %s", r.RuleID, r.Priority, r.VendorPattern, r.Category)
		if r.OverrideRuleID != "" {
			fmt.Fprintf(&b, " (overrides %s)", r.OverrideRuleID)
		}
		if r.Explanation != "" {
			b.WriteString(": " + r.Explanation)
		}
		b.WriteString("\n")
	}
	return b.String()
}
