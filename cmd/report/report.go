// Package report implements the monthly spending report command.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"sitapp/spend-report/cmd/root"
	"sitapp/spend-report/internal/aggregate"
	"sitapp/spend-report/internal/categorizer"
	"sitapp/spend-report/internal/ingest"
	"sitapp/spend-report/internal/models"
	"sitapp/spend-report/internal/report"
)

var (
	inputDir      string
	monthFlag     string
	thresholdFlag string
)

// Cmd represents the report command.
var Cmd = &cobra.Command{
	Use:   "report [files...]",
	Short: "Generate the monthly spending summary from statement exports",
	Long: `Ingests the given statement files (or every .csv/.txt file in --input),
categorizes each transaction, and writes the monthly summary: a console
breakdown plus summary, vendor-breakdown, and large-transaction CSVs.`,
	RunE: runReport,
}

func init() {
	Cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Directory of statement files to ingest")
	Cmd.Flags().StringVarP(&monthFlag, "month", "m", "", "Report month as MM/YYYY")
	Cmd.Flags().StringVarP(&thresholdFlag, "threshold", "t", "", "Large-transaction threshold (overrides configuration)")
	_ = Cmd.MarkFlagRequired("month")
}

// reportThreshold resolves the large-transaction threshold: the --threshold
// flag when given, the configured value otherwise.
func reportThreshold() (decimal.Decimal, error) {
	if thresholdFlag == "" {
		return root.Cfg.Threshold(), nil
	}
	threshold, err := decimal.NewFromString(thresholdFlag)
	if err != nil || threshold.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid threshold %q", thresholdFlag)
	}
	return threshold, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	month, year, err := parseMonth(monthFlag)
	if err != nil {
		return err
	}

	files, err := statementFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no statement files to ingest")
	}

	rules, err := root.RuleStore().Load()
	if err != nil {
		return err
	}
	categories, err := root.CategoryStore().Load()
	if err != nil {
		return err
	}
	norm, err := root.Normalizer()
	if err != nil {
		return err
	}
	cat := categorizer.New(rules, root.Cfg.Categorization.DefaultCategory)

	// Files are independent, so ingest them in parallel and keep the
	// per-file results in argument order.
	perFile := make([][]models.Transaction, len(files))
	var g errgroup.Group
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			txns, err := ingest.IngestFile(file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			perFile[i] = txns
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var categorized []models.CategorizedTransaction
	for _, txns := range perFile {
		for _, t := range ingest.FilterMonth(txns, month, year) {
			vendor := norm.Normalize(t.Description)
			categorized = append(categorized, models.CategorizedTransaction{
				Transaction: t,
				Vendor:      vendor,
				Category:    cat.Categorize(vendor),
			})
		}
	}
	root.Log.WithField("count", len(categorized)).Info("Categorized transactions")

	summary := aggregate.Summarize(categorized, categories)
	threshold, err := reportThreshold()
	if err != nil {
		return err
	}
	report.RenderText(cmd.OutOrStdout(), summary, month, year, threshold)

	return writeReports(summary, month, year, threshold)
}

func writeReports(summary *aggregate.Summary, month time.Month, year int, threshold decimal.Decimal) error {
	suffix := fmt.Sprintf("%02d_%d.csv", int(month), year)
	outputs := []struct {
		name  string
		write func(f *os.File) error
	}{
		{"Spending_Summary_" + suffix, func(f *os.File) error {
			return report.WriteSummaryCSV(f, summary)
		}},
		{"Vendor_Breakdown_" + suffix, func(f *os.File) error {
			return report.WriteVendorBreakdownCSV(f, summary)
		}},
		{"Large_Transactions_" + suffix, func(f *os.File) error {
			return report.WriteLargeTransactionsCSV(f, summary.LargeTransactions(threshold))
		}},
	}

	for _, out := range outputs {
		path := filepath.Join(root.Cfg.Report.OutputDirectory, out.name)
		f, err := os.Create(path) // #nosec G304 -- path comes from user configuration
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		if err := out.write(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", path, err)
		}
		root.Log.WithField("file", path).Info("Report written")
	}
	return nil
}

// statementFiles resolves the files to ingest: explicit arguments plus every
// .csv/.txt file in the --input directory.
func statementFiles(args []string) ([]string, error) {
	files := append([]string{}, args...)
	if inputDir == "" {
		return files, nil
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".csv" || ext == ".txt" {
			files = append(files, filepath.Join(inputDir, e.Name()))
		}
	}
	return files, nil
}

func parseMonth(s string) (time.Month, int, error) {
	t, err := time.Parse("01/2006", s)
	if err != nil {
		if t, err = time.Parse("1/2006", s); err != nil {
			return 0, 0, fmt.Errorf("invalid month %q, expected MM/YYYY", s)
		}
	}
	return t.Month(), t.Year(), nil
}
