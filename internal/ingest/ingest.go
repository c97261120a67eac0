// Package ingest parses heterogeneous bank-statement exports into uniform
// transactions. Exports differ in delimiter (comma or pipe), header presence,
// column layout, and date format, so the parser detects all of these per file
// instead of assuming a single institution's layout.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

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

// incomeKeywords mark rows that are income or transfers rather than
// spending. Matched case-insensitively as substrings of the description.
var incomeKeywords = []string{
	"PAYROLL",
	"ZELLE PAYMENT FROM",
	"TRANSFER",
	"OVERDRAFT PROTECTION",
	"DEPOSIT",
	"CREDIT CARD BILL PAYMENT",
	"CITI AUTOPAY",
	"AUTOPAY",
	"ONLINE BANKING PAYMENT",
	"ONLINE PAYMENT",
	"BANK OF AMERICA CREDIT CARD BILL PAYMENT",
	"BA ELECTRONIC PAYMENT",
	"FID BKG SVC",
	"BEGINNING BALANCE",
	"FORSYTH COUNTY PARKS",
}

// columns holds the resolved column index for each logical field. -1 means
// the field is absent.
type columns struct {
	date    int
	desc    int
	amount  int
	debit   int
	credit  int
	payment int
	notes   int
}

// IngestFile reads and parses a single statement file.
func IngestFile(path string) ([]models.Transaction, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from user arguments
	if err != nil {
		return nil, fmt.Errorf("opening statement file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close statement file")
		}
	}()
	return Ingest(f, path)
}

// Ingest parses one statement export into transactions. It keeps no state
// across calls, so it can be invoked per file from concurrent workers. Rows
// that cannot be parsed are skipped with a warning; a file that yields no
// transactions is not an error.
func Ingest(r io.Reader, sourceFile string) ([]models.Transaction, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}

	lines := splitLines(string(raw))
	if len(lines) == 0 {
		return []models.Transaction{}, nil
	}

	pipe := usesPipes(lines)
	rows := splitRows(lines, pipe)
	if len(rows) == 0 {
		return []models.Transaction{}, nil
	}

	headerIdx := findHeaderRow(rows)
	cols := mapColumns(rows[headerIdx])

	log.WithFields(logrus.Fields{
		"file":      sourceFile,
		"pipe":      pipe,
		"headerRow": headerIdx,
	}).Debug("Detected statement layout")

	txns := make([]models.Transaction, 0, len(rows))
	for i := headerIdx + 1; i < len(rows); i++ {
		txn, ok := parseRow(rows[i], cols, sourceFile)
		if !ok {
			continue
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// FilterMonth keeps only transactions dated within the given month.
func FilterMonth(txns []models.Transaction, month time.Month, year int) []models.Transaction {
	filtered := make([]models.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.Date.Month() == month && t.Date.Year() == year {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	var lines []string
	for _, l := range strings.Split(content, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// usesPipes reports whether the file is pipe-delimited. Pipes win when they
// outnumber commas over the first three lines and appear at least once.
func usesPipes(lines []string) bool {
	sample := lines
	if len(sample) > 3 {
		sample = sample[:3]
	}
	pipes, commas := 0, 0
	for _, l := range sample {
		pipes += strings.Count(l, "|")
		commas += strings.Count(l, ",")
	}
	return pipes > commas && pipes >= 1
}

func splitRows(lines []string, pipe bool) [][]string {
	if pipe {
		rows := make([][]string, 0, len(lines))
		for _, l := range lines {
			fields := strings.Split(l, "|")
			for i := range fields {
				fields[i] = strings.TrimSpace(fields[i])
			}
			rows = append(rows, fields)
		}
		return rows
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.WithError(err).Warn("Skipping unparseable statement row")
			continue
		}
		rows = append(rows, record)
	}
	return rows
}

// findHeaderRow scans the first ten rows for one naming a date column, an
// amount column, and a description column together. Row 0 is assumed when
// nothing matches.
func findHeaderRow(rows [][]string) int {
	limit := len(rows)
	if limit > 10 {
		limit = 10
	}
	for i := 0; i < limit; i++ {
		hasDate, hasAmount, hasDesc := false, false, false
		for _, field := range rows[i] {
			f := strings.ToLower(field)
			if strings.Contains(f, "date") {
				hasDate = true
			}
			if strings.Contains(f, "amount") || strings.Contains(f, "debit") ||
				strings.Contains(f, "credit") || strings.Contains(f, "total") {
				hasAmount = true
			}
			if strings.Contains(f, "payee") || strings.Contains(f, "description") ||
				strings.Contains(f, "merchant") || strings.Contains(f, "vendor") {
				hasDesc = true
			}
		}
		if hasDate && hasAmount && hasDesc {
			return i
		}
	}
	return 0
}

// mapColumns resolves logical fields from header tokens. Fields the header
// does not name fall back to the positional layout used by headerless
// exports: date, notes, description, payment method, amount.
func mapColumns(header []string) columns {
	cols := columns{date: -1, desc: -1, amount: -1, debit: -1, credit: -1, payment: -1, notes: -1}

	for i, field := range header {
		f := strings.ToLower(field)
		switch {
		case strings.Contains(f, "date") && cols.date == -1:
			cols.date = i
		case (strings.Contains(f, "payee") || strings.Contains(f, "description") ||
			strings.Contains(f, "merchant") || strings.Contains(f, "vendor")) && cols.desc == -1:
			cols.desc = i
		case strings.Contains(f, "debit") && cols.debit == -1:
			cols.debit = i
		case strings.Contains(f, "credit") && cols.credit == -1:
			cols.credit = i
		case (strings.Contains(f, "amount") || strings.Contains(f, "total")) && cols.amount == -1:
			cols.amount = i
		case strings.Contains(f, "method") && cols.payment == -1:
			cols.payment = i
		case (strings.Contains(f, "note") || strings.Contains(f, "memo")) && cols.notes == -1:
			cols.notes = i
		}
	}

	if cols.date == -1 {
		cols.date = 0
	}
	if cols.notes == -1 {
		cols.notes = 1
	}
	if cols.desc == -1 {
		cols.desc = 2
	}
	if cols.payment == -1 {
		cols.payment = 3
	}
	if cols.amount == -1 && cols.debit == -1 && cols.credit == -1 {
		cols.amount = 4
	}
	return cols
}

func parseRow(row []string, cols columns, sourceFile string) (models.Transaction, bool) {
	desc := field(row, cols.desc)
	if desc == "" {
		log.WithField("file", sourceFile).Warn("Skipping row with empty description")
		return models.Transaction{}, false
	}

	date, ok := parseDate(field(row, cols.date))
	if !ok {
		log.WithFields(logrus.Fields{"file": sourceFile, "description": desc}).
			Warn("Skipping row with unparseable date")
		return models.Transaction{}, false
	}

	amount, ok := rowAmount(row, cols)
	if !ok {
		log.WithFields(logrus.Fields{"file": sourceFile, "description": desc}).
			Warn("Skipping row with unparseable amount")
		return models.Transaction{}, false
	}

	if isIncomeOrTransfer(desc) {
		log.WithField("description", desc).Debug("Excluding income/transfer row")
		return models.Transaction{}, false
	}
	if amount.IsZero() {
		return models.Transaction{}, false
	}

	return models.Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		SourceFile:  sourceFile,
	}, true
}

// rowAmount resolves the signed amount. Separate debit/credit columns map to
// negative/positive; a single amount column is taken as written.
func rowAmount(row []string, cols columns) (decimal.Decimal, bool) {
	if cols.debit != -1 || cols.credit != -1 {
		if d := field(row, cols.debit); d != "" {
			amt, ok := parseAmount(d)
			return amt.Neg(), ok
		}
		if c := field(row, cols.credit); c != "" {
			return parseAmount(c)
		}
		return decimal.Zero, false
	}
	return parseAmount(field(row, cols.amount))
}

var dateLayouts = []string{"1/2/2006", "2006-1-2", "1/2/06"}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		// Two-digit years are always this century's.
		if layout == "1/2/06" && t.Year() < 2000 {
			t = t.AddDate(100, 0, 0)
		}
		return t, true
	}
	return time.Time{}, false
}

func parseAmount(s string) (decimal.Decimal, bool) {
	cleaned := strings.NewReplacer("$", "", ",", "", "\"", "", " ", "").Replace(s)
	if cleaned == "" {
		return decimal.Zero, false
	}
	amt, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return amt, true
}

func isIncomeOrTransfer(description string) bool {
	upper := strings.ToUpper(description)
	for _, kw := range incomeKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
