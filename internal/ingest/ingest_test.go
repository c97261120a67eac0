package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ingestString(t *testing.T, content string) []string {
	t.Helper()
	txns, err := Ingest(strings.NewReader(content), "test.csv")
	require.NoError(t, err)
	descs := make([]string, 0, len(txns))
	for _, txn := range txns {
		descs = append(descs, txn.Description)
	}
	return descs
}

func TestIngestCommaDelimitedWithHeader(t *testing.T) {
	content := "Date,Description,Amount\n" +
		"1/5/2024,KROGER #123,-45.67\n" +
		"1/6/2024,NETFLIX.COM,-15.99\n"

	txns, err := Ingest(strings.NewReader(content), "bank.csv")
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), txns[0].Date)
	assert.Equal(t, "KROGER #123", txns[0].Description)
	assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("-45.67")))
	assert.Equal(t, "bank.csv", txns[0].SourceFile)
}

func TestIngestPipeDelimitedNoHeader(t *testing.T) {
	// Headerless pipe export: banner line, then positional columns
	// date | notes | description | payment method | amount.
	content := "STATEMENT EXPORT 2024|||||\n" +
		"1/5/2024||KROGER FUEL #456|DEBIT|-32.10\n" +
		"1/7/2024||CHIPOTLE 0321|DEBIT|-12.45\n"

	txns, err := Ingest(strings.NewReader(content), "card.txt")
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, "KROGER FUEL #456", txns[0].Description)
	assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("-32.10")))
	assert.Equal(t, "CHIPOTLE 0321", txns[1].Description)
}

func TestIngestHeaderBelowPreamble(t *testing.T) {
	content := "Account ending in 1234\n" +
		"Export generated 2/1/2024\n" +
		"Date,Payee,Amount\n" +
		"1/5/2024,COSTCO WHSE #112,-120.00\n"

	descs := ingestString(t, content)
	assert.Equal(t, []string{"COSTCO WHSE #112"}, descs)
}

func TestIngestDebitCreditColumns(t *testing.T) {
	content := "Date,Description,Debit,Credit\n" +
		"1/5/2024,KROGER #123,45.67,\n" +
		"1/6/2024,RETURN CVS,,12.00\n"

	txns, err := Ingest(strings.NewReader(content), "bank.csv")
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("-45.67")), "debit must be negative")
	assert.True(t, txns[1].Amount.Equal(decimal.RequireFromString("12.00")), "credit must be positive")
}

func TestIngestAmountCleaning(t *testing.T) {
	content := "Date,Description,Amount\n" +
		`1/5/2024,WHOLE FOODS,"-$1,234.56"` + "\n"

	txns, err := Ingest(strings.NewReader(content), "bank.csv")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("-1234.56")))
}

func TestIngestDateFormats(t *testing.T) {
	content := "Date,Description,Amount\n" +
		"1/5/2024,FIRST,-1.00\n" +
		"1/5/24,SECOND,-1.00\n" +
		"2024-01-05,THIRD,-1.00\n"

	txns, err := Ingest(strings.NewReader(content), "bank.csv")
	require.NoError(t, err)
	require.Len(t, txns, 3)
	want := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	for _, txn := range txns {
		assert.Equal(t, want, txn.Date)
	}
}

func TestIngestSkipsMalformedRows(t *testing.T) {
	content := "Date,Description,Amount\n" +
		"not-a-date,KROGER,-5.00\n" +
		"1/5/2024,,-5.00\n" +
		"1/5/2024,KROGER,abc\n" +
		"1/5/2024,KROGER #123,-45.67\n"

	descs := ingestString(t, content)
	assert.Equal(t, []string{"KROGER #123"}, descs)
}

func TestIngestExcludesIncomeAndTransfers(t *testing.T) {
	content := "Date,Description,Amount\n" +
		"1/5/2024,ACME CORP PAYROLL DIRECT DEP,2500.00\n" +
		"1/6/2024,ONLINE TRANSFER TO SAVINGS,-200.00\n" +
		"1/7/2024,Zelle Payment From Alice,50.00\n" +
		"1/8/2024,BEGINNING BALANCE,1000.00\n" +
		"1/9/2024,KROGER #123,-45.67\n"

	descs := ingestString(t, content)
	assert.Equal(t, []string{"KROGER #123"}, descs)
}

func TestIngestExcludesZeroAmounts(t *testing.T) {
	content := "Date,Description,Amount\n" +
		"1/5/2024,PENDING HOLD,0.00\n" +
		"1/6/2024,KROGER #123,-45.67\n"

	descs := ingestString(t, content)
	assert.Equal(t, []string{"KROGER #123"}, descs)
}

func TestIngestEmptyFile(t *testing.T) {
	txns, err := Ingest(strings.NewReader(""), "empty.csv")
	require.NoError(t, err)
	assert.Empty(t, txns)

	txns, err = Ingest(strings.NewReader("\n\r\n  \n"), "blank.csv")
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestIngestCRLFLineEndings(t *testing.T) {
	content := "Date,Description,Amount\r\n1/5/2024,KROGER #123,-45.67\r\n"

	descs := ingestString(t, content)
	assert.Equal(t, []string{"KROGER #123"}, descs)
}

func TestUsesPipes(t *testing.T) {
	assert.True(t, usesPipes([]string{"a|b|c", "d|e|f"}))
	assert.False(t, usesPipes([]string{"a,b,c", "d,e,f"}))
	// Commas in descriptions must not flip a pipe file.
	assert.True(t, usesPipes([]string{"1/5/2024||SMITH, JONES LLC||-5.00|x|y"}))
	assert.False(t, usesPipes([]string{"plain text header", "a,b"}))
}

func TestFilterMonth(t *testing.T) {
	content := "Date,Description,Amount\n" +
		"1/31/2024,JANUARY,-1.00\n" +
		"2/1/2024,FEBRUARY,-1.00\n" +
		"2/29/2024,LEAP,-1.00\n" +
		"2/1/2023,LAST YEAR,-1.00\n"

	txns, err := Ingest(strings.NewReader(content), "bank.csv")
	require.NoError(t, err)
	require.Len(t, txns, 4)

	feb := FilterMonth(txns, time.February, 2024)
	require.Len(t, feb, 2)
	assert.Equal(t, "FEBRUARY", feb[0].Description)
	assert.Equal(t, "LEAP", feb[1].Description)
}
