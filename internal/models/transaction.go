// Package models provides the data structures shared by the ingestion,
// categorization and aggregation packages.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single spending row produced by statement ingestion.
// It is ephemeral: the engine never persists transactions, it categorizes
// and aggregates them within the same run.
type Transaction struct {
	Date        time.Time       // calendar date of the transaction
	Description string          // raw description as found in the statement
	Amount      decimal.Decimal // negative for spending, positive for refunds
	SourceFile  string          // statement file the row came from
}

// CategorizedTransaction pairs a transaction with its canonical vendor and
// the category resolved for it.
type CategorizedTransaction struct {
	Transaction
	Vendor   string
	Category string
}
