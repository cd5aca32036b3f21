// Package parser turns heterogeneous personal-finance export files (bank CSV,
// Satispay CSV, PayPal CSV, tabular PDF statements) into normalized
// transactions. Each source format has its own parser behind a common
// interface; the Registry picks one by structural detection.
package parser

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceType identifies the originating export format.
type SourceType string

const (
	SourceBankCSV  SourceType = "bank_csv"
	SourceSatispay SourceType = "satispay"
	SourcePayPal   SourceType = "paypal"
	SourcePDF      SourceType = "pdf"
)

// TransactionType classifies the direction of a transaction.
type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

// RawTransaction is a normalized transaction extracted from a file.
// Amount is signed: positive for income, negative for expenses.
type RawTransaction struct {
	Date                time.Time
	Amount              decimal.Decimal
	Currency            string // ISO 4217, "EUR" when the source omits it
	Description         string // whitespace-normalized
	OriginalDescription string // untouched source text, kept for audit and pattern matching
	Type                TransactionType
	Metadata            map[string]string
}

// ParseResult is the outcome of parsing one file. Transactions preserve
// source row order. ParsedCount always equals len(Transactions); RowCount
// also counts rows that failed and ended up in Errors.
type ParseResult struct {
	Transactions []RawTransaction
	SourceType   SourceType
	RowCount     int
	ParsedCount  int
	Errors       []string
}

// Parser is the capability contract every source format implements.
type Parser interface {
	// SourceType returns the parser's identity tag.
	SourceType() SourceType

	// Detect reports whether this parser recognizes the file. It is a cheap
	// structural check (header columns, magic bytes) and never fails: any
	// ambiguity means false.
	Detect(filename string, content []byte) bool

	// Parse extracts all transactions. Malformed rows are reported in
	// ParseResult.Errors and never abort the file; the returned error is
	// reserved for file-level failures (unreadable PDF structure).
	Parse(filename string, content []byte) (*ParseResult, error)

	// ColumnMapping declares the source column to canonical field mapping
	// for introspection and testing.
	ColumnMapping() map[string]string
}
