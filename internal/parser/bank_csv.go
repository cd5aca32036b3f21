package parser

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Column name variants seen across Italian bank CSV exports (lowercase).
var (
	bankDateColumns = map[string]bool{
		"data":            true,
		"data operazione": true,
		"data contabile":  true,
		"data valuta":     true,
		"data movimento":  true,
	}
	bankDescriptionColumns = map[string]bool{
		"descrizione":            true,
		"causale":                true,
		"descrizione operazione": true,
		"dettagli":               true,
		"movimento":              true,
	}
	bankAmountColumns = map[string]bool{
		"importo":       true,
		"importo eur":   true,
		"importo (eur)": true,
		"ammontare":     true,
		"movimento":     true,
	}
	bankDebitColumns  = map[string]bool{"dare": true, "addebiti": true, "uscite": true, "addebito": true}
	bankCreditColumns = map[string]bool{"avere": true, "accrediti": true, "entrate": true, "accredito": true}

	bankValutaColumns = map[string]bool{"data valuta": true}
)

// BankCSVParser parses Italian bank CSV exports. Column names vary between
// banks, so resolution is dynamic over known synonym sets; the amount comes
// from a single signed Importo column or from separate Dare/Avere columns.
type BankCSVParser struct{}

func (p *BankCSVParser) SourceType() SourceType { return SourceBankCSV }

// Detect checks the header line for a known date column, a description
// column, and either a signed amount column or a debit/credit pair.
func (p *BankCSVParser) Detect(filename string, content []byte) bool {
	if len(bytes.TrimSpace(content)) == 0 {
		return false
	}

	text := DecodeText(content)
	delimiter := detectDelimiter(text, ';')
	table := readCSVTable(text, delimiter)
	if table.header == nil {
		return false
	}

	headers := headerSet(table.header)
	hasDate := containsAny(headers, bankDateColumns)
	hasDesc := containsAny(headers, bankDescriptionColumns)
	hasAmount := containsAny(headers, bankAmountColumns) ||
		(containsAny(headers, bankDebitColumns) && containsAny(headers, bankCreditColumns))

	return hasDate && hasDesc && hasAmount
}

// ColumnMapping returns a representative mapping; the actual resolution is
// dynamic over the synonym sets above.
func (p *BankCSVParser) ColumnMapping() map[string]string {
	return map[string]string{
		"Data Operazione": "date",
		"Descrizione":     "description",
		"Importo":         "amount",
		"Dare":            "debit",
		"Avere":           "credit",
	}
}

// Parse extracts transactions row by row. A malformed row is reported in
// Errors and skipped; the rest of the file still parses.
func (p *BankCSVParser) Parse(filename string, content []byte) (*ParseResult, error) {
	result := &ParseResult{SourceType: SourceBankCSV}
	if len(bytes.TrimSpace(content)) == 0 {
		return result, nil
	}

	text := DecodeText(content)
	delimiter := detectDelimiter(text, ';')
	table := readCSVTable(text, delimiter)
	result.Errors = append(result.Errors, table.rowErrors...)
	result.RowCount = len(table.rows) + len(table.rowErrors)

	dateIdx := findColumn(table.header, bankDateColumns)
	descIdx := findColumn(table.header, bankDescriptionColumns)
	amountIdx := findColumn(table.header, bankAmountColumns)
	debitIdx := findColumn(table.header, bankDebitColumns)
	creditIdx := findColumn(table.header, bankCreditColumns)
	valutaIdx := findColumn(table.header, bankValutaColumns)

	if dateIdx < 0 || descIdx < 0 {
		result.Errors = append(result.Errors, "missing required date or description column")
		return result, nil
	}

	for i, row := range table.rows {
		rowNum := i + 2 // header is row 1

		date, err := ParseLocalizedDate(cell(row, dateIdx))
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		var amount decimal.Decimal
		switch {
		case amountIdx >= 0:
			amount, err = ParseLocalizedAmount(cell(row, amountIdx))
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
				continue
			}
		case debitIdx >= 0 && creditIdx >= 0:
			debit := decimal.Zero
			credit := decimal.Zero
			if s := cell(row, debitIdx); s != "" {
				if debit, err = ParseLocalizedAmount(s); err != nil {
					result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
					continue
				}
			}
			if s := cell(row, creditIdx); s != "" {
				if credit, err = ParseLocalizedAmount(s); err != nil {
					result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
					continue
				}
			}
			// Debits are expenses regardless of how the bank signs them
			amount = credit.Sub(debit.Abs())
		default:
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: no amount column found", rowNum))
			continue
		}

		originalDesc := ""
		if descIdx < len(row) {
			originalDesc = row[descIdx]
		}

		txType := TypeIncome
		if amount.Sign() < 0 {
			txType = TypeExpense
		}

		metadata := map[string]string{}
		if valutaIdx >= 0 && valutaIdx != dateIdx {
			if v := cell(row, valutaIdx); v != "" {
				metadata["data_valuta"] = v
			}
		}

		result.Transactions = append(result.Transactions, RawTransaction{
			Date:                date,
			Amount:              amount,
			Currency:            "EUR",
			Description:         collapseWhitespace(originalDesc),
			OriginalDescription: originalDesc,
			Type:                txType,
			Metadata:            metadata,
		})
	}

	result.ParsedCount = len(result.Transactions)
	return result, nil
}
