package parser

import (
	"bytes"
	"fmt"
	"strings"
)

// Required header sets for Satispay exports (English and Italian variants).
var (
	satispayRequiredEN = map[string]bool{"id": true, "date": true, "type": true, "amount": true, "currency": true, "name": true}
	satispayRequiredIT = map[string]bool{"id": true, "data": true, "tipo": true, "importo": true, "valuta": true, "nome": true}
)

// satispayColumnAliases maps source column names to canonical keys.
var satispayColumnAliases = map[string]string{
	"id":          "id",
	"date":        "date",
	"type":        "type",
	"amount":      "amount",
	"currency":    "currency",
	"name":        "name",
	"description": "description",
	"data":        "date",
	"tipo":        "type",
	"importo":     "amount",
	"valuta":      "currency",
	"nome":        "name",
	"descrizione": "description",
}

// satispayTypeMap maps the export's Tipo field to a transaction type.
// Satispay's sign convention differs from bank exports, so the Tipo field is
// authoritative; the amount sign is only a fallback for unknown values.
var satispayTypeMap = map[string]TransactionType{
	"payment":   TypeExpense,
	"refund":    TypeIncome,
	"top up":    TypeIncome,
	"cashback":  TypeIncome,
	"pagamento": TypeExpense,
	"rimborso":  TypeIncome,
	"ricarica":  TypeIncome,
}

// SatispayParser parses Satispay CSV exports (ID, Data, Tipo, Importo,
// Valuta, Nome, Descrizione — or their English equivalents).
type SatispayParser struct{}

func (p *SatispayParser) SourceType() SourceType { return SourceSatispay }

// Detect requires the full Satispay column set, English or Italian.
func (p *SatispayParser) Detect(filename string, content []byte) bool {
	if len(bytes.TrimSpace(content)) == 0 {
		return false
	}

	text := DecodeText(content)
	delimiter := detectDelimiter(text, ',')
	table := readCSVTable(text, delimiter)
	if table.header == nil {
		return false
	}

	headers := headerSet(table.header)
	return containsAll(headers, satispayRequiredEN) || containsAll(headers, satispayRequiredIT)
}

func (p *SatispayParser) ColumnMapping() map[string]string {
	return map[string]string{
		"ID":          "metadata.satispay_id",
		"Data":        "date",
		"Tipo":        "type",
		"Importo":     "amount",
		"Valuta":      "currency",
		"Nome":        "description",
		"Descrizione": "description (appended)",
	}
}

// resolveSatispayColumns maps canonical keys to column indices using the
// alias table. First matching column wins per key.
func resolveSatispayColumns(header []string) map[string]int {
	indices := make(map[string]int)
	for i, h := range header {
		key, ok := satispayColumnAliases[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			continue
		}
		if _, seen := indices[key]; !seen {
			indices[key] = i
		}
	}
	return indices
}

// Parse extracts transactions; Name and Descrizione are joined into the
// description, and the Satispay transaction ID is preserved in metadata.
func (p *SatispayParser) Parse(filename string, content []byte) (*ParseResult, error) {
	result := &ParseResult{SourceType: SourceSatispay}
	if len(bytes.TrimSpace(content)) == 0 {
		return result, nil
	}

	text := DecodeText(content)
	delimiter := detectDelimiter(text, ',')
	table := readCSVTable(text, delimiter)
	result.Errors = append(result.Errors, table.rowErrors...)
	result.RowCount = len(table.rows) + len(table.rowErrors)

	cols := resolveSatispayColumns(table.header)

	for i, row := range table.rows {
		rowNum := i + 2

		dateIdx, ok := cols["date"]
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing date column", rowNum))
			continue
		}
		date, err := parseDateLayouts(cell(row, dateIdx), satispayDateLayouts)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		amountIdx, ok := cols["amount"]
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing amount column", rowNum))
			continue
		}
		amount, err := ParseLocalizedAmount(cell(row, amountIdx))
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		currency := "EUR"
		if idx, ok := cols["currency"]; ok {
			if c := strings.ToUpper(cell(row, idx)); c != "" {
				currency = c
			}
		}

		var parts []string
		if idx, ok := cols["name"]; ok {
			if v := cell(row, idx); v != "" {
				parts = append(parts, v)
			}
		}
		if idx, ok := cols["description"]; ok && idx != cols["name"] {
			if v := cell(row, idx); v != "" {
				parts = append(parts, v)
			}
		}
		originalDesc := strings.Join(parts, " - ")

		rawType := ""
		if idx, ok := cols["type"]; ok {
			rawType = cell(row, idx)
		}
		txType, ok := satispayTypeMap[strings.ToLower(rawType)]
		if !ok {
			txType = TypeIncome
			if amount.Sign() < 0 {
				txType = TypeExpense
			}
		}

		metadata := map[string]string{}
		if idx, ok := cols["id"]; ok {
			metadata["satispay_id"] = cell(row, idx)
		}
		if rawType != "" {
			metadata["satispay_type"] = rawType
		}

		result.Transactions = append(result.Transactions, RawTransaction{
			Date:                date,
			Amount:              amount,
			Currency:            currency,
			Description:         collapseWhitespace(originalDesc),
			OriginalDescription: originalDesc,
			Type:                txType,
			Metadata:            metadata,
		})
	}

	result.ParsedCount = len(result.Transactions)
	return result, nil
}

// satispayDateLayouts: Satispay exports use ISO dates, but Italian day-first
// formats show up in older exports.
var satispayDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
}
