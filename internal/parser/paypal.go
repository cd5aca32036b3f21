package parser

import (
	"bytes"
	"fmt"
	"strings"
)

// Required header sets for PayPal activity exports (English and Italian).
var (
	paypalRequiredEN = map[string]bool{"date": true, "name": true, "type": true, "status": true, "currency": true, "gross": true}
	paypalRequiredIT = map[string]bool{"data": true, "nome": true, "tipo": true, "stato": true, "valuta": true, "lordo": true}
)

// paypalColumnAliases maps source column names to canonical keys.
var paypalColumnAliases = map[string]string{
	"date":     "date",
	"name":     "name",
	"type":     "type",
	"status":   "status",
	"currency": "currency",
	"gross":    "gross",
	"fee":      "fee",
	"net":      "net",
	"data":     "date",
	"nome":     "name",
	"tipo":     "type",
	"stato":    "status",
	"valuta":   "currency",
	"lordo":    "gross",
	"tariffa":  "fee",
	"netto":    "net",
}

// paypalTypeMap maps PayPal's Type column to a transaction type. Internal
// movements (transfers, withdrawals, conversions) are tagged transfer rather
// than income/expense.
var paypalTypeMap = map[string]TransactionType{
	"payment":             TypeExpense,
	"refund":              TypeIncome,
	"transfer":            TypeTransfer,
	"withdrawal":          TypeTransfer,
	"deposit":             TypeIncome,
	"currency conversion": TypeTransfer,
	"pagamento":           TypeExpense,
	"rimborso":            TypeIncome,
	"trasferimento":       TypeTransfer,
	"prelievo":            TypeTransfer,
	"deposito":            TypeIncome,
	"conversione valuta":  TypeTransfer,
}

// paypalDateLayouts: PayPal defaults to mm/dd/yyyy, so that is tried first,
// then ISO and Italian formats.
var paypalDateLayouts = []string{
	"01/02/2006",
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
}

// PayPalParser parses PayPal activity CSV exports (Date, Name, Type, Status,
// Currency, Gross, Fee, Net). The transaction amount is the Net value when
// present; Gross and Fee are preserved in metadata.
type PayPalParser struct{}

func (p *PayPalParser) SourceType() SourceType { return SourcePayPal }

// Detect requires the full PayPal column set, English or Italian.
func (p *PayPalParser) Detect(filename string, content []byte) bool {
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
	return containsAll(headers, paypalRequiredEN) || containsAll(headers, paypalRequiredIT)
}

func (p *PayPalParser) ColumnMapping() map[string]string {
	return map[string]string{
		"Date":     "date",
		"Name":     "description",
		"Type":     "type",
		"Currency": "currency",
		"Net":      "amount",
		"Gross":    "metadata.gross",
		"Fee":      "metadata.fee",
	}
}

func resolvePayPalColumns(header []string) map[string]int {
	indices := make(map[string]int)
	for i, h := range header {
		key, ok := paypalColumnAliases[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			continue
		}
		if _, seen := indices[key]; !seen {
			indices[key] = i
		}
	}
	return indices
}

// Parse extracts transactions from a PayPal export.
func (p *PayPalParser) Parse(filename string, content []byte) (*ParseResult, error) {
	result := &ParseResult{SourceType: SourcePayPal}
	if len(bytes.TrimSpace(content)) == 0 {
		return result, nil
	}

	text := DecodeText(content)
	delimiter := detectDelimiter(text, ',')
	table := readCSVTable(text, delimiter)
	result.Errors = append(result.Errors, table.rowErrors...)
	result.RowCount = len(table.rows) + len(table.rowErrors)

	cols := resolvePayPalColumns(table.header)

	for i, row := range table.rows {
		rowNum := i + 2

		dateIdx, ok := cols["date"]
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing date column", rowNum))
			continue
		}
		date, err := parseDateLayouts(cell(row, dateIdx), paypalDateLayouts)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		grossIdx, hasGross := cols["gross"]
		if !hasGross {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing gross/amount column", rowNum))
			continue
		}
		gross, err := ParseLocalizedAmount(cell(row, grossIdx))
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		// Net is the amount the account actually moved; fall back to Gross
		// when the export has no Net column or the cell is empty.
		amount := gross
		metadata := map[string]string{"gross": gross.String()}
		if netIdx, ok := cols["net"]; ok {
			if netStr := cell(row, netIdx); netStr != "" {
				net, err := ParseLocalizedAmount(netStr)
				if err != nil {
					result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
					continue
				}
				amount = net
			}
		}
		if feeIdx, ok := cols["fee"]; ok {
			if feeStr := cell(row, feeIdx); feeStr != "" {
				fee, err := ParseLocalizedAmount(feeStr)
				if err != nil {
					result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
					continue
				}
				metadata["fee"] = fee.String()
			}
		}

		currency := "EUR"
		if idx, ok := cols["currency"]; ok {
			if c := strings.ToUpper(cell(row, idx)); c != "" {
				currency = c
			}
		}

		originalDesc := ""
		if idx, ok := cols["name"]; ok {
			originalDesc = cell(row, idx)
		}

		rawType := ""
		if idx, ok := cols["type"]; ok {
			rawType = cell(row, idx)
		}
		txType, ok := paypalTypeMap[strings.ToLower(rawType)]
		if !ok {
			txType = TypeIncome
			if amount.Sign() < 0 {
				txType = TypeExpense
			}
		}

		if idx, ok := cols["status"]; ok {
			if v := cell(row, idx); v != "" {
				metadata["status"] = v
			}
		}
		if rawType != "" {
			metadata["paypal_type"] = rawType
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
