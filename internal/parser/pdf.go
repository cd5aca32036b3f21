package parser

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"
)

var pdfMagic = []byte("%PDF-")

const (
	// pdfCellGap is the horizontal gap (in PDF points) between text fragments
	// that marks a column boundary when reassembling table rows.
	pdfCellGap = 12.0
	// pdfWordGap is the smaller gap that still separates words within a cell.
	pdfWordGap = 1.5
)

// PDFParser parses bank statements exported as PDFs with extractable text
// tables. It recovers table rows from text fragment x-positions, finds a
// header row using the same Italian column synonyms as the bank CSV parser,
// and maps fields identically. Image-only scans are not supported.
type PDFParser struct{}

func (p *PDFParser) SourceType() SourceType { return SourcePDF }

// Detect checks the %PDF magic bytes.
func (p *PDFParser) Detect(filename string, content []byte) bool {
	return bytes.HasPrefix(content, pdfMagic)
}

func (p *PDFParser) ColumnMapping() map[string]string {
	return map[string]string{
		"Data":        "date",
		"Descrizione": "description",
		"Importo":     "amount",
		"Dare":        "debit",
		"Avere":       "credit",
	}
}

// Parse walks every page, reassembling rows from positioned text. Pages
// without a detectable table fail individually; a PDF whose structure cannot
// be read at all fails the whole parse with UNREADABLE_FILE.
func (p *PDFParser) Parse(filename string, content []byte) (result *ParseResult, err error) {
	result = &ParseResult{SourceType: SourcePDF}
	if len(bytes.TrimSpace(content)) == 0 {
		return result, nil
	}

	// The pdf library panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &ImportError{
				Code:     ErrUnreadableFile,
				Message:  fmt.Sprintf("panic while reading PDF: %v", r),
				Filename: filename,
			}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, &ImportError{Code: ErrUnreadableFile, Message: "cannot open PDF", Filename: filename, Cause: err}
	}

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			result.Errors = append(result.Errors, fmt.Sprintf("page %d: unreadable page", pageNum))
			continue
		}

		rows, rowErr := page.GetTextByRow()
		if rowErr != nil || len(rows) == 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("page %d: no extractable text", pageNum))
			continue
		}

		cells := make([][]string, 0, len(rows))
		for _, row := range rows {
			cells = append(cells, clusterRowCells(row.Content))
		}

		p.parsePage(pageNum, cells, result)
	}

	result.ParsedCount = len(result.Transactions)
	return result, nil
}

// parsePage locates the header row inside reconstructed cells and maps the
// data rows below it, reusing the bank CSV column synonyms.
func (p *PDFParser) parsePage(pageNum int, rows [][]string, result *ParseResult) {
	headerIdx := detectPDFHeaderRow(rows)
	if headerIdx < 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("page %d: no recognizable header row", pageNum))
		return
	}

	header := rows[headerIdx]
	dateIdx := findColumn(header, bankDateColumns)
	descIdx := findColumn(header, bankDescriptionColumns)
	amountIdx := findColumn(header, bankAmountColumns)
	debitIdx := findColumn(header, bankDebitColumns)
	creditIdx := findColumn(header, bankCreditColumns)

	if dateIdx < 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("page %d: no date column found", pageNum))
		return
	}

	for offset, row := range rows[headerIdx+1:] {
		result.RowCount++
		rowLabel := fmt.Sprintf("page %d, row %d", pageNum, offset+1)

		dateVal := cell(row, dateIdx)
		if dateVal == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: empty date", rowLabel))
			continue
		}
		date, err := ParseLocalizedDate(dateVal)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rowLabel, err))
			continue
		}

		originalDesc := cell(row, descIdx)

		var amount *decimal.Decimal
		if s := cell(row, amountIdx); s != "" {
			a, err := ParseLocalizedAmount(s)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rowLabel, err))
				continue
			}
			amount = &a
		}
		if amount == nil && (debitIdx >= 0 || creditIdx >= 0) {
			debit := decimal.Zero
			credit := decimal.Zero
			ok := true
			if s := cell(row, debitIdx); s != "" {
				if debit, err = ParseLocalizedAmount(s); err != nil {
					result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rowLabel, err))
					ok = false
				}
			}
			if ok {
				if s := cell(row, creditIdx); s != "" {
					if credit, err = ParseLocalizedAmount(s); err != nil {
						result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rowLabel, err))
						ok = false
					}
				}
			}
			if !ok {
				continue
			}
			a := credit.Sub(debit.Abs())
			amount = &a
		}
		if amount == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: no amount found", rowLabel))
			continue
		}

		txType := TypeIncome
		if amount.Sign() < 0 {
			txType = TypeExpense
		}

		result.Transactions = append(result.Transactions, RawTransaction{
			Date:                date,
			Amount:              *amount,
			Currency:            "EUR",
			Description:         collapseWhitespace(originalDesc),
			OriginalDescription: originalDesc,
			Type:                txType,
			Metadata:            map[string]string{"source_page": strconv.Itoa(pageNum)},
		})
	}
}

// clusterRowCells reassembles table cells from a row of positioned text
// fragments. Fragments separated by more than pdfCellGap start a new cell;
// smaller gaps above pdfWordGap become spaces within the cell.
func clusterRowCells(fragments []pdf.Text) []string {
	var cells []string
	var current strings.Builder
	prevEnd := 0.0

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			cells = append(cells, s)
		}
		current.Reset()
	}

	for i, frag := range fragments {
		if i > 0 {
			gap := frag.X - prevEnd
			if gap > pdfCellGap {
				flush()
			} else if gap > pdfWordGap {
				current.WriteByte(' ')
			}
		}
		current.WriteString(frag.S)
		prevEnd = frag.X + frag.W
	}
	flush()
	return cells
}

// detectPDFHeaderRow returns the index of the first row that looks like a
// statement table header, or -1.
func detectPDFHeaderRow(rows [][]string) int {
	for i, row := range rows {
		headers := headerSet(row)
		hasDate := containsAny(headers, bankDateColumns)
		hasDesc := containsAny(headers, bankDescriptionColumns)
		hasAmount := containsAny(headers, bankAmountColumns) ||
			containsAny(headers, bankDebitColumns) || containsAny(headers, bankCreditColumns)
		if hasDate && (hasDesc || hasAmount) {
			return i
		}
	}
	return -1
}
