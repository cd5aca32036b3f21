package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// csvDelimiters are the candidate delimiters tried during detection, in
// preference order for ties.
var csvDelimiters = []rune{';', ',', '\t', '|'}

// detectDelimiter samples the header line and picks the candidate delimiter
// with the highest occurrence count. fallback wins when the line contains no
// candidate at all.
func detectDelimiter(text string, fallback rune) rune {
	header, _, _ := strings.Cut(text, "\n")

	best := fallback
	bestCount := 0
	for _, d := range csvDelimiters {
		if n := strings.Count(header, string(d)); n > bestCount {
			best = d
			bestCount = n
		}
	}
	return best
}

// csvTable is a decoded CSV file: a trimmed header plus data rows. Rows that
// the CSV reader rejected outright are reported in rowErrors keyed by their
// 1-based file row number.
type csvTable struct {
	header    []string
	rows      [][]string
	rowErrors []string
}

// readCSVTable decodes text into a header and data rows. Rows may have
// ragged field counts; blank lines are skipped silently.
func readCSVTable(text string, delimiter rune) csvTable {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var table csvTable
	rowNum := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			if rowNum == 1 {
				// Header unrecoverable, give up on the file
				table.rowErrors = append(table.rowErrors, fmt.Sprintf("row 1: %v", err))
				break
			}
			table.rowErrors = append(table.rowErrors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		if rowNum == 1 {
			for i := range record {
				record[i] = strings.TrimSpace(record[i])
			}
			table.header = record
			continue
		}
		table.rows = append(table.rows, record)
	}
	return table
}

// headerSet lowercases and trims header cells into a membership set.
func headerSet(header []string) map[string]bool {
	set := make(map[string]bool, len(header))
	for _, h := range header {
		set[strings.ToLower(strings.TrimSpace(h))] = true
	}
	return set
}

// containsAny reports whether any candidate appears in the header set.
func containsAny(headers map[string]bool, candidates map[string]bool) bool {
	for c := range candidates {
		if headers[c] {
			return true
		}
	}
	return false
}

// containsAll reports whether every required column appears in the header set.
func containsAll(headers map[string]bool, required map[string]bool) bool {
	for c := range required {
		if !headers[c] {
			return false
		}
	}
	return true
}

// findColumn returns the index of the first header cell matching a candidate
// name, or -1.
func findColumn(header []string, candidates map[string]bool) int {
	for i, h := range header {
		if candidates[strings.ToLower(strings.TrimSpace(h))] {
			return i
		}
	}
	return -1
}

// cell returns the trimmed value at idx, or "" when the row is too short.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
