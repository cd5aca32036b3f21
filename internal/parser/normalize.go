package parser

import (
	"bytes"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
)

// italianDateLayouts in priority order: Italian day-first formats, then ISO.
// There is no guessing between dd/mm and mm/dd — Italian sources are assumed
// day-first.
var italianDateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// currencySymbolRe matches currency symbols and whitespace inside amounts.
var currencySymbolRe = regexp.MustCompile(`[€$£\s]`)

// DecodeText decodes file bytes trying UTF-8 first (BOM tolerated), falling
// back to Latin-1. Banking exports are inconsistently encoded, so this is
// best-effort and never fails.
func DecodeText(content []byte) string {
	content = bytes.TrimPrefix(content, utf8BOM)
	if utf8.Valid(content) {
		return string(content)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(decoded)
}

// ParseLocalizedDate parses Italian date formats (dd/mm/yyyy, dd-mm-yyyy,
// dd.mm.yyyy) and ISO yyyy-mm-dd, normalized to a UTC calendar day.
func ParseLocalizedDate(value string) (time.Time, error) {
	return parseDateLayouts(value, italianDateLayouts)
}

func parseDateLayouts(value string, layouts []string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, newDateFormatError(value)
}

// ParseLocalizedAmount parses a decimal amount in Italian or plain notation.
// Currency symbols and spaces are stripped. When both separators appear the
// rightmost one is the decimal separator, so "1.234,56" and "1,234.56" both
// yield 1234.56. A lone comma is a decimal comma. The sign is preserved and
// arithmetic is exact.
func ParseLocalizedAmount(value string) (decimal.Decimal, error) {
	raw := value
	value = currencySymbolRe.ReplaceAllString(strings.TrimSpace(value), "")
	if value == "" {
		return decimal.Zero, newAmountFormatError(raw)
	}

	comma := strings.LastIndex(value, ",")
	dot := strings.LastIndex(value, ".")
	switch {
	case comma >= 0 && dot >= 0:
		if comma > dot {
			// Italian: dots are thousands separators, comma is decimal
			value = strings.ReplaceAll(value, ".", "")
			value = strings.ReplaceAll(value, ",", ".")
		} else {
			value = strings.ReplaceAll(value, ",", "")
		}
	case comma >= 0:
		value = strings.ReplaceAll(value, ",", ".")
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, newAmountFormatError(raw)
	}
	return d, nil
}

// FormatItalianAmount renders a decimal in Italian notation with two
// fractional digits: -1234.5 becomes "-1.234,50".
func FormatItalianAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

// collapseWhitespace normalizes runs of whitespace to single spaces and trims.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
