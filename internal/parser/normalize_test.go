package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseLocalizedDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"25/02/2025", time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC)},
		{"01-03-2025", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"01.03.2025", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-03-01", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{" 25/02/2025 ", time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLocalizedDate(tt.input)
			if err != nil {
				t.Fatalf("ParseLocalizedDate(%q) error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseLocalizedDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLocalizedDateInvalid(t *testing.T) {
	for _, input := range []string{"", "not a date", "2025/03/01", "31/13/2025"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseLocalizedDate(input)
			if err == nil {
				t.Fatalf("ParseLocalizedDate(%q) expected error", input)
			}
			var importErr *ImportError
			if !errors.As(err, &importErr) || importErr.Code != ErrDateFormat {
				t.Errorf("ParseLocalizedDate(%q) error = %v, want DATE_FORMAT", input, err)
			}
		})
	}
}

func TestParseLocalizedAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"-45,80", "-45.8"},
		{"1.234,56", "1234.56"},
		{"2.350,00", "2350"},
		{"1,234.56", "1234.56"},
		{"-89,50", "-89.5"},
		{"500.00", "500"},
		{"€ 12,00", "12"},
		{"-9.99", "-9.99"},
		{"£1.000,00", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLocalizedAmount(tt.input)
			if err != nil {
				t.Fatalf("ParseLocalizedAmount(%q) error: %v", tt.input, err)
			}
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("ParseLocalizedAmount(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestParseLocalizedAmountInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "12,34x"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseLocalizedAmount(input)
			if err == nil {
				t.Fatalf("ParseLocalizedAmount(%q) expected error", input)
			}
			var importErr *ImportError
			if !errors.As(err, &importErr) || importErr.Code != ErrAmountFormat {
				t.Errorf("ParseLocalizedAmount(%q) error = %v, want AMOUNT_FORMAT", input, err)
			}
		})
	}
}

// Amounts with up to two fractional digits round-trip through Italian
// formatting without drift.
func TestAmountRoundTrip(t *testing.T) {
	for _, s := range []string{"-89.50", "0.00", "2350.00", "-1234567.89", "0.05", "999.99", "-0.01"} {
		t.Run(s, func(t *testing.T) {
			want, _ := decimal.NewFromString(s)
			formatted := FormatItalianAmount(want)
			got, err := ParseLocalizedAmount(formatted)
			if err != nil {
				t.Fatalf("ParseLocalizedAmount(%q) error: %v", formatted, err)
			}
			if !got.Equal(want) {
				t.Errorf("round trip %s -> %q -> %s", want, formatted, got)
			}
		})
	}
}

func TestFormatItalianAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"-1234.5", "-1.234,50"},
		{"2350", "2.350,00"},
		{"0", "0,00"},
		{"-89.5", "-89,50"},
		{"1234567.89", "1.234.567,89"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			d, _ := decimal.NewFromString(tt.input)
			if got := FormatItalianAmount(d); got != tt.want {
				t.Errorf("FormatItalianAmount(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"plain utf-8", []byte("Caffè Milano"), "Caffè Milano"},
		{"utf-8 with BOM", append([]byte{0xEF, 0xBB, 0xBF}, []byte("Data;Importo")...), "Data;Importo"},
		{"latin-1 fallback", []byte{'C', 'a', 'f', 'f', 0xE9}, "Caffé"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeText(tt.input); got != tt.want {
				t.Errorf("DecodeText(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name string
		text string
		want rune
	}{
		{"semicolon", "Data;Descrizione;Importo\n01/01/2025;x;1", ';'},
		{"comma", "Date,Name,Amount\n01/01/2025,x,1", ','},
		{"tab", "Data\tImporto\n", '\t'},
		{"no delimiter falls back", "just-a-line\n", ';'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectDelimiter(tt.text, ';'); got != tt.want {
				t.Errorf("detectDelimiter() = %q, want %q", got, tt.want)
			}
		})
	}
}
