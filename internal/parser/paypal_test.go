package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

const paypalSample = `Date,Name,Type,Status,Currency,Gross,Fee,Net
01/15/2025,Spotify AB,Payment,Completed,EUR,-9.99,0.00,-9.99
02/01/2025,Cliente Srl,Payment,Completed,EUR,100.00,-3.40,96.60
02/10/2025,Bank Account,Withdrawal,Completed,EUR,-96.60,0.00,-96.60
`

func TestPayPalDetect(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"english export", paypalSample, true},
		{"italian export", "Data,Nome,Tipo,Stato,Valuta,Lordo,Tariffa,Netto\n15/01/2025,Spotify,Pagamento,Completata,EUR,-9.99,0.00,-9.99\n", true},
		{"satispay export", satispaySample, false},
		{"bank export", bankSample, false},
		{"empty", "", false},
	}

	p := &PayPalParser{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Detect("paypal.csv", []byte(tt.content)); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPayPalParse(t *testing.T) {
	p := &PayPalParser{}
	result, err := p.Parse("paypal.csv", []byte(paypalSample))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if result.ParsedCount != 3 || len(result.Errors) != 0 {
		t.Fatalf("ParsedCount = %d, errors: %v", result.ParsedCount, result.Errors)
	}

	// mm/dd dates
	if want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC); !result.Transactions[0].Date.Equal(want) {
		t.Errorf("Date = %v, want %v", result.Transactions[0].Date, want)
	}

	// Net wins over Gross; both preserved in metadata
	sale := result.Transactions[1]
	if want := decimal.RequireFromString("96.60"); !sale.Amount.Equal(want) {
		t.Errorf("Amount = %s, want net 96.60", sale.Amount)
	}
	if sale.Metadata["gross"] != "100" {
		t.Errorf("gross metadata = %q, want 100", sale.Metadata["gross"])
	}
	if sale.Metadata["fee"] != "-3.4" {
		t.Errorf("fee metadata = %q, want -3.4", sale.Metadata["fee"])
	}
	if sale.Metadata["status"] != "Completed" {
		t.Errorf("status metadata = %q", sale.Metadata["status"])
	}

	if result.Transactions[0].Type != TypeExpense {
		t.Errorf("payment Type = %q, want expense", result.Transactions[0].Type)
	}
	if result.Transactions[2].Type != TypeTransfer {
		t.Errorf("withdrawal Type = %q, want transfer", result.Transactions[2].Type)
	}
}

func TestPayPalParseNoNetColumn(t *testing.T) {
	content := "Date,Name,Type,Status,Currency,Gross\n03/01/2025,Shop,Payment,Completed,USD,-25.00\n"
	p := &PayPalParser{}
	result, err := p.Parse("paypal.csv", []byte(content))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if result.ParsedCount != 1 {
		t.Fatalf("ParsedCount = %d, errors: %v", result.ParsedCount, result.Errors)
	}

	tx := result.Transactions[0]
	if want := decimal.RequireFromString("-25.00"); !tx.Amount.Equal(want) {
		t.Errorf("Amount = %s, want gross -25.00", tx.Amount)
	}
	if tx.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", tx.Currency)
	}
}

func TestPayPalParseItalianTypes(t *testing.T) {
	content := "Data,Nome,Tipo,Stato,Valuta,Lordo,Tariffa,Netto\n15/01/2025,Conto Bancario,Prelievo,Completata,EUR,-50.00,0.00,-50.00\n"
	p := &PayPalParser{}
	result, err := p.Parse("paypal.csv", []byte(content))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if result.Transactions[0].Type != TypeTransfer {
		t.Errorf("prelievo Type = %q, want transfer", result.Transactions[0].Type)
	}
}
