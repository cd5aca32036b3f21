package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

const satispaySample = `id,name,date,type,amount,currency,description
a1b2c3,Bar Roma,2025-03-01,payment,-3.50,EUR,Caffè
d4e5f6,Mario Rossi,2025-03-02,refund,12.00,EUR,
g7h8i9,Wallet,2025-03-05,top up,50.00,EUR,
`

func TestSatispayDetect(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"english export", satispaySample, true},
		{"italian export", "id,nome,data,tipo,importo,valuta,descrizione\nx,Bar,01/03/2025,pagamento,-3.50,EUR,\n", true},
		{"bank export", bankSample, false},
		{"partial columns", "id,name,date,amount\nx,Bar,2025-01-01,-1\n", false},
		{"empty", "", false},
	}

	p := &SatispayParser{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Detect("satispay.csv", []byte(tt.content)); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSatispayParse(t *testing.T) {
	p := &SatispayParser{}
	result, err := p.Parse("satispay.csv", []byte(satispaySample))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if result.SourceType != SourceSatispay {
		t.Errorf("SourceType = %q", result.SourceType)
	}
	if result.ParsedCount != 3 || len(result.Errors) != 0 {
		t.Fatalf("ParsedCount = %d, errors: %v", result.ParsedCount, result.Errors)
	}

	payment := result.Transactions[0]
	if want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC); !payment.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", payment.Date, want)
	}
	if want := decimal.RequireFromString("-3.50"); !payment.Amount.Equal(want) {
		t.Errorf("Amount = %s", payment.Amount)
	}
	// Name and Description join into one description
	if payment.Description != "Bar Roma - Caffè" {
		t.Errorf("Description = %q, want %q", payment.Description, "Bar Roma - Caffè")
	}
	if payment.Type != TypeExpense {
		t.Errorf("Type = %q, want expense", payment.Type)
	}
	if payment.Metadata["satispay_id"] != "a1b2c3" {
		t.Errorf("satispay_id = %q", payment.Metadata["satispay_id"])
	}
	if payment.Metadata["satispay_type"] != "payment" {
		t.Errorf("satispay_type = %q", payment.Metadata["satispay_type"])
	}

	// Tipo is authoritative over amount sign
	if result.Transactions[1].Type != TypeIncome {
		t.Errorf("refund Type = %q, want income", result.Transactions[1].Type)
	}
	if result.Transactions[2].Type != TypeIncome {
		t.Errorf("top up Type = %q, want income", result.Transactions[2].Type)
	}
	if result.Transactions[1].Description != "Mario Rossi" {
		t.Errorf("Description without Descrizione = %q, want name only", result.Transactions[1].Description)
	}
}

func TestSatispayParseItalianColumns(t *testing.T) {
	content := "id,nome,data,tipo,importo,valuta,descrizione\nz9,Pizzeria Da Luigi,15/03/2025,pagamento,-18.00,EUR,Cena\n"
	p := &SatispayParser{}
	result, err := p.Parse("satispay.csv", []byte(content))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if result.ParsedCount != 1 {
		t.Fatalf("ParsedCount = %d, errors: %v", result.ParsedCount, result.Errors)
	}

	tx := result.Transactions[0]
	if want := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC); !tx.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", tx.Date, want)
	}
	if tx.Type != TypeExpense {
		t.Errorf("Type = %q, want expense", tx.Type)
	}
	if tx.Description != "Pizzeria Da Luigi - Cena" {
		t.Errorf("Description = %q", tx.Description)
	}
}

func TestSatispayParseUnknownType(t *testing.T) {
	content := "id,name,date,type,amount,currency\nx,Qualcuno,2025-03-01,mystery,-5.00,EUR\n"
	p := &SatispayParser{}
	result, err := p.Parse("satispay.csv", []byte(content))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	// Unknown Tipo falls back to the amount sign
	if result.Transactions[0].Type != TypeExpense {
		t.Errorf("Type = %q, want expense from negative amount", result.Transactions[0].Type)
	}
}
