package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name         string
		line         string
		wantOK       bool
		wantDate     string
		wantCard     string
		wantMerchant string
		wantAmount   string
	}{
		{
			name:         "well-formed line",
			line:         "2024-01-01,1234567890123456,GAS123,50.00",
			wantOK:       true,
			wantDate:     "2024-01-01",
			wantCard:     "1234567890123456",
			wantMerchant: "GAS123",
			wantAmount:   "50.00",
		},
		{
			name:         "integer amount",
			line:         "2024-01-01,1234567890123456,GAS123,10",
			wantOK:       true,
			wantDate:     "2024-01-01",
			wantCard:     "1234567890123456",
			wantMerchant: "GAS123",
			wantAmount:   "10",
		},
		{
			name:         "zero amount",
			line:         "2024-01-01,1234567890123456,GAS123,0.00",
			wantOK:       true,
			wantDate:     "2024-01-01",
			wantCard:     "1234567890123456",
			wantMerchant: "GAS123",
			wantAmount:   "0",
		},
		{
			name:         "amount with surrounding spaces",
			line:         "2024-01-01,1234567890123456,GAS123, 50.00 ",
			wantOK:       true,
			wantDate:     "2024-01-01",
			wantCard:     "1234567890123456",
			wantMerchant: "GAS123",
			wantAmount:   "50.00",
		},
		{
			name:         "extra fields are ignored",
			line:         "2024-01-01,1234567890123456,GAS123,50.00,memo,extra",
			wantOK:       true,
			wantDate:     "2024-01-01",
			wantCard:     "1234567890123456",
			wantMerchant: "GAS123",
			wantAmount:   "50.00",
		},
		{
			name:         "date is not validated",
			line:         "not-a-date,1234567890123456,GAS123,50.00",
			wantOK:       true,
			wantDate:     "not-a-date",
			wantCard:     "1234567890123456",
			wantMerchant: "GAS123",
			wantAmount:   "50.00",
		},
		{
			name:         "empty fields are structurally fine",
			line:         ",,GAS123,1.00",
			wantOK:       true,
			wantDate:     "",
			wantCard:     "",
			wantMerchant: "GAS123",
			wantAmount:   "1.00",
		},
		{
			name:   "missing amount field",
			line:   "2024-01-01,1234567890123456,GAS123",
			wantOK: false,
		},
		{
			name:   "too few fields",
			line:   "2024-01-01,1234567890123456",
			wantOK: false,
		},
		{
			name:   "empty line",
			line:   "",
			wantOK: false,
		},
		{
			name:   "empty amount",
			line:   "2024-01-01,1234567890123456,GAS123,",
			wantOK: false,
		},
		{
			name:   "amount not numeric",
			line:   "2024-01-01,1234567890123456,GAS123,fifty",
			wantOK: false,
		},
		{
			name:   "amount negative",
			line:   "2024-01-01,1234567890123456,GAS123,-50.00",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ParseLine(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if !tt.wantOK {
				return
			}
			if got.Date != tt.wantDate {
				t.Errorf("Date = %q, want %q", got.Date, tt.wantDate)
			}
			if got.CardNumber != tt.wantCard {
				t.Errorf("CardNumber = %q, want %q", got.CardNumber, tt.wantCard)
			}
			if got.MerchantID != tt.wantMerchant {
				t.Errorf("MerchantID = %q, want %q", got.MerchantID, tt.wantMerchant)
			}
			want := decimal.RequireFromString(tt.wantAmount)
			if !got.Amount.Equal(want) {
				t.Errorf("Amount = %s, want %s", got.Amount, want)
			}
		})
	}
}
