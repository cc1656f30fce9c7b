package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCentsFromAmount(t *testing.T) {
	tests := []struct {
		amount string
		want   int64
	}{
		{"0", 0},
		{"100", 10000},
		{"0.1", 10},
		{"19.99", 1999},
		{"99999999.99", 9999999999},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got := CentsFromAmount(decimal.RequireFromString(tt.amount))
			if got != tt.want {
				t.Errorf("CentsFromAmount(%s) = %d, want %d", tt.amount, got, tt.want)
			}
		})
	}
}

func TestAmountFromCents(t *testing.T) {
	if got := FormatAmount(AmountFromCents(40000)); got != "400.00" {
		t.Errorf("expected 400.00, got %s", got)
	}
	if got := FormatAmount(AmountFromCents(5)); got != "0.05" {
		t.Errorf("expected 0.05, got %s", got)
	}
}

func TestCentsSumIsExact(t *testing.T) {
	// 0.1 + 0.2 drifts in binary floating point but never in cents.
	sum := AmountFromCents(CentsFromAmount(decimal.RequireFromString("0.1")) + CentsFromAmount(decimal.RequireFromString("0.2")))
	if !sum.Equal(decimal.RequireFromString("0.3")) {
		t.Errorf("expected 0.3, got %s", sum)
	}
}

func TestHasCentPrecision(t *testing.T) {
	tests := []struct {
		amount string
		want   bool
	}{
		{"10", true},
		{"10.5", true},
		{"10.55", true},
		{"10.550", true},
		{"10.555", false},
		{"0.001", false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			if got := HasCentPrecision(decimal.RequireFromString(tt.amount)); got != tt.want {
				t.Errorf("HasCentPrecision(%s) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}
