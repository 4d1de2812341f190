package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/fuelwatch/internal/domain"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"dot separator", "1234.56", "1234.56"},
		{"comma separator", "1234,56", "1234.56"},
		{"space grouping", "12 345 678,90", "12345678.90"},
		{"nbsp grouping", "1\u00a0234,56", "1234.56"},
		{"narrow nbsp grouping", "1\u202f234.56", "1234.56"},
		{"surrounding whitespace", "  109999.50  ", "109999.50"},
		{"negative", "-2000,00", "-2000.00"},
		{"integer", "100000", "100000"},
		{"zero", "0", "0"},
		{"empty", "", "0"},
		{"garbage", "not-a-number", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tt.want)
			if err != nil {
				t.Fatalf("bad fixture %q: %v", tt.want, err)
			}
			if got := domain.ParseAmount(tt.input); !got.Equal(want) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestParseOptionalAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		present bool
		want    string
	}{
		{"value", "12,50", true, "12.50"},
		{"zero is present", "0", true, "0"},
		{"empty is absent", "", false, "0"},
		{"blank is absent", "   ", false, "0"},
		{"none marker is absent", "None", false, "0"},
		{"padded none marker is absent", "  None  ", false, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ParseOptionalAmount(tt.input)
			if got.Present != tt.present {
				t.Fatalf("ParseOptionalAmount(%q).Present = %v, want %v", tt.input, got.Present, tt.present)
			}
			want, _ := decimal.NewFromString(tt.want)
			if !got.Value.Equal(want) {
				t.Errorf("ParseOptionalAmount(%q).Value = %s, want %s", tt.input, got.Value, want)
			}
		})
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "0.00"},
		{"100", "100.00"},
		{"109999.5", "109 999.50"},
		{"110000", "110 000.00"},
		{"1234567.891", "1 234 567.89"},
		{"-2000", "-2 000.00"},
		{"999", "999.00"},
		{"1000", "1 000.00"},
	}

	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.input)
		if err != nil {
			t.Fatalf("bad fixture %q: %v", tt.input, err)
		}
		if got := domain.FormatMoney(d); got != tt.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
