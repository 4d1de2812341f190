package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/fuelwatch/internal/domain"
)

func uahFilter() domain.CurrencyFilter {
	return domain.CurrencyFilter{
		GoodsAliases: []string{"грн", "uah"},
		NumericCode:  "980",
		AlphaCode:    "UAH",
	}
}

func TestFilterByCurrency(t *testing.T) {
	wallets := []*domain.Wallet{
		{ID: "w1", GoodsName: " Грн "},
		{ID: "w2", CurrencyCode: "uah"},
		{ID: "w3", CurrencyCode: "980"},
		{ID: "w4", CurrencyCode: "EUR", GoodsName: "євро"},
		{ID: "w5"},
	}

	got := domain.FilterByCurrency(wallets, uahFilter())

	if len(got) != 3 {
		t.Fatalf("expected 3 wallets, got %d", len(got))
	}
	for i, wantID := range []string{"w1", "w2", "w3"} {
		if got[i].ID != wantID {
			t.Errorf("wallet %d: expected %s, got %s", i, wantID, got[i].ID)
		}
	}
}

func TestPickWallet(t *testing.T) {
	one := &domain.Wallet{ID: "100"}
	two := &domain.Wallet{ID: "200"}

	tests := []struct {
		name       string
		candidates []*domain.Wallet
		explicitID string
		wantID     string
		wantErr    error
	}{
		{"single candidate no id", []*domain.Wallet{one}, "", "100", nil},
		{"no candidates", nil, "", "", domain.ErrNoWallets},
		{"two candidates no id", []*domain.Wallet{one, two}, "", "", domain.ErrAmbiguousWallet},
		{"explicit id decides", []*domain.Wallet{one, two}, "200", "200", nil},
		{"explicit id trimmed", []*domain.Wallet{one, two}, "  100  ", "100", nil},
		{"explicit id missing", []*domain.Wallet{one, two}, "300", "", domain.ErrWalletNotFound},
		{"explicit id duplicated", []*domain.Wallet{one, {ID: "100"}}, "100", "", domain.ErrAmbiguousWallet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := domain.PickWallet(tt.candidates, tt.explicitID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if w.ID != tt.wantID {
				t.Errorf("expected wallet %s, got %s", tt.wantID, w.ID)
			}
		})
	}
}

func TestPickWallet_ErrorListsCandidates(t *testing.T) {
	candidates := []*domain.Wallet{{ID: "100"}, {ID: "200"}}

	_, err := domain.PickWallet(candidates, "")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, id := range []string{"100", "200"} {
		if !strings.Contains(err.Error(), id) {
			t.Errorf("error %q does not mention candidate %s", err, id)
		}
	}

	_, err = domain.PickWallet(candidates, "300")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "100") || !strings.Contains(err.Error(), "200") {
		t.Errorf("error %q does not enumerate available ids", err)
	}
}

func TestWalletOpeningBalance(t *testing.T) {
	dec := func(s string) decimal.Decimal {
		d, err := decimal.NewFromString(s)
		if err != nil {
			t.Fatalf("bad fixture %q: %v", s, err)
		}
		return d
	}

	tests := []struct {
		name       string
		wallet     domain.Wallet
		want       string
		wantSource string
	}{
		{
			name: "direct available wins",
			wallet: domain.Wallet{
				Value:           dec("100000"),
				Available:       domain.Amount{Value: dec("95000.50"), Present: true},
				AvailableSource: "AvailableSum",
				Blocked:         dec("1000"),
			},
			want:       "95000.50",
			wantSource: "direct:AvailableSum",
		},
		{
			name: "value minus blocked",
			wallet: domain.Wallet{
				Value:         dec("100000"),
				Blocked:       dec("2500.25"),
				BlockedDetail: "Blocked=2500.25",
			},
			want:       "97499.75",
			wantSource: "value-minus-blocked:Blocked=2500.25",
		},
		{
			name:       "fallback to value",
			wallet:     domain.Wallet{Value: dec("100000")},
			want:       "100000",
			wantSource: "fallback:value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source := tt.wallet.OpeningBalance()
			if !got.Equal(dec(tt.want)) {
				t.Errorf("OpeningBalance() = %s, want %s", got, tt.want)
			}
			if source != tt.wantSource {
				t.Errorf("source = %q, want %q", source, tt.wantSource)
			}
		})
	}
}
