package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Wallet is an opening-of-day snapshot of one fuel-card wallet.
type Wallet struct {
	ID           string
	Name         string
	GoodsName    string
	CurrencyCode string // alphabetic or ISO numeric, the feed mixes both
	Value        decimal.Decimal

	// Available is the explicit "available" figure when the feed carries
	// one; AvailableSource names the wire key it came from.
	Available       Amount
	AvailableSource string

	// Blocked is the total of all blocked/reserved amounts on the wallet.
	Blocked       decimal.Decimal
	BlockedDetail string
}

// OpeningBalance resolves the balance a check starts from and reports where
// it came from. An explicit available figure wins; otherwise blocked and
// reserved amounts are subtracted from the gross value.
func (w *Wallet) OpeningBalance() (decimal.Decimal, string) {
	if w.Available.Present {
		return w.Available.Value, "direct:" + w.AvailableSource
	}
	if w.Blocked.IsPositive() {
		return w.Value.Sub(w.Blocked), "value-minus-blocked:" + w.BlockedDetail
	}
	return w.Value, "fallback:value"
}

// CurrencyFilter describes the target currency of a check. A wallet matches
// when its goods name equals one of the aliases, or its currency code equals
// the numeric or alphabetic code.
type CurrencyFilter struct {
	GoodsAliases []string // e.g. "грн", "uah"
	NumericCode  string   // ISO 4217 numeric, e.g. "980"
	AlphaCode    string   // ISO 4217 alphabetic, e.g. "UAH"
}

func (f CurrencyFilter) matches(w *Wallet) bool {
	goods := normalize(w.GoodsName)
	for _, alias := range f.GoodsAliases {
		if goods != "" && goods == normalize(alias) {
			return true
		}
	}
	code := strings.ToUpper(strings.TrimSpace(w.CurrencyCode))
	if code == "" {
		return false
	}
	if f.NumericCode != "" && code == strings.TrimSpace(f.NumericCode) {
		return true
	}
	return f.AlphaCode != "" && code == strings.ToUpper(strings.TrimSpace(f.AlphaCode))
}

// FilterByCurrency returns the wallets matching the target currency.
func FilterByCurrency(wallets []*Wallet, f CurrencyFilter) []*Wallet {
	matched := make([]*Wallet, 0, len(wallets))
	for _, w := range wallets {
		if f.matches(w) {
			matched = append(matched, w)
		}
	}
	return matched
}

// PickWallet applies the selection policy to the currency-filtered set.
// With an explicit id only an exact trimmed match is accepted. Without one
// the set must contain exactly one wallet. Anything else is an error:
// summing several wallets, or silently taking the first, reports a wrong
// balance.
func PickWallet(candidates []*Wallet, explicitID string) (*Wallet, error) {
	explicitID = strings.TrimSpace(explicitID)

	if explicitID != "" {
		var found []*Wallet
		for _, w := range candidates {
			if strings.TrimSpace(w.ID) == explicitID {
				found = append(found, w)
			}
		}
		switch len(found) {
		case 1:
			return found[0], nil
		case 0:
			return nil, fmt.Errorf("%w: %s (available: %s)", ErrWalletNotFound, explicitID, joinWalletIDs(candidates))
		default:
			return nil, fmt.Errorf("%w: id %s matches %d wallets", ErrAmbiguousWallet, explicitID, len(found))
		}
	}

	switch len(candidates) {
	case 1:
		return candidates[0], nil
	case 0:
		return nil, ErrNoWallets
	default:
		return nil, fmt.Errorf("%w: %d candidates (%s)", ErrAmbiguousWallet, len(candidates), joinWalletIDs(candidates))
	}
}

func joinWalletIDs(wallets []*Wallet) string {
	ids := make([]string, 0, len(wallets))
	for _, w := range wallets {
		ids = append(ids, w.ID)
	}
	return strings.Join(ids, ", ")
}
