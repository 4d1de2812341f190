package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BalanceMode selects what the threshold is compared against.
type BalanceMode string

const (
	// ModeOpening compares the opening balance as-is.
	ModeOpening BalanceMode = "opening"
	// ModeOpeningPlusTx adjusts the opening balance by the day's classified
	// transaction delta.
	ModeOpeningPlusTx BalanceMode = "opening_plus_tx"
)

// ParseBalanceMode parses a configured mode string.
func ParseBalanceMode(s string) (BalanceMode, error) {
	switch BalanceMode(normalize(s)) {
	case ModeOpening:
		return ModeOpening, nil
	case ModeOpeningPlusTx:
		return ModeOpeningPlusTx, nil
	}
	return "", fmt.Errorf("unknown balance mode %q", s)
}

// BalanceResult is the reconciled balance plus diagnostic counters.
type BalanceResult struct {
	Opening         decimal.Decimal
	Delta           decimal.Decimal
	BalanceForCheck decimal.Decimal
	Matched         int
	Classified      int
	Unclassified    int
	Mode            BalanceMode
	OpeningSource   string
}

// Aggregate combines the opening balance with the day's classified deltas.
//
// In ModeOpeningPlusTx a day where not a single matched transaction had a
// resolvable amount refuses to produce a result: silently degrading to the
// opening-only balance could raise or suppress a false alert at the start
// of a business day, when the feed is still all provisional records.
func Aggregate(opening decimal.Decimal, openingSource string, mode BalanceMode, txs []ClassifiedTransaction) (*BalanceResult, error) {
	res := &BalanceResult{
		Opening:         opening,
		BalanceForCheck: opening,
		Mode:            mode,
		OpeningSource:   openingSource,
	}

	for _, tx := range txs {
		if !tx.Matched {
			continue
		}
		res.Matched++
		if !tx.Classified {
			res.Unclassified++
			continue
		}
		res.Classified++
		res.Delta = res.Delta.Add(tx.Amount)
	}

	if mode == ModeOpeningPlusTx {
		if res.Classified == 0 {
			return nil, fmt.Errorf("%w: %d matched, %d without a resolvable amount",
				ErrNoClassifiedTransactions, res.Matched, res.Unclassified)
		}
		res.BalanceForCheck = opening.Add(res.Delta)
	}

	return res, nil
}
