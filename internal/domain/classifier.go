package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Direction is the inferred direction of a transaction.
type Direction int

const (
	DirectionCredit Direction = iota + 1
	DirectionDebit
)

// DirectionRule maps a token found in a normalized direction-hint field to
// a direction. Rules are checked in order, first match wins.
type DirectionRule struct {
	Token     string
	Direction Direction
}

// DefaultDirectionRules covers English plus the Ukrainian/Russian wording
// the fuel-card feed actually uses.
func DefaultDirectionRules() []DirectionRule {
	return []DirectionRule{
		{Token: "credit", Direction: DirectionCredit},
		{Token: "incoming", Direction: DirectionCredit},
		{Token: "plus", Direction: DirectionCredit},
		{Token: "кредит", Direction: DirectionCredit},
		{Token: "поповнення", Direction: DirectionCredit},
		{Token: "пополнение", Direction: DirectionCredit},
		{Token: "зарахування", Direction: DirectionCredit},
		{Token: "зачисление", Direction: DirectionCredit},
		{Token: "повернення", Direction: DirectionCredit},
		{Token: "возврат", Direction: DirectionCredit},
		{Token: "коригування", Direction: DirectionCredit},
		{Token: "корректировка", Direction: DirectionCredit},
		{Token: "debit", Direction: DirectionDebit},
		{Token: "outgoing", Direction: DirectionDebit},
		{Token: "minus", Direction: DirectionDebit},
		{Token: "дебет", Direction: DirectionDebit},
		{Token: "списання", Direction: DirectionDebit},
		{Token: "списание", Direction: DirectionDebit},
		{Token: "покупка", Direction: DirectionDebit},
		{Token: "купівля", Direction: DirectionDebit},
		{Token: "оплата", Direction: DirectionDebit},
		{Token: "payment", Direction: DirectionDebit},
		{Token: "purchase", Direction: DirectionDebit},
	}
}

// DefaultCreditKeywords is the free-text fallback: tokens whose presence in
// goods name, wallet name or card info marks a positive amount as incoming
// when no direction field said so.
func DefaultCreditKeywords() []string {
	return []string{
		"поповнення",
		"пополнение",
		"повернення",
		"возврат",
		"refund",
		"replenishment",
		"top-up",
		"topup",
	}
}

// Classifier infers a signed amount for one transaction record. The rule
// table and keyword list are configuration, not ground truth: they are
// tuned for a feed dominated by fuel purchases.
type Classifier struct {
	Rules          []DirectionRule
	CreditKeywords []string
}

// NewClassifier builds a classifier, falling back to the default rule sets
// where the configuration left them empty.
func NewClassifier(rules []DirectionRule, keywords []string) *Classifier {
	if len(rules) == 0 {
		rules = DefaultDirectionRules()
	}
	if len(keywords) == 0 {
		keywords = DefaultCreditKeywords()
	}
	return &Classifier{Rules: rules, CreditKeywords: keywords}
}

// Classify resolves the record's signed amount. ok is false when no amount
// could be resolved at all; such records count as unclassified.
func (c *Classifier) Classify(rec *TransactionRecord) (amount decimal.Decimal, ok bool) {
	amount, ok = resolveAmount(rec)
	if !ok {
		return decimal.Zero, false
	}
	if amount.IsZero() {
		// A settled zero, e.g. a full reversal.
		return decimal.Zero, true
	}
	if amount.IsNegative() {
		// An explicit sign is authoritative.
		return amount, true
	}
	if dir, matched := c.direction(rec.Direction); matched {
		if dir == DirectionCredit {
			return amount, true
		}
		return amount.Neg(), true
	}
	if c.hasCreditKeyword(rec.GoodsName, rec.WalletName, rec.CardInfo) {
		return amount, true
	}
	// No signal at all: fuel purchases dominate this feed, assume expenditure.
	return amount.Neg(), true
}

// resolveAmount prefers the settled amount and falls back to the raw one.
// A raw amount of exactly zero means the field was never filled in, not a
// zero-value transaction.
func resolveAmount(rec *TransactionRecord) (decimal.Decimal, bool) {
	if rec.FinalAmount.Present {
		return rec.FinalAmount.Value, true
	}
	if rec.RawAmount.Present && !rec.RawAmount.Value.IsZero() {
		return rec.RawAmount.Value, true
	}
	return decimal.Zero, false
}

func (c *Classifier) direction(hint string) (Direction, bool) {
	hint = normalize(hint)
	if hint == "" {
		return 0, false
	}
	for _, r := range c.Rules {
		if strings.Contains(hint, normalize(r.Token)) {
			return r.Direction, true
		}
	}
	return 0, false
}

func (c *Classifier) hasCreditKeyword(fields ...string) bool {
	for _, f := range fields {
		f = normalize(f)
		if f == "" {
			continue
		}
		for _, kw := range c.CreditKeywords {
			if strings.Contains(f, normalize(kw)) {
				return true
			}
		}
	}
	return false
}
