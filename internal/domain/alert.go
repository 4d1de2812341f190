package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AlertDecision is the outcome of comparing a balance to the threshold.
type AlertDecision struct {
	Fires   bool
	Message string
}

// EvaluateThreshold fires strictly below the threshold; an exactly-equal
// balance is normal. now must already be in the configured timezone.
func EvaluateThreshold(res *BalanceResult, threshold decimal.Decimal, now time.Time) AlertDecision {
	if res.BalanceForCheck.GreaterThanOrEqual(threshold) {
		return AlertDecision{}
	}
	return AlertDecision{Fires: true, Message: renderAlert(res, threshold, now)}
}

func renderAlert(res *BalanceResult, threshold decimal.Decimal, now time.Time) string {
	var b strings.Builder
	b.WriteString("🚨 *Low balance alert* 🚨\n\n")
	b.WriteString("The fuel-card wallet balance dropped below the configured threshold.\n\n")
	fmt.Fprintf(&b, "Checked at (%s): *%s*\n", now.Location(), now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Balance: *%s*\n", FormatMoney(res.BalanceForCheck))
	fmt.Fprintf(&b, "Opening balance: *%s*\n", FormatMoney(res.Opening))
	if res.Mode == ModeOpeningPlusTx {
		fmt.Fprintf(&b, "Day delta: *%s*\n", FormatMoney(res.Delta))
	}
	fmt.Fprintf(&b, "Threshold: *%s*\n\n", FormatMoney(threshold))
	b.WriteString("Time to top up the account.")
	return b.String()
}
