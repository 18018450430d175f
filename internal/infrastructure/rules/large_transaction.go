package rules

import (
	"fmt"

	"github.com/shopspring/decimal"

	"aml-screening-engine/internal/domain/screening"
)

// LargeTransactionRuleID identifies the single-amount threshold rule
const LargeTransactionRuleID = "large_transaction"

// LargeTransactionRule flags transactions at or above the configured
// amount threshold. Contribution scales with how far past the threshold
// the amount sits.
type LargeTransactionRule struct{}

func (r *LargeTransactionRule) ID() string { return LargeTransactionRuleID }

func (r *LargeTransactionRule) Evaluate(tx screening.Transaction, _ screening.WindowSnapshot, cfg Config) screening.RuleFinding {
	finding := screening.RuleFinding{RuleID: LargeTransactionRuleID}

	rc := cfg.LargeTransaction
	if !rc.Enabled || tx.Amount.LessThan(rc.Threshold) {
		return finding
	}

	finding.Triggered = true
	finding.Score = largeTransactionScore(tx.Amount, rc.Threshold)
	finding.Reason = fmt.Sprintf("Transaction amount %s meets or exceeds threshold %s",
		tx.Amount.String(), rc.Threshold.String())
	return finding
}

// largeTransactionScore steps the contribution up with the multiple of
// the threshold: at threshold 40, from 2x 60, from 5x 85.
func largeTransactionScore(amount, threshold decimal.Decimal) int {
	switch {
	case amount.GreaterThanOrEqual(threshold.Mul(decimal.NewFromInt(5))):
		return 85
	case amount.GreaterThanOrEqual(threshold.Mul(decimal.NewFromInt(2))):
		return 60
	default:
		return 40
	}
}
