package rules

import (
	"fmt"
	"time"

	"aml-screening-engine/internal/domain/screening"
)

// HighFrequencyRuleID identifies the transaction-count velocity rule
const HighFrequencyRuleID = "high_frequency"

// HighFrequencyRule flags entities whose transaction count inside the
// configured window exceeds the limit. The count comes from the velocity
// snapshot and includes the transaction under evaluation only once it has
// been recorded, so the check is >= limit on the prior window plus one.
type HighFrequencyRule struct{}

func (r *HighFrequencyRule) ID() string { return HighFrequencyRuleID }

func (r *HighFrequencyRule) Evaluate(tx screening.Transaction, snap screening.WindowSnapshot, cfg Config) screening.RuleFinding {
	finding := screening.RuleFinding{RuleID: HighFrequencyRuleID}

	rc := cfg.HighFrequency
	if !rc.Enabled {
		return finding
	}

	count := countSince(snap, tx.Timestamp.Add(-rc.Window)) + 1
	if count <= rc.MaxTransactions {
		return finding
	}

	finding.Triggered = true
	finding.Score = highFrequencyScore(count, rc.MaxTransactions)
	finding.Reason = fmt.Sprintf("%d transactions in %s (limit: %d)",
		count, rc.Window, rc.MaxTransactions)
	return finding
}

func countSince(snap screening.WindowSnapshot, cutoff time.Time) int {
	n := 0
	for _, e := range snap.Entries {
		if !e.Timestamp.Before(cutoff) {
			n++
		}
	}
	return n
}

// highFrequencyScore steps up with how far past the limit the count is:
// just over 30, 1.5x the limit 55, double 85.
func highFrequencyScore(count, limit int) int {
	switch {
	case count >= limit*2:
		return 85
	case count*2 >= limit*3:
		return 55
	default:
		return 30
	}
}
