package rules

import (
	"fmt"

	"aml-screening-engine/internal/domain/screening"
)

// RapidMovementRuleID identifies the short-window amount velocity rule
const RapidMovementRuleID = "rapid_movement"

// RapidMovementRule flags entities that move a large total amount through
// a short window, the layering pattern of many medium transfers in quick
// succession. The current transaction's amount counts toward the total.
type RapidMovementRule struct{}

func (r *RapidMovementRule) ID() string { return RapidMovementRuleID }

func (r *RapidMovementRule) Evaluate(tx screening.Transaction, snap screening.WindowSnapshot, cfg Config) screening.RuleFinding {
	finding := screening.RuleFinding{RuleID: RapidMovementRuleID}

	rc := cfg.RapidMovement
	if !rc.Enabled {
		return finding
	}

	total := snap.SumSince(tx.Timestamp.Add(-rc.Window)).Add(tx.Amount)
	if total.LessThan(rc.SumThreshold) {
		return finding
	}

	finding.Triggered = true
	finding.Score = 70
	finding.Reason = fmt.Sprintf("Total amount %s moved within %s (threshold: %s)",
		total.String(), rc.Window, rc.SumThreshold.String())
	return finding
}
