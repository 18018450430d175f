package rules

import (
	"fmt"

	"aml-screening-engine/internal/domain/screening"
)

// HighRiskCountryRuleID identifies the sanctioned-jurisdiction rule
const HighRiskCountryRuleID = "high_risk_country"

// HighRiskLookup answers whether a country code is on the high-risk
// jurisdiction list. The geo country table satisfies it.
type HighRiskLookup interface {
	IsHighRisk(code string) bool
}

// HighRiskCountryRule flags any transaction touching a high-risk
// jurisdiction on either the declared or the observed side. When
// configured to block it forces the verdict to blocking regardless of the
// total score.
type HighRiskCountryRule struct {
	lookup HighRiskLookup
}

// NewHighRiskCountryRule creates the rule backed by the given lookup
func NewHighRiskCountryRule(lookup HighRiskLookup) *HighRiskCountryRule {
	return &HighRiskCountryRule{lookup: lookup}
}

func (r *HighRiskCountryRule) ID() string { return HighRiskCountryRuleID }

func (r *HighRiskCountryRule) Evaluate(tx screening.Transaction, _ screening.WindowSnapshot, cfg Config) screening.RuleFinding {
	finding := screening.RuleFinding{RuleID: HighRiskCountryRuleID}

	rc := cfg.HighRiskCountry
	if !rc.Enabled || r.lookup == nil {
		return finding
	}

	country := ""
	switch {
	case r.lookup.IsHighRisk(tx.DeclaredCountry):
		country = tx.DeclaredCountry
	case r.lookup.IsHighRisk(tx.ObservedCountry):
		country = tx.ObservedCountry
	default:
		return finding
	}

	finding.Triggered = true
	finding.Score = 100
	finding.Block = rc.Block
	finding.Reason = fmt.Sprintf("Transaction involves high-risk jurisdiction: %s", country)
	return finding
}
