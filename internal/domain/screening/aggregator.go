package screening

import (
	"time"

	"github.com/google/uuid"
)

// GeoMismatchRuleID is the identifier used for the implicit geo-mismatch
// finding in a verdict's triggered-rule list.
const GeoMismatchRuleID = "geo_mismatch"

// Aggregate merges the geo score and rule findings into a single verdict.
//
// Scoring policy: the total is the maximum of the geo score and the
// clamped sum of triggered rule contributions. A single critical signal
// from either source must not be diluted by averaging.
func Aggregate(tx Transaction, geo GeoResult, findings []RuleFinding) *RiskVerdict {
	ruleSum := 0
	triggered := make([]string, 0, len(findings)+1)
	block := false

	if geo.Triggered() {
		triggered = append(triggered, GeoMismatchRuleID)
	}
	for _, f := range findings {
		if !f.Triggered {
			continue
		}
		ruleSum += f.Score
		triggered = append(triggered, f.RuleID)
		if f.Block {
			block = true
		}
	}
	if ruleSum > 100 {
		ruleSum = 100
	}

	score := geo.Score
	if ruleSum > score {
		score = ruleSum
	}

	level := levelForScore(score, len(triggered) > 0)
	if level == RiskLevelCritical {
		block = true
	}

	return &RiskVerdict{
		ID:              uuid.New(),
		TransactionID:   tx.ID,
		UserID:          tx.UserID,
		Score:           score,
		Level:           level,
		ShouldBlock:     block,
		TriggeredRules:  triggered,
		DeclaredCountry: geo.DeclaredCountry,
		ObservedCountry: geo.ObservedCountry,
		Recommendation:  recommendationFor(level, block),
		ScreenedAt:      time.Now(),
	}
}

// levelForScore maps a clamped score to a risk level. The mapping is
// monotonic: CRITICAL is only reachable at the top band, and a non-zero
// score without any triggered rule stays LOW.
func levelForScore(score int, anyTriggered bool) RiskLevel {
	switch {
	case score >= 80:
		return RiskLevelCritical
	case score >= 50:
		return RiskLevelHigh
	case score >= 1 && anyTriggered:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

func recommendationFor(level RiskLevel, block bool) string {
	if block {
		return "BLOCK - require manual verification before releasing funds"
	}
	switch level {
	case RiskLevelHigh:
		return "Flag for review - transaction from significantly different location or pattern"
	case RiskLevelMedium:
		return "Allow - monitor account for repeated patterns"
	default:
		return "Proceed normally"
	}
}
