package screening

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CountryResolver maps a locator (usually an IP address) to an ISO-3166
// alpha-2 country code. Implementations must return ErrUnresolvedCountry
// when the locator cannot be resolved; the engine then degrades to
// unknown-country scoring instead of failing the row.
type CountryResolver interface {
	Resolve(ctx context.Context, locator string) (string, error)
}

// VerdictRepository is the audit sink for risk verdicts. The engine
// writes fire-and-forget; implementations must not be relied on to
// block verdict return to the caller. Lookups return ErrVerdictNotFound
// when nothing matches.
type VerdictRepository interface {
	Save(ctx context.Context, verdict *RiskVerdict) error
	GetByTransactionID(ctx context.Context, transactionID string) (*RiskVerdict, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*RiskVerdict, error)
}

// GeoScorer computes the geographic mismatch score for a country pair
type GeoScorer interface {
	Score(declared, observed string) GeoResult
}

// RuleEvaluator runs the configured detection rules against a
// transaction and its velocity snapshot. Findings come back in rule
// registration order.
type RuleEvaluator interface {
	Evaluate(tx Transaction, snap WindowSnapshot) []RuleFinding
}

// VelocityTracker owns per-entity rolling windows of recent activity
type VelocityTracker interface {
	// Record appends a transaction to the entity's window and returns
	// the resulting snapshot.
	Record(entityID string, ts time.Time, amount decimal.Decimal) WindowSnapshot

	// Snapshot returns a read-only view without mutating the window.
	Snapshot(entityID string) WindowSnapshot
}
